package validation

import "regexp"

// Reglas de username:
// - Minúsculas, dígitos, "_", "." y "-".
// - Empieza y termina en [a-z0-9].
// - Largo 3..32.
// - Sin espacios ni caracteres de control, explícitamente.
//
// Válidos: alice, bob-2, ana.maria, dev_ops7
// Inválidos: AL, "a", -lead, trail-, "con espacio", 33+ chars.
var usernameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_.\-]{1,30}[a-z0-9]$`)

// ValidUsername indica si el username cumple el patrón permitido.
func ValidUsername(name string) bool {
	return usernameRe.MatchString(name)
}
