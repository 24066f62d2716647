package validation

import "testing"

func TestValidUsername_Valid(t *testing.T) {
	valids := []string{
		"abc",
		"alice",
		"bob-2",
		"ana.maria",
		"dev_ops7",
		"a2c",
		"x123456789012345678901234567890x", // 32 chars
	}
	for _, v := range valids {
		if !ValidUsername(v) {
			t.Errorf("esperaba válido: %q", v)
		}
	}
}

func TestValidUsername_Invalid(t *testing.T) {
	invalids := []string{
		"",
		"a",
		"ab",
		"ALICE",
		"-alice",
		"alice-",
		".alice",
		"con espacio",
		"alice;drop",
		"x123456789012345678901234567890xx", // 33 chars
	}
	for _, v := range invalids {
		if ValidUsername(v) {
			t.Errorf("esperaba inválido: %q", v)
		}
	}
}
