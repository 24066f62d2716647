// seed crea la cuenta admin inicial directo contra el store. La API no
// puede hacerlo sola: crear cuentas requiere un admin que todavía no
// existe.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/kish38/paas-api/internal/config"
	"github.com/kish38/paas-api/internal/domain/repository"
	"github.com/kish38/paas-api/internal/security/password"
	"github.com/kish38/paas-api/internal/store"
	"github.com/kish38/paas-api/internal/store/pg"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("no se pudo leer .env: %v", err)
	}

	var (
		cfgPath  = flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "ruta del archivo de configuración")
		username = flag.String("username", envOr("SEED_ADMIN_USERNAME", "admin"), "username del admin")
		email    = flag.String("email", envOr("SEED_ADMIN_EMAIL", ""), "email del admin")
		plain    = flag.String("password", envOr("SEED_ADMIN_PASSWORD", ""), "password del admin")
	)
	flag.Parse()

	if *email == "" || *plain == "" {
		log.Fatal("--email y --password son obligatorios (o SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD)")
	}
	if len(*plain) < 7 {
		log.Fatal("el password debe tener al menos 7 caracteres")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
		Postgres: pg.Config{
			MaxConns:        cfg.Storage.Postgres.MaxConns,
			MinConns:        cfg.Storage.Postgres.MinConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		},
	})
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	if _, err := st.Accounts().GetByLogin(ctx, *username); err == nil {
		log.Printf("la cuenta %q ya existe, nada que hacer", *username)
		return
	}

	hash, err := password.Hash(password.Default, *plain)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	acc, err := st.Accounts().Create(ctx, repository.CreateAccountInput{
		Username:     strings.TrimSpace(*username),
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: hash,
		Role:         repository.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("no se pudo crear el admin: %v", err)
	}

	log.Printf("admin creado: id=%s username=%s", acc.ID, acc.Username)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
