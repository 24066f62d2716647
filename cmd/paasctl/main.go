// paasctl es el CLI de administración de la plataforma: habla con la
// API por HTTP usando un token de acceso.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if len(body) == 0 {
		fmt.Printf("status=%d\n", status)
		return
	}
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	fmt.Println(string(body))
}

func (c *client) run(method, path string, body []byte) error {
	status, respBody, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	if status/100 != 2 {
		return fmt.Errorf("%s %s fallo: status=%d body=%s", method, path, status, string(respBody))
	}
	c.print(status, respBody)
	return nil
}

func main() {
	var (
		baseURL = envOr("PAAS_URL", "http://localhost:8080")
		tk      = envOr("PAAS_TOKEN", "")
		out     = envOr("PAAS_OUT", "json")
		timeout = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "paasctl",
		Short: "CLI de administración de la API",
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base de la API (env PAAS_URL)")
	root.PersistentFlags().StringVar(&tk, "token", tk, "Token de acceso (env PAAS_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{BaseURL: baseURL, Token: tk, OutFormat: out, HTTP: &http.Client{Timeout: timeout}}
	syncClient := func() {
		cl.BaseURL = baseURL
		cl.Token = tk
		cl.OutFormat = out
	}

	// ─── login ───
	var loginUser, loginEmail, loginPass string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Autenticarse y obtener un token (imprime el access_token)",
		RunE: func(cmd *cobra.Command, args []string) error {
			syncClient()
			if loginUser == "" && loginEmail == "" {
				return fmt.Errorf("--username o --email es requerido")
			}
			payload := map[string]string{"password": loginPass}
			if loginUser != "" {
				payload["username"] = loginUser
			}
			if loginEmail != "" {
				payload["email"] = loginEmail
			}
			b, _ := json.Marshal(payload)
			return cl.run("POST", "/v1/auth/login", b)
		},
	}
	loginCmd.Flags().StringVar(&loginUser, "username", "", "Username")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email")
	loginCmd.Flags().StringVar(&loginPass, "password", "", "Password")

	// ─── accounts ───
	accountsCmd := &cobra.Command{Use: "accounts", Short: "Gestión de cuentas (solo admin)"}

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Listar todas las cuentas",
		RunE: func(cmd *cobra.Command, args []string) error {
			syncClient()
			return cl.run("GET", "/v1/accounts", nil)
		},
	})

	var accUser, accEmail, accPass, accRole, accQuota string
	accCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Crear una cuenta",
		RunE: func(cmd *cobra.Command, args []string) error {
			syncClient()
			payload := map[string]any{
				"username": accUser,
				"email":    accEmail,
				"password": accPass,
			}
			if accRole != "" {
				payload["role"] = accRole
			}
			if accQuota != "" {
				n, err := strconv.Atoi(accQuota)
				if err != nil {
					return fmt.Errorf("--quota debe ser un entero: %w", err)
				}
				payload["quota"] = n
			}
			b, _ := json.Marshal(payload)
			return cl.run("POST", "/v1/accounts", b)
		},
	}
	accCreateCmd.Flags().StringVar(&accUser, "username", "", "Username")
	accCreateCmd.Flags().StringVar(&accEmail, "email", "", "Email")
	accCreateCmd.Flags().StringVar(&accPass, "password", "", "Password (mínimo 7 caracteres)")
	accCreateCmd.Flags().StringVar(&accRole, "role", "", "Rol: admin|regular (default regular)")
	accCreateCmd.Flags().StringVar(&accQuota, "quota", "", "Quota inicial (vacío = ilimitada)")
	accountsCmd.AddCommand(accCreateCmd)

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Ver una cuenta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			syncClient()
			return cl.run("GET", "/v1/accounts/"+args[0], nil)
		},
	})

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Borrar una cuenta y sus recursos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			syncClient()
			return cl.run("DELETE", "/v1/accounts/"+args[0], nil)
		},
	})

	var quotaVal string
	quotaCmd := &cobra.Command{
		Use:   "set-quota <id>",
		Short: "Fijar la quota de una cuenta (--quota vacío = ilimitada)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			syncClient()
			payload := map[string]any{"quota": nil}
			if quotaVal != "" {
				n, err := strconv.Atoi(quotaVal)
				if err != nil {
					return fmt.Errorf("--quota debe ser un entero: %w", err)
				}
				payload["quota"] = n
			}
			b, _ := json.Marshal(payload)
			return cl.run("PUT", "/v1/accounts/"+args[0]+"/quota", b)
		},
	}
	quotaCmd.Flags().StringVar(&quotaVal, "quota", "", "Nuevo tope (vacío quita el límite)")
	accountsCmd.AddCommand(quotaCmd)

	// ─── resources ───
	resourcesCmd := &cobra.Command{Use: "resources", Short: "Gestión de recursos"}

	var listOwner string
	resListCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar recursos visibles para el actor",
		RunE: func(cmd *cobra.Command, args []string) error {
			syncClient()
			path := "/v1/resources"
			if listOwner != "" {
				path += "?owner_id=" + listOwner
			}
			return cl.run("GET", path, nil)
		},
	}
	resListCmd.Flags().StringVar(&listOwner, "owner", "", "Filtrar por dueño (solo admin)")
	resourcesCmd.AddCommand(resListCmd)

	var resValue, resOwner string
	resCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Crear un recurso",
		RunE: func(cmd *cobra.Command, args []string) error {
			syncClient()
			payload := map[string]string{"resource_value": resValue}
			if resOwner != "" {
				payload["owner"] = resOwner
			}
			b, _ := json.Marshal(payload)
			return cl.run("POST", "/v1/resources", b)
		},
	}
	resCreateCmd.Flags().StringVar(&resValue, "value", "", "Valor del recurso")
	resCreateCmd.Flags().StringVar(&resOwner, "owner", "", "Dueño (solo admin; default el actor)")
	resourcesCmd.AddCommand(resCreateCmd)

	resourcesCmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Ver un recurso",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			syncClient()
			return cl.run("GET", "/v1/resources/"+args[0], nil)
		},
	})

	var updValue string
	resUpdateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Actualizar el valor de un recurso",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			syncClient()
			b, _ := json.Marshal(map[string]string{"resource_value": updValue})
			return cl.run("PUT", "/v1/resources/"+args[0], b)
		},
	}
	resUpdateCmd.Flags().StringVar(&updValue, "value", "", "Nuevo valor")
	resourcesCmd.AddCommand(resUpdateCmd)

	resourcesCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Borrar un recurso (devuelve el cupo al dueño)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			syncClient()
			return cl.run("DELETE", "/v1/resources/"+args[0], nil)
		},
	})

	root.AddCommand(loginCmd)
	root.AddCommand(accountsCmd)
	root.AddCommand(resourcesCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
