// token emite un JWT de desarrollo firmado con JWT_SECRET.
//
// Uso: go run ./cmd/token <user_id> <rol>
// Roles: admin, financeiro, almoxarife.
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/Gestao-Seguranca-api/pkg/config"
	"github.com/jhoicas/Gestao-Seguranca-api/pkg/jwt"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: token <user_id> <admin|financeiro|almoxarife>")
		os.Exit(2)
	}
	userID, role := os.Args[1], os.Args[2]
	switch role {
	case jwt.RoleAdmin, jwt.RoleFinance, jwt.RoleStorekeeper:
	default:
		fmt.Fprintf(os.Stderr, "rol desconocido: %s\n", role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
