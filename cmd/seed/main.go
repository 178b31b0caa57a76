// seed importa contratos desde un CSV exportado de planilla (separador ';', decimales con coma)
// y los da de alta en PostgreSQL usando el mismo caso de uso que la API.
//
// Uso: go run ./cmd/seed [ruta/contratos.csv] [latin1]
// Por defecto busca contratos.csv en el directorio actual. Con "latin1" decodifica ISO-8859-1,
// la codificación por defecto de Excel en pt-BR.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Gestao-Seguranca-api/pkg/config"
)

func main() {
	csvPath := "contratos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	latin1 := len(os.Args) > 2 && os.Args[2] == "latin1"

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	requests, err := parseContractsCSV(f, latin1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Aplicar esquema: %v\n", err)
		os.Exit(1)
	}

	uc := billing.NewContractUseCase(postgres.NewContractRepository(pool))
	created := 0
	for i, in := range requests {
		if _, err := uc.Create(ctx, in); err != nil {
			fmt.Fprintf(os.Stderr, "Línea %d (%s / %s): %v\n", i+2, in.CompanyID, in.WorkSiteID, err)
			continue
		}
		created++
	}

	fmt.Printf("Importados %d de %d contratos desde %s\n", created, len(requests), csvPath)
}
