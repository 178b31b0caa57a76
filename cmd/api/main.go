package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/inventory"
	rules "github.com/jhoicas/Gestao-Seguranca-api/internal/domain/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Gestao-Seguranca-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Gestao-Seguranca-api/internal/interfaces/http"
	"github.com/jhoicas/Gestao-Seguranca-api/pkg/config"
	"github.com/jhoicas/Gestao-Seguranca-api/pkg/logger"
)

// txRunner lo implementan postgres.TxRunner y memory.TxRunner.
type txRunner interface {
	billing.BillingTxRunner
	inventory.StockTxRunner
	inventory.EquipmentTxRunner
}

// stores agrupa los repositorios del driver elegido.
type stores struct {
	tx                 txRunner
	contracts          repository.ContractRepository
	billings           repository.BillingRepository
	receivables        repository.ReceivableRepository
	stockProducts      repository.StockProductRepository
	stockMovements     repository.StockMovementRepository
	equipment          repository.EquipmentRepository
	equipmentMovements repository.EquipmentMovementRepository
	close              func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	rates := rules.StatutoryRates{
		PIS:    cfg.Taxes.PISRate,
		COFINS: cfg.Taxes.COFINSRate,
		CSLL:   cfg.Taxes.CSLLRate,
		IRPJ:   cfg.Taxes.IRPJRate,
		INSS:   cfg.Taxes.INSSRate,
	}

	contractUC := billing.NewContractUseCase(st.contracts)
	generateUC := billing.NewGenerateBillingsUseCase(st.tx, rates, log)
	lifecycleUC := billing.NewBillingLifecycleUseCase(st.tx, st.billings, rates, log)
	receivableUC := billing.NewReceivableUseCase(st.receivables, log)
	stockUC := inventory.NewStockLedgerUseCase(st.tx, st.stockProducts, st.stockMovements, log)
	equipmentUC := inventory.NewEquipmentUseCase(st.tx, st.equipment, st.equipmentMovements, log)

	// PDF: espelho del faturamento
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	billingPDFUC := billing.NewPDFUseCase(st.billings, st.contracts, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestão Segurança API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ContractUC:       contractUC,
		GenerateBillings: generateUC,
		BillingLifecycle: lifecycleUC,
		BillingPDF:       billingPDFUC,
		ReceivableUC:     receivableUC,
		StockUC:          stockUC,
		EquipmentUC:      equipmentUC,
		JWTSecret:        cfg.JWT.Secret,
		ServiceName:      cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores abre PostgreSQL (aplicando el esquema si DB_MIGRATE=true) o el store en memoria.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.App.StoreDriver == "memory" {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &stores{
			tx:                 memory.NewTxRunner(s),
			contracts:          s.Contracts(),
			billings:           s.Billings(),
			receivables:        s.Receivables(),
			stockProducts:      s.StockProducts(),
			stockMovements:     s.StockMovements(),
			equipment:          s.Equipment(),
			equipmentMovements: s.EquipmentMovements(),
			close:              func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	return &stores{
		tx:                 postgres.NewTxRunner(pool),
		contracts:          postgres.NewContractRepository(pool),
		billings:           postgres.NewBillingRepository(pool),
		receivables:        postgres.NewReceivableRepository(pool),
		stockProducts:      postgres.NewStockProductRepository(pool),
		stockMovements:     postgres.NewStockMovementRepository(pool),
		equipment:          postgres.NewEquipmentRepository(pool),
		equipmentMovements: postgres.NewEquipmentMovementRepository(pool),
		close:              pool.Close,
	}, nil
}
