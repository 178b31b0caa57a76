package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/inventory"
	"github.com/jhoicas/Gestao-Seguranca-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ContractUC       *billing.ContractUseCase
	GenerateBillings *billing.GenerateBillingsUseCase
	BillingLifecycle *billing.BillingLifecycleUseCase
	BillingPDF       *billing.PDFUseCase
	ReceivableUC     *billing.ReceivableUseCase
	StockUC          *inventory.StockLedgerUseCase
	EquipmentUC      *inventory.EquipmentUseCase
	JWTSecret        string
	ServiceName      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	// Todo /api requiere Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	finance := RequireRole(jwt.RoleAdmin, jwt.RoleFinance)
	storekeeping := RequireRole(jwt.RoleAdmin, jwt.RoleStorekeeper)

	// Contratos
	contracts := api.Group("/contracts", finance)
	contractHandler := NewContractHandler(deps.ContractUC)
	contracts.Get("/", contractHandler.List)
	contracts.Post("/", contractHandler.Create)
	contracts.Get("/:id", contractHandler.GetByID)
	contracts.Put("/:id", contractHandler.Update)

	// Faturamentos
	billings := api.Group("/billings", finance)
	billingHandler := NewBillingHandler(deps.GenerateBillings, deps.BillingLifecycle, deps.BillingPDF)
	billings.Post("/generate", billingHandler.Generate)
	billings.Get("/", billingHandler.List)
	billings.Post("/", billingHandler.Create)
	billings.Get("/:id", billingHandler.GetByID)
	billings.Put("/:id", billingHandler.Update)
	billings.Delete("/:id", billingHandler.Delete)
	billings.Post("/:id/issue", billingHandler.Issue)
	billings.Post("/:id/undo", billingHandler.Undo)
	billings.Get("/:id/pdf", billingHandler.DownloadPDF)

	// Recebimentos
	receivables := api.Group("/receivables", finance)
	receivableHandler := NewReceivableHandler(deps.ReceivableUC)
	receivables.Get("/", receivableHandler.List)
	receivables.Get("/:id", receivableHandler.GetByID)
	receivables.Put("/:id", receivableHandler.Update)
	receivables.Post("/:id/receive", receivableHandler.Receive)
	receivables.Post("/:id/undo", receivableHandler.UndoReceive)

	// Almoxarifado
	stockGroup := api.Group("/stock", storekeeping)
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/products", stockHandler.ListProducts)
	stockGroup.Post("/products", stockHandler.CreateProduct)
	stockGroup.Get("/products/:id", stockHandler.GetProduct)
	stockGroup.Put("/products/:id", stockHandler.UpdateProduct)
	stockGroup.Get("/products/:id/movements", stockHandler.ListMovements)
	stockGroup.Post("/movements", stockHandler.RegisterMovement)
	stockGroup.Get("/possession", stockHandler.Possession)

	// Armamento (rutas fijas antes de /:id)
	equipment := api.Group("/equipment", storekeeping)
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC)
	equipment.Get("/", equipmentHandler.List)
	equipment.Post("/", equipmentHandler.Create)
	equipment.Get("/movements", equipmentHandler.Movements)
	equipment.Post("/lots", equipmentHandler.AddLot)
	equipment.Post("/lots/transfer", equipmentHandler.TransferLot)
	equipment.Delete("/:id", equipmentHandler.Delete)
	equipment.Post("/:id/transfer", equipmentHandler.Transfer)
}
