package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/inventory"
)

// StockHandler maneja productos de almoxarifado y su ledger de movimientos.
type StockHandler struct {
	uc *inventory.StockLedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockLedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// CreateProduct godoc
// @Summary      Crear producto de almoxarifado
// @Description  initial_quantity > 0 registra un ADICIONAR_LOTE inicial.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.StockProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/products [post]
func (h *StockHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateStockProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateProduct(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateProduct godoc
// @Summary      Editar producto (los saldos no se editan)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateStockProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.StockProductResponse
// @Router       /api/stock/products/{id} [put]
func (h *StockHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.UpdateStockProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateProduct(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id} [get]
func (h *StockHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockProductResponse
// @Router       /api/stock/products [get]
func (h *StockHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.uc.ListProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Ledger de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/stock/products/{id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.uc.ListMovements(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de estoque
// @Description  ENTREGAR y DEVOLVER exigen employee_id o work_site_id (exactamente uno).
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterStockMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterStockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Possession godoc
// @Summary      Material en posesión
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        employee_id   query  string  false  "Colaborador"
// @Param        work_site_id  query  string  false  "Puesto"
// @Success      200  {object}  dto.PossessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/possession [get]
func (h *StockHandler) Possession(c *fiber.Ctx) error {
	out, err := h.uc.Possession(c.UserContext(), c.Query("employee_id"), c.Query("work_site_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
