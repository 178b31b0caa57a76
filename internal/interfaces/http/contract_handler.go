package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
)

// ContractHandler maneja las peticiones HTTP para contratos (protegido).
type ContractHandler struct {
	uc *billing.ContractUseCase
}

// NewContractHandler construye el handler.
func NewContractHandler(uc *billing.ContractUseCase) *ContractHandler {
	return &ContractHandler{uc: uc}
}

// Create godoc
// @Summary      Crear contrato
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContractRequest  true  "Datos del contrato"
// @Success      201   {object}  dto.ContractResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contracts [post]
func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var in dto.ContractRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar contrato
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del contrato"
// @Param        body  body  dto.ContractRequest  true  "Datos del contrato"
// @Success      200   {object}  dto.ContractResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [put]
func (h *ContractHandler) Update(c *fiber.Ctx) error {
	var in dto.ContractRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener contrato por ID
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contrato"
// @Success      200  {object}  dto.ContractResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [get]
func (h *ContractHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar contratos
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        active      query  bool    false  "Solo activos"
// @Param        company_id  query  string  false  "Empresa cliente"
// @Success      200  {array}  dto.ContractResponse
// @Router       /api/contracts [get]
func (h *ContractHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryBool("active", false), c.Query("company_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
