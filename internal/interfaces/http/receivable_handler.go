package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

// ReceivableHandler maneja las cuentas por cobrar (recebimentos).
type ReceivableHandler struct {
	uc *billing.ReceivableUseCase
}

// NewReceivableHandler construye el handler.
func NewReceivableHandler(uc *billing.ReceivableUseCase) *ReceivableHandler {
	return &ReceivableHandler{uc: uc}
}

// List godoc
// @Summary      Listar recebimentos
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "PENDING | RECEIVED"
// @Param        company_id  query  string  false  "Empresa cliente"
// @Param        due_from    query  string  false  "YYYY-MM-DD"
// @Param        due_to      query  string  false  "YYYY-MM-DD"
// @Param        overdue     query  bool    false  "Solo vencidos"
// @Success      200  {array}  dto.ReceivableResponse
// @Router       /api/receivables [get]
func (h *ReceivableHandler) List(c *fiber.Ctx) error {
	f := repository.ReceivableFilter{Status: c.Query("status"), CompanyID: c.Query("company_id")}
	var err error
	if f.DueFrom, err = dto.ParseOptionalDate(c.Query("due_from")); err != nil {
		return writeError(c, domain.ErrInvalidInput)
	}
	if f.DueTo, err = dto.ParseOptionalDate(c.Query("due_to")); err != nil {
		return writeError(c, domain.ErrInvalidInput)
	}
	out, err := h.uc.List(c.UserContext(), f, c.QueryBool("overdue", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener recebimento
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del recebimento"
// @Success      200  {object}  dto.ReceivableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receivables/{id} [get]
func (h *ReceivableHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar recebimento pendiente
// @Tags         receivables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del recebimento"
// @Param        body  body  dto.UpdateReceivableRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ReceivableResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receivables/{id} [put]
func (h *ReceivableHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReceivableRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Marcar como recibido
// @Tags         receivables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del recebimento"
// @Param        body  body  dto.ReceiveRequest  false  "Fecha de recibimiento (por defecto hoy)"
// @Success      200   {object}  dto.ReceivableResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receivables/{id}/receive [post]
func (h *ReceivableHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.MarkReceived(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UndoReceive godoc
// @Summary      Deshacer recibimiento
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del recebimento"
// @Success      200  {object}  dto.ReceivableResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receivables/{id}/undo [post]
func (h *ReceivableHandler) UndoReceive(c *fiber.Ctx) error {
	out, err := h.uc.UndoReceive(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
