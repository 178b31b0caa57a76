package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
)

// BillingHandler maneja generación, ciclo de vida y espelho PDF de faturamentos.
type BillingHandler struct {
	generate  *billing.GenerateBillingsUseCase
	lifecycle *billing.BillingLifecycleUseCase
	pdf       *billing.PDFUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(
	generate *billing.GenerateBillingsUseCase,
	lifecycle *billing.BillingLifecycleUseCase,
	pdf *billing.PDFUseCase,
) *BillingHandler {
	return &BillingHandler{generate: generate, lifecycle: lifecycle, pdf: pdf}
}

// Generate godoc
// @Summary      Generar faturamentos de una competencia
// @Description  Crea un faturamento PENDING por cada contrato activo y vigente. Idempotente.
// @Tags         billings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateBillingsRequest  true  "Competencia YYYY-MM"
// @Success      200   {object}  dto.GenerateBillingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/billings/generate [post]
func (h *BillingHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateBillingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.generate.Generate(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear faturamento manual
// @Tags         billings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillingRequest  true  "Datos del faturamento"
// @Success      201   {object}  dto.BillingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/billings [post]
func (h *BillingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.lifecycle.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar faturamentos
// @Tags         billings
// @Security     Bearer
// @Produce      json
// @Param        competency   query  string  false  "YYYY-MM"
// @Param        status       query  string  false  "PENDING | BILLED"
// @Param        contract_id  query  string  false  "Contrato"
// @Success      200  {array}  dto.BillingResponse
// @Router       /api/billings [get]
func (h *BillingHandler) List(c *fiber.Ctx) error {
	out, err := h.lifecycle.List(c.UserContext(), c.Query("competency"), c.Query("status"), c.Query("contract_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener faturamento
// @Tags         billings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del faturamento"
// @Success      200  {object}  dto.BillingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billings/{id} [get]
func (h *BillingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.lifecycle.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar faturamento pendiente
// @Description  Recalcula las retenciones con la configuración actual del contrato.
// @Tags         billings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del faturamento"
// @Param        body  body  dto.UpdateBillingRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.BillingResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/billings/{id} [put]
func (h *BillingHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBillingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.lifecycle.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar faturamento pendiente
// @Tags         billings
// @Security     Bearer
// @Param        id   path  string  true  "ID del faturamento"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/billings/{id} [delete]
func (h *BillingHandler) Delete(c *fiber.Ctx) error {
	if err := h.lifecycle.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Issue godoc
// @Summary      Emitir faturamento
// @Description  Pasa a BILLED y genera el recebimento en la misma transacción.
// @Tags         billings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del faturamento"
// @Success      200  {object}  dto.IssueBillingResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/billings/{id}/issue [post]
func (h *BillingHandler) Issue(c *fiber.Ctx) error {
	out, err := h.lifecycle.Issue(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Undo godoc
// @Summary      Deshacer emisión
// @Tags         billings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del faturamento"
// @Success      200  {object}  dto.BillingResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/billings/{id}/undo [post]
func (h *BillingHandler) Undo(c *fiber.Ctx) error {
	out, err := h.lifecycle.Undo(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar espelho del faturamento
// @Tags         billings
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del faturamento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billings/{id}/pdf [get]
func (h *BillingHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadStatementPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
