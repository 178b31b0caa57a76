package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/inventory"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

// EquipmentHandler maneja armamento: armas y coletes con serie, lotes de munición.
type EquipmentHandler struct {
	uc *inventory.EquipmentUseCase
}

// NewEquipmentHandler construye el handler.
func NewEquipmentHandler(uc *inventory.EquipmentUseCase) *EquipmentHandler {
	return &EquipmentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar arma o colete
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEquipmentRequest  true  "Ítem con número de serie"
// @Success      201   {object}  dto.EquipmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipment [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateSerialized(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddLot godoc
// @Summary      Entrada de munición
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddAmmoLotRequest  true  "Lote"
// @Success      201   {object}  dto.EquipmentResponse
// @Router       /api/equipment/lots [post]
func (h *EquipmentHandler) AddLot(c *fiber.Ctx) error {
	var in dto.AddAmmoLotRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddLot(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar equipamiento
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        type          query  string  false  "ARMA | COLETE_BALISTICO | MUNICAO"
// @Param        work_site_id  query  string  false  "Puesto"
// @Param        at_base       query  bool    false  "Solo en base"
// @Success      200  {array}  dto.EquipmentResponse
// @Router       /api/equipment [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	f := repository.EquipmentFilter{
		Type:       c.Query("type"),
		WorkSiteID: c.Query("work_site_id"),
		AtBase:     c.QueryBool("at_base", false),
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja un ítem
// @Tags         equipment
// @Security     Bearer
// @Param        id   path  string  true  "ID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipment/{id} [delete]
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Transfer godoc
// @Summary      Trasladar arma o colete
// @Description  to_work_site_id null = base.
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.TransferEquipmentRequest  true  "Destino"
// @Success      200   {object}  dto.EquipmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipment/{id}/transfer [post]
func (h *EquipmentHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.TransferSerialized(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TransferLot godoc
// @Summary      Trasladar munición entre ubicaciones
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferLotRequest  true  "Origen, destino y cantidad"
// @Success      200   {object}  dto.EquipmentResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/equipment/lots/transfer [post]
func (h *EquipmentHandler) TransferLot(c *fiber.Ctx) error {
	var in dto.TransferLotRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.TransferLot(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Auditoría de traslados
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "Filtrar por ítem"
// @Param        limit    query  int     false  "Límite"  default(100)
// @Success      200  {array}  dto.EquipmentMovementResponse
// @Router       /api/equipment/movements [get]
func (h *EquipmentHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.Movements(c.UserContext(), c.Query("item_id"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
