package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/application/usecase"
)

// HandoffHandler maneja la transferencia de estimados a técnicos y el avance
// de su estado en campo.
type HandoffHandler struct {
	uc *usecase.HandoffUseCase
}

// NewHandoffHandler construye el handler de handoffs.
func NewHandoffHandler(uc *usecase.HandoffUseCase) *HandoffHandler {
	return &HandoffHandler{uc: uc}
}

// Initiate godoc
// @Summary      Transferir un estimado a un técnico de la empresa
// @Tags         handoffs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.InitiateHandoffRequest  true  "estimate_id y técnico destino"
// @Success      201   {object}  dto.HandoffResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/handoffs [post]
func (h *HandoffHandler) Initiate(c *fiber.Ctx) error {
	claims := GetClaims(c)
	var in dto.InitiateHandoffRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.EstimateID == "" || in.HandedOffTo == "" {
		return badRequest(c, "estimate_id y handed_off_to son requeridos")
	}
	handoff, err := h.uc.Initiate(claims.ContractorID, claims.CompanyID, in)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{"handoff": handoff})
}

// UpdateStatus godoc
// @Summary      Avanzar el estado de un handoff
// @Tags         handoffs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        estimateId  path  string                          true  "ID del estimado"
// @Param        body        body  dto.UpdateHandoffStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.HandoffResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/handoffs/{estimateId}/status [patch]
func (h *HandoffHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateHandoffStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Status == "" {
		return badRequest(c, "status es requerido")
	}
	handoff, err := h.uc.Advance(GetClaims(c).CompanyID, c.Params("estimateId"), in)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"handoff": handoff})
}

// ListOwn godoc
// @Summary      Handoffs asignados al técnico de la sesión, más recientes primero
// @Tags         handoffs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.HandoffResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/handoffs [get]
func (h *HandoffHandler) ListOwn(c *fiber.Ctx) error {
	claims := GetClaims(c)
	handoffs, err := h.uc.ListForTech(claims.ContractorID, claims.CompanyID)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"handoffs": handoffs})
}
