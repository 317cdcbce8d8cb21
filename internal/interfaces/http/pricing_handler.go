package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/application/usecase"
)

// PricingHandler maneja el override de precios por estimado.
type PricingHandler struct {
	uc *usecase.PricingUseCase
}

// NewPricingHandler construye el handler de pricing.
func NewPricingHandler(uc *usecase.PricingUseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener el override de precio de un estimado
// @Tags         pricing
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del estimado"
// @Success      200  {object}  dto.PricingOverrideResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estimates/{id}/pricing [get]
func (h *PricingHandler) Get(c *fiber.Ctx) error {
	override, err := h.uc.Get(c.Params("id"), GetClaims(c).CompanyID)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"pricing": override})
}

// Set godoc
// @Summary      Registrar o reemplazar el override de precio de un estimado
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "ID del estimado"
// @Param        body  body  dto.SetCustomPricingRequest  true  "tiers good/better/best"
// @Success      200   {object}  dto.PricingOverrideResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/estimates/{id}/pricing [put]
func (h *PricingHandler) Set(c *fiber.Ctx) error {
	claims := GetClaims(c)
	var in dto.SetCustomPricingRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	override, err := h.uc.Set(claims.ContractorID, claims.CompanyID, c.Params("id"), in)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"pricing": override})
}

// Delete godoc
// @Summary      Eliminar el override de precio (vuelve a los rangos calculados)
// @Tags         pricing
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del estimado"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estimates/{id}/pricing [delete]
func (h *PricingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetClaims(c).CompanyID); err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, nil)
}
