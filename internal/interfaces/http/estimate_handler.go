package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/application/usecase"
)

// EstimateHandler maneja los estimados de la empresa, el reclamo de
// estimados de homeowner y el resumen en PDF.
type EstimateHandler struct {
	estimateUC *usecase.EstimateUseCase
	pdfUC      *usecase.EstimatePDFUseCase
}

// NewEstimateHandler construye el handler de estimados.
func NewEstimateHandler(estimateUC *usecase.EstimateUseCase, pdfUC *usecase.EstimatePDFUseCase) *EstimateHandler {
	return &EstimateHandler{estimateUC: estimateUC, pdfUC: pdfUC}
}

// List godoc
// @Summary      Listar estimados de la empresa de la sesión
// @Tags         estimates
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}   dto.EstimateResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/estimates [get]
func (h *EstimateHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	estimates, err := h.estimateUC.ListByCompany(GetClaims(c).CompanyID, page)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"estimates": estimates})
}

// GetByID godoc
// @Summary      Obtener un estimado de la empresa propia
// @Tags         estimates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del estimado"
// @Success      200  {object}  dto.EstimateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estimates/{id} [get]
func (h *EstimateHandler) GetByID(c *fiber.Ctx) error {
	estimate, err := h.estimateUC.GetForCompany(c.Params("id"), GetClaims(c).CompanyID)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"estimate": estimate})
}

// Claim godoc
// @Summary      Reclamar un estimado de homeowner para la empresa propia
// @Tags         estimates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del estimado"
// @Success      200  {object}  dto.EstimateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/estimates/{id}/claim [post]
func (h *EstimateHandler) Claim(c *fiber.Ctx) error {
	claims := GetClaims(c)
	estimate, err := h.estimateUC.Claim(c.Params("id"), claims.CompanyID, claims.ContractorID)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"estimate": estimate})
}

// PDF godoc
// @Summary      Descargar el resumen del estimado en PDF
// @Tags         estimates
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del estimado"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estimates/{id}/pdf [get]
func (h *EstimateHandler) PDF(c *fiber.Ctx) error {
	estimateID := c.Params("id")
	pdfBytes, err := h.pdfUC.Generate(estimateID, GetClaims(c).CompanyID)
	if err != nil {
		return failure(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estimado-`+estimateID+`.pdf"`)
	return c.Send(pdfBytes)
}

// GetPublic godoc
// @Summary      Vista pública de un estimado de homeowner sin reclamar
// @Tags         estimates
// @Produce      json
// @Param        id  path  string  true  "ID del estimado"
// @Success      200  {object}  dto.EstimateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/estimates/{id} [get]
func (h *EstimateHandler) GetPublic(c *fiber.Ctx) error {
	estimate, err := h.estimateUC.GetPublic(c.Params("id"))
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"estimate": estimate})
}
