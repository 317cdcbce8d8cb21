package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/application/usecase"
)

// CompanyHandler maneja el onboarding (crear / unirse) y la gestión de la
// empresa propia.
type CompanyHandler struct {
	companyUC *usecase.CompanyUseCase
	teamUC    *usecase.TeamUseCase
}

// NewCompanyHandler construye el handler de empresa.
func NewCompanyHandler(companyUC *usecase.CompanyUseCase, teamUC *usecase.TeamUseCase) *CompanyHandler {
	return &CompanyHandler{companyUC: companyUC, teamUC: teamUC}
}

// Create godoc
// @Summary      Crear empresa; el contractor se vuelve owner_admin
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCompanyRequest  true  "datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	claims := GetClaims(c)
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Name == "" {
		return badRequest(c, "name es requerido")
	}
	company, err := h.companyUC.Create(claims.ContractorID, in)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{"company": company})
}

// Join godoc
// @Summary      Unirse a una empresa con su companyCode
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.JoinCompanyRequest  true  "company_code y rol"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/join [post]
func (h *CompanyHandler) Join(c *fiber.Ctx) error {
	claims := GetClaims(c)
	var in dto.JoinCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.CompanyCode == "" {
		return badRequest(c, "company_code es requerido")
	}
	company, err := h.companyUC.Join(claims.ContractorID, in)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"company": company})
}

// GetOwn godoc
// @Summary      Empresa propia de la sesión
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) GetOwn(c *fiber.Ctx) error {
	company, err := h.companyUC.GetOwn(GetClaims(c).CompanyID)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"company": company})
}

// UpdateOwn godoc
// @Summary      Actualizar la empresa propia (campos parciales)
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateCompanyRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *CompanyHandler) UpdateOwn(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	company, err := h.companyUC.UpdateOwn(GetClaims(c).CompanyID, in)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"company": company})
}

// Team godoc
// @Summary      Listar el equipo de la empresa (sin hashes de password)
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}   dto.ContractorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/team [get]
func (h *CompanyHandler) Team(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	team, err := h.teamUC.List(GetClaims(c).CompanyID, page)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"team": team})
}
