package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldserve/fieldserve-api/internal/application/auth"
	"github.com/fieldserve/fieldserve-api/internal/application/dto"
)

// AuthHandler maneja registro, login, logout y perfil propio.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar contractor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name"
// @Success      201   {object}  dto.ContractorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "email y password son requeridos")
	}
	if len(in.Password) < 8 {
		return badRequest(c, "password debe tener al menos 8 caracteres")
	}
	contractor, err := h.uc.Register(in)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{"contractor": contractor})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "email y password son requeridos")
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(out) // LoginResponse ya incluye "success": true
}

// Logout godoc
// @Summary      Cerrar sesión (revoca el token actual)
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(GetClaims(c)); err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, nil)
}

// Me godoc
// @Summary      Perfil propio del contractor autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ContractorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := GetClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "sesión requerida"})
	}
	contractor, err := h.uc.Profile(claims.ContractorID)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"contractor": contractor})
}
