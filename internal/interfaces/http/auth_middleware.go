package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldserve/fieldserve-api/internal/application/auth"
	"github.com/fieldserve/fieldserve-api/internal/application/authz"
	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/pkg/jwt"
)

// LocalClaims es la key de c.Locals donde el middleware deja los claims de
// sesión ya validados.
const LocalClaims = "session_claims"

// AuthMiddleware valida el Bearer Token JWT, rechaza tokens revocados
// (logout) y deja los claims en c.Locals. Toda petición sin sesión válida
// responde 401 con el sobre {"error": "..."}.
func AuthMiddleware(jwtSecret string, revoker auth.TokenRevoker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token inválido o expirado"})
		}
		revoked, err := revoker.IsRevoked(claims.ID)
		if err != nil {
			// Fallo de infraestructura en la denylist: negar antes que dejar
			// pasar una sesión posiblemente cerrada.
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: "no se pudo verificar la sesión, intente más tarde"})
		}
		if revoked {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "sesión cerrada"})
		}
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// GetClaims devuelve los claims de sesión del contexto (después del
// middleware de auth). nil si la petición no pasó por AuthMiddleware.
func GetClaims(c *fiber.Ctx) *jwt.SessionClaims {
	v := c.Locals(LocalClaims)
	if v == nil {
		return nil
	}
	claims, _ := v.(*jwt.SessionClaims)
	return claims
}

// ExecContext construye el contexto de ejecución de autorización a partir de
// la sesión de la petición. Vacío (no autenticado) si no hay sesión.
func ExecContext(c *fiber.Ctx) authz.ExecutionContext {
	claims := GetClaims(c)
	if claims == nil {
		return authz.ExecutionContext{}
	}
	company := entity.Unclaimed()
	if claims.CompanyID != "" {
		company = entity.ClaimedBy(claims.CompanyID)
	}
	return authz.ExecutionContext{
		ContractorID: claims.ContractorID,
		Company:      company,
		Role:         claims.Role,
	}
}

// RequireCapability devuelve un middleware que niega la petición si la
// sesión no puede ejecutar la acción. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay sesión resuelta en el contexto.
//   - 403 Forbidden    → sesión válida pero sin la capacidad (rol o empresa).
func RequireCapability(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := ExecContext(c)
		if !ctx.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "sesión requerida"})
		}
		if !authz.CanExecute(action, ctx) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "no tiene permiso para esta operación"})
		}
		return c.Next()
	}
}
