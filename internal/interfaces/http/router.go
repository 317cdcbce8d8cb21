package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldserve/fieldserve-api/internal/application/auth"
	"github.com/fieldserve/fieldserve-api/internal/application/authz"
	"github.com/fieldserve/fieldserve-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CompanyUC  *usecase.CompanyUseCase
	TeamUC     *usecase.TeamUseCase
	EstimateUC *usecase.EstimateUseCase
	PDFUC      *usecase.EstimatePDFUseCase
	HandoffUC  *usecase.HandoffUseCase
	PricingUC  *usecase.PricingUseCase
	JWTSecret  string
	Revoker    auth.TokenRevoker
}

// Router registra las rutas de la API. Las rutas protegidas pasan primero
// por AuthMiddleware (sesión) y después por RequireCapability (política);
// la verificación de tenant del recurso vive en los casos de uso, que
// responden 404 ante cualquier recurso ajeno.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.TeamUC)
	estimateHandler := NewEstimateHandler(deps.EstimateUC, deps.PDFUC)
	handoffHandler := NewHandoffHandler(deps.HandoffUC)
	pricingHandler := NewPricingHandler(deps.PricingUC)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Vista pública de estimados de homeowner sin reclamar
	api.Get("/public/estimates/:id", estimateHandler.GetPublic)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Revoker))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/me", authHandler.Me)

	// Onboarding: crear empresa o unirse con companyCode. Sin capability:
	// son las únicas operaciones de un contractor todavía sin empresa.
	protected.Post("/companies", companyHandler.Create)
	protected.Post("/companies/join", companyHandler.Join)

	// Empresa propia
	protected.Get("/company", RequireCapability(authz.ActionViewCompany), companyHandler.GetOwn)
	protected.Put("/company", RequireCapability(authz.ActionUpdateCompany), companyHandler.UpdateOwn)
	protected.Get("/team", RequireCapability(authz.ActionListTeam), companyHandler.Team)

	// Estimados
	protected.Get("/estimates", RequireCapability(authz.ActionViewEstimates), estimateHandler.List)
	protected.Get("/estimates/:id", RequireCapability(authz.ActionViewEstimates), estimateHandler.GetByID)
	protected.Post("/estimates/:id/claim", RequireCapability(authz.ActionClaimEstimate), estimateHandler.Claim)
	protected.Get("/estimates/:id/pdf", RequireCapability(authz.ActionViewEstimates), estimateHandler.PDF)

	// Pricing override por estimado
	protected.Get("/estimates/:id/pricing", RequireCapability(authz.ActionManagePricing), pricingHandler.Get)
	protected.Put("/estimates/:id/pricing", RequireCapability(authz.ActionManagePricing), pricingHandler.Set)
	protected.Delete("/estimates/:id/pricing", RequireCapability(authz.ActionManagePricing), pricingHandler.Delete)

	// Handoffs
	protected.Post("/handoffs", RequireCapability(authz.ActionInitiateHandoff), handoffHandler.Initiate)
	protected.Patch("/handoffs/:estimateId/status", RequireCapability(authz.ActionAdvanceHandoff), handoffHandler.UpdateStatus)
	protected.Get("/handoffs", RequireCapability(authz.ActionViewOwnHandoffs), handoffHandler.ListOwn)
}
