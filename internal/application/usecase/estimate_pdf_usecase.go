package usecase

import (
	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

// EstimatePDFUseCase arma el resumen PDF de un estimado: datos de la
// empresa, estado del handoff si existe y el precio vigente (override si
// hay, si no el payload calculado).
type EstimatePDFUseCase struct {
	estimateRepo repository.EstimateRepository
	companyRepo  repository.CompanyRepository
	handoffRepo  repository.HandoffRepository
	pricingRepo  repository.PricingOverrideRepository
	generator    EstimatePDFGenerator
}

// NewEstimatePDFUseCase construye el caso de uso.
func NewEstimatePDFUseCase(
	estimateRepo repository.EstimateRepository,
	companyRepo repository.CompanyRepository,
	handoffRepo repository.HandoffRepository,
	pricingRepo repository.PricingOverrideRepository,
	generator EstimatePDFGenerator,
) *EstimatePDFUseCase {
	return &EstimatePDFUseCase{
		estimateRepo: estimateRepo,
		companyRepo:  companyRepo,
		handoffRepo:  handoffRepo,
		pricingRepo:  pricingRepo,
		generator:    generator,
	}
}

// Generate produce los bytes del PDF. Mismo aislamiento que cualquier
// lectura: el estimado debe pertenecer a la empresa de la sesión.
func (uc *EstimatePDFUseCase) Generate(estimateID, companyID string) ([]byte, error) {
	estimate, err := uc.estimateRepo.GetByID(estimateID)
	if err != nil {
		return nil, err
	}
	if estimate == nil || !estimate.Company.Is(companyID) {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	// Handoff y override son opcionales en el resumen.
	handoff, err := uc.handoffRepo.GetByEstimateID(estimateID)
	if err != nil {
		return nil, err
	}
	override, err := uc.pricingRepo.Get(estimateID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateEstimatePDF(estimate, company, handoff, override)
}
