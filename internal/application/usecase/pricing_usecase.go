package usecase

import (
	"time"

	"github.com/fieldserve/fieldserve-api/internal/application/analytics"
	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

// PricingUseCase administra los overrides de precio: el canal explícito y
// atribuido para cambiar el precio final de un estimado con handoff
// bloqueado, sin tocar jamás el snapshot del handoff.
type PricingUseCase struct {
	pricingRepo  repository.PricingOverrideRepository
	estimateRepo repository.EstimateRepository
	recorder     analytics.Recorder
}

// NewPricingUseCase construye el caso de uso.
func NewPricingUseCase(
	pricingRepo repository.PricingOverrideRepository,
	estimateRepo repository.EstimateRepository,
	recorder analytics.Recorder,
) *PricingUseCase {
	return &PricingUseCase{pricingRepo: pricingRepo, estimateRepo: estimateRepo, recorder: recorder}
}

// Get devuelve el override vigente del estimado. El estimado debe pertenecer
// a la empresa de la sesión (cross-tenant ⇒ ErrNotFound).
func (uc *PricingUseCase) Get(estimateID, companyID string) (*dto.PricingOverrideResponse, error) {
	if err := uc.ownEstimate(estimateID, companyID); err != nil {
		return nil, err
	}
	override, err := uc.pricingRepo.Get(estimateID)
	if err != nil {
		return nil, err
	}
	if override == nil {
		return nil, domain.ErrNotFound
	}
	return toPricingResponse(override), nil
}

// Set reemplaza por completo el override del estimado. Valida min ≤ max por
// tier en la frontera, antes de persistir; el registro queda atribuido con
// el contractor que lo hizo. El companyID del override es siempre el de la
// empresa dueña del estimado (invariante verificado aquí).
func (uc *PricingUseCase) Set(callerID, companyID, estimateID string, in dto.SetCustomPricingRequest) (*dto.PricingOverrideResponse, error) {
	if err := uc.ownEstimate(estimateID, companyID); err != nil {
		return nil, err
	}
	custom, err := buildCustomPricing(in)
	if err != nil {
		return nil, err
	}
	override := &entity.PricingOverride{
		EstimateID:           estimateID,
		CompanyID:            companyID,
		CustomPricing:        custom,
		PricingVarianceNotes: in.PricingVarianceNotes,
		UpdatedAt:            time.Now(),
		UpdatedBy:            callerID,
	}
	if err := uc.pricingRepo.Set(override); err != nil {
		return nil, err
	}
	uc.recorder.Record(analytics.EventPricingOverridden, map[string]any{
		"estimate_id": estimateID,
		"company_id":  companyID,
		"updated_by":  callerID,
	})
	return toPricingResponse(override), nil
}

// Delete limpia el override, volviendo al precio calculado original.
// Idempotente: borrar un override ausente no es error.
func (uc *PricingUseCase) Delete(estimateID, companyID string) error {
	if err := uc.ownEstimate(estimateID, companyID); err != nil {
		return err
	}
	return uc.pricingRepo.Delete(estimateID)
}

// ownEstimate verifica que el estimado exista y pertenezca a companyID.
// Inexistente y cross-tenant son el mismo ErrNotFound.
func (uc *PricingUseCase) ownEstimate(estimateID, companyID string) error {
	estimate, err := uc.estimateRepo.GetByID(estimateID)
	if err != nil {
		return err
	}
	if estimate == nil || !estimate.Company.Is(companyID) {
		return domain.ErrNotFound
	}
	return nil
}

// buildCustomPricing convierte y valida los tiers del request.
func buildCustomPricing(in dto.SetCustomPricingRequest) (*entity.CustomPricing, error) {
	toTier := func(t *dto.PricingTierRequest) (*entity.PricingTier, error) {
		if t == nil {
			return nil, nil
		}
		tier := entity.PricingTier{Min: t.Min, Max: t.Max}
		if !tier.Valid() {
			return nil, domain.ErrInvalidInput
		}
		return &tier, nil
	}
	good, err := toTier(in.Good)
	if err != nil {
		return nil, err
	}
	better, err := toTier(in.Better)
	if err != nil {
		return nil, err
	}
	best, err := toTier(in.Best)
	if err != nil {
		return nil, err
	}
	if good == nil && better == nil && best == nil {
		return nil, domain.ErrInvalidInput // un override sin ningún tier no dice nada
	}
	return &entity.CustomPricing{Good: good, Better: better, Best: best}, nil
}

func toPricingResponse(o *entity.PricingOverride) *dto.PricingOverrideResponse {
	if o == nil {
		return nil
	}
	tiers := map[string]dto.PricingTierResponse{}
	if o.CustomPricing != nil {
		for name, tier := range o.CustomPricing.Tiers() {
			tiers[name] = dto.PricingTierResponse{Min: tier.Min, Max: tier.Max}
		}
	}
	return &dto.PricingOverrideResponse{
		EstimateID:           o.EstimateID,
		CompanyID:            o.CompanyID,
		CustomPricing:        tiers,
		PricingVarianceNotes: o.PricingVarianceNotes,
		UpdatedAt:            o.UpdatedAt,
		UpdatedBy:            o.UpdatedBy,
	}
}
