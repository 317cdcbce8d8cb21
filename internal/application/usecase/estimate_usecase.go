package usecase

import (
	"time"

	"github.com/fieldserve/fieldserve-api/internal/application/analytics"
	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

// EstimateUseCase lecturas de estimados con aislamiento de tenant, lectura
// pública de estimados de homeowner y reclamo de estimados sin empresa.
type EstimateUseCase struct {
	estimateRepo repository.EstimateRepository
	recorder     analytics.Recorder
}

// NewEstimateUseCase construye el caso de uso.
func NewEstimateUseCase(estimateRepo repository.EstimateRepository, recorder analytics.Recorder) *EstimateUseCase {
	return &EstimateUseCase{estimateRepo: estimateRepo, recorder: recorder}
}

// ListByCompany lista los estimados de la empresa de la sesión.
func (uc *EstimateUseCase) ListByCompany(companyID string, page dto.PageRequest) ([]dto.EstimateResponse, error) {
	page.DefaultPage()
	estimates, err := uc.estimateRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EstimateResponse, 0, len(estimates))
	for _, e := range estimates {
		out = append(out, *toEstimateResponse(e))
	}
	return out, nil
}

// GetForCompany devuelve un estimado si pertenece a companyID. Inexistente y
// de otra empresa son indistinguibles a propósito: ambos ErrNotFound, para
// no revelar la existencia de datos de otro tenant.
func (uc *EstimateUseCase) GetForCompany(estimateID, companyID string) (*dto.EstimateResponse, error) {
	estimate, err := uc.estimateRepo.GetByID(estimateID)
	if err != nil {
		return nil, err
	}
	if estimate == nil || !estimate.Company.Is(companyID) {
		return nil, domain.ErrNotFound
	}
	return toEstimateResponse(estimate), nil
}

// GetPublic devuelve un estimado legible sin sesión: solo homeowner sin
// empresa. Cualquier otro caso es ErrNotFound, nunca el payload.
func (uc *EstimateUseCase) GetPublic(estimateID string) (*dto.EstimateResponse, error) {
	estimate, err := uc.estimateRepo.GetByID(estimateID)
	if err != nil {
		return nil, err
	}
	if estimate == nil || !estimate.PubliclyReadable() {
		return nil, domain.ErrNotFound
	}
	return toEstimateResponse(estimate), nil
}

// Claim reclama un estimado sin empresa para la empresa de la sesión.
// Ya reclamado por otra empresa ⇒ ErrNotFound (ocultar existencia);
// ya reclamado por la propia ⇒ ErrConflict.
func (uc *EstimateUseCase) Claim(estimateID, companyID, callerID string) (*dto.EstimateResponse, error) {
	estimate, err := uc.estimateRepo.GetByID(estimateID)
	if err != nil {
		return nil, err
	}
	if estimate == nil {
		return nil, domain.ErrNotFound
	}
	if owner, claimed := estimate.Company.CompanyID(); claimed {
		if owner == companyID {
			return nil, domain.ErrConflict
		}
		return nil, domain.ErrNotFound
	}
	estimate.Company = entity.ClaimedBy(companyID)
	estimate.UpdatedAt = time.Now()
	if err := uc.estimateRepo.Update(estimate); err != nil {
		return nil, err
	}
	uc.recorder.Record(analytics.EventEstimateClaimed, map[string]any{
		"estimate_id": estimateID,
		"company_id":  companyID,
		"claimed_by":  callerID,
	})
	return toEstimateResponse(estimate), nil
}

func toEstimateResponse(e *entity.Estimate) *dto.EstimateResponse {
	if e == nil {
		return nil
	}
	return &dto.EstimateResponse{
		EstimateID:  e.ID,
		CompanyID:   e.Company.OrEmpty(),
		IsHomeowner: e.IsHomeowner,
		Payload:     e.Payload,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
