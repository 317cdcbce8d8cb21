package usecase

import (
	"time"

	"github.com/fieldserve/fieldserve-api/internal/application/analytics"
	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

// HandoffUseCase opera la máquina de estados de transferencia de estimados:
// handed_off → in_progress → completed, con precio bloqueado desde el inicio.
type HandoffUseCase struct {
	handoffRepo    repository.HandoffRepository
	estimateRepo   repository.EstimateRepository
	contractorRepo repository.ContractorRepository
	recorder       analytics.Recorder
	// strict exige transiciones adyacentes hacia adelante. En false se
	// reproduce el comportamiento permisivo original: cualquier estado de
	// avance se aplica sin validar el estado actual.
	strict bool
}

// NewHandoffUseCase construye el caso de uso.
func NewHandoffUseCase(
	handoffRepo repository.HandoffRepository,
	estimateRepo repository.EstimateRepository,
	contractorRepo repository.ContractorRepository,
	recorder analytics.Recorder,
	strictTransitions bool,
) *HandoffUseCase {
	return &HandoffUseCase{
		handoffRepo:    handoffRepo,
		estimateRepo:   estimateRepo,
		contractorRepo: contractorRepo,
		recorder:       recorder,
		strict:         strictTransitions,
	}
}

// Initiate crea (o reemplaza) el handoff del estimado hacia un técnico.
// El receptor debe existir, ser rol tech y pertenecer a la misma empresa que
// el estimado y el caller. El payload del estimado se congela en el snapshot
// y LockedPricing queda en true: a partir de aquí el único canal para cambiar
// el precio efectivo es un PricingOverride explícito.
//
// Reemplazar un handoff existente es decisión del caller; el registro
// anterior se sobreescribe (setHandoff es un upsert por estimateID).
func (uc *HandoffUseCase) Initiate(callerID, companyID string, in dto.InitiateHandoffRequest) (*dto.HandoffResponse, error) {
	estimate, err := uc.estimateRepo.GetByID(in.EstimateID)
	if err != nil {
		return nil, err
	}
	if estimate == nil || !estimate.Company.Is(companyID) {
		return nil, domain.ErrNotFound
	}
	tech, err := uc.contractorRepo.GetByID(in.HandedOffTo)
	if err != nil {
		return nil, err
	}
	if tech == nil || !tech.Company.Is(companyID) || tech.Role != entity.RoleTech {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	handoff := &entity.Handoff{
		EstimateID:    estimate.ID,
		CompanyID:     companyID,
		HandedOffBy:   callerID,
		HandedOffTo:   tech.ID,
		HandedOffAt:   now,
		Status:        entity.HandoffHandedOff,
		LockedPricing: true,
		Snapshot:      snapshotPayload(estimate.Payload),
		UpdatedAt:     now,
	}
	if err := uc.handoffRepo.Set(handoff); err != nil {
		return nil, err
	}
	uc.recorder.Record(analytics.EventHandoffInitiated, map[string]any{
		"estimate_id":   estimate.ID,
		"company_id":    companyID,
		"handed_off_by": callerID,
		"handed_off_to": tech.ID,
	})
	return toHandoffResponse(handoff), nil
}

// Advance aplica un estado de avance al handoff del estimado. Sin handoff
// para el id (o de otra empresa) ⇒ ErrNotFound sin mutación alguna. En modo
// estricto una transición no adyacente (p.ej. handed_off → completed) se
// rechaza con ErrConflict. LockedPricing y el snapshot nunca se tocan.
func (uc *HandoffUseCase) Advance(companyID, estimateID string, in dto.UpdateHandoffStatusRequest) (*dto.HandoffResponse, error) {
	next, ok := entity.ParseHandoffStatus(in.Status)
	if !ok || !next.Advance() {
		return nil, domain.ErrInvalidInput
	}
	handoff, err := uc.handoffRepo.GetByEstimateID(estimateID)
	if err != nil {
		return nil, err
	}
	if handoff == nil || handoff.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if uc.strict && !handoff.Status.CanAdvanceTo(next) {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	if err := uc.handoffRepo.UpdateStatus(estimateID, next, now); err != nil {
		return nil, err
	}
	handoff.Status = next
	handoff.UpdatedAt = now
	uc.recorder.Record(analytics.EventHandoffAdvanced, map[string]any{
		"estimate_id": estimateID,
		"company_id":  companyID,
		"status":      string(next),
	})
	return toHandoffResponse(handoff), nil
}

// ListForTech lista los handoffs asignados al técnico dentro de su empresa,
// más recientes primero (orden por handedOffAt lo garantiza el repositorio).
func (uc *HandoffUseCase) ListForTech(techID, companyID string) ([]dto.HandoffResponse, error) {
	handoffs, err := uc.handoffRepo.ListByTech(techID, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HandoffResponse, 0, len(handoffs))
	for _, h := range handoffs {
		out = append(out, *toHandoffResponse(h))
	}
	return out, nil
}

// snapshotPayload copia el payload para que mutaciones posteriores del
// estimado no alteren lo congelado en el handoff.
func snapshotPayload(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	snap := make(map[string]any, len(payload))
	for k, v := range payload {
		snap[k] = v
	}
	return snap
}

func toHandoffResponse(h *entity.Handoff) *dto.HandoffResponse {
	if h == nil {
		return nil
	}
	return &dto.HandoffResponse{
		EstimateID:    h.EstimateID,
		CompanyID:     h.CompanyID,
		HandedOffBy:   h.HandedOffBy,
		HandedOffTo:   h.HandedOffTo,
		HandedOffAt:   h.HandedOffAt,
		Status:        string(h.Status),
		LockedPricing: h.LockedPricing,
		Snapshot:      h.Snapshot,
		UpdatedAt:     h.UpdatedAt,
	}
}
