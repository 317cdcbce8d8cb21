package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

var _ repository.HandoffRepository = (*HandoffStore)(nil)

// HandoffStore almacén de handoffs con clave estimateId (a lo sumo un
// handoff activo por estimado). Las transiciones de estado son atómicas
// por clave gracias al mutex del store.
type HandoffStore struct {
	mu         sync.RWMutex
	byEstimate map[string]entity.Handoff
}

// NewHandoffStore construye el almacén vacío.
func NewHandoffStore() *HandoffStore {
	return &HandoffStore{byEstimate: make(map[string]entity.Handoff)}
}

// Set crea o reemplaza por completo el handoff del estimado (upsert).
func (s *HandoffStore) Set(handoff *entity.Handoff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byEstimate[handoff.EstimateID] = *handoff
	return nil
}

// GetByEstimateID devuelve el handoff o (nil, nil) si no existe.
func (s *HandoffStore) GetByEstimateID(estimateID string) (*entity.Handoff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.byEstimate[estimateID]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

// UpdateStatus aplica el estado y refresca updatedAt en una sola sección
// crítica. Sin handoff para el id ⇒ ErrNotFound, sin mutación alguna.
// LockedPricing y el snapshot no se tocan.
func (s *HandoffStore) UpdateStatus(estimateID string, status entity.HandoffStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.byEstimate[estimateID]
	if !ok {
		return domain.ErrNotFound
	}
	h.Status = status
	h.UpdatedAt = updatedAt
	s.byEstimate[estimateID] = h
	return nil
}

// ListByTech devuelve los handoffs con handedOffTo == techID y empresa
// companyID, ordenados por handedOffAt descendente. Ambos filtros viven
// aquí adentro.
func (s *HandoffStore) ListByTech(techID, companyID string) ([]*entity.Handoff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.Handoff
	for _, h := range s.byEstimate {
		if h.HandedOffTo != techID || h.CompanyID != companyID {
			continue
		}
		hh := h
		list = append(list, &hh)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].HandedOffAt.After(list[j].HandedOffAt)
	})
	return list, nil
}
