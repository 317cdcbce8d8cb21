package memory

import (
	"sync"

	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

var _ repository.PricingOverrideRepository = (*PricingOverrideStore)(nil)

// PricingOverrideStore almacén de overrides de precio con clave estimateId.
type PricingOverrideStore struct {
	mu         sync.RWMutex
	byEstimate map[string]entity.PricingOverride
}

// NewPricingOverrideStore construye el almacén vacío.
func NewPricingOverrideStore() *PricingOverrideStore {
	return &PricingOverrideStore{byEstimate: make(map[string]entity.PricingOverride)}
}

// Get devuelve el override o (nil, nil) si no existe.
func (s *PricingOverrideStore) Get(estimateID string) (*entity.PricingOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.byEstimate[estimateID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// Set reemplaza por completo el override del estimado (upsert).
func (s *PricingOverrideStore) Set(override *entity.PricingOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byEstimate[override.EstimateID] = *override
	return nil
}

// Delete es idempotente: borrar una clave ausente no es error.
func (s *PricingOverrideStore) Delete(estimateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byEstimate, estimateID)
	return nil
}
