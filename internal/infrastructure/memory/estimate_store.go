package memory

import (
	"sort"
	"sync"

	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

var _ repository.EstimateRepository = (*EstimateStore)(nil)

// EstimateStore almacén de estimados con clave estimateId.
type EstimateStore struct {
	mu   sync.RWMutex
	byID map[string]entity.Estimate
}

// NewEstimateStore construye el almacén vacío.
func NewEstimateStore() *EstimateStore {
	return &EstimateStore{byID: make(map[string]entity.Estimate)}
}

// Create persiste un estimado nuevo.
func (s *EstimateStore) Create(estimate *entity.Estimate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[estimate.ID]; ok {
		return domain.ErrDuplicate
	}
	s.byID[estimate.ID] = *estimate
	return nil
}

// GetByID devuelve el estimado o (nil, nil) si no existe.
func (s *EstimateStore) GetByID(id string) (*entity.Estimate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// Update muta un estimado existente; id inexistente ⇒ ErrNotFound.
func (s *EstimateStore) Update(estimate *entity.Estimate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[estimate.ID]; !ok {
		return domain.ErrNotFound
	}
	s.byID[estimate.ID] = *estimate
	return nil
}

// ListByCompany devuelve solo estimados de companyID, más recientes primero.
// El filtro de tenant se aplica aquí, no en el caller.
func (s *EstimateStore) ListByCompany(companyID string, limit, offset int) ([]*entity.Estimate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.Estimate
	for _, e := range s.byID {
		if !e.Company.Is(companyID) {
			continue
		}
		ee := e
		list = append(list, &ee)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return paginate(list, limit, offset), nil
}
