package memory

import (
	"sort"
	"sync"

	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

var _ repository.ContractorRepository = (*ContractorStore)(nil)

// ContractorStore almacén de contractors con clave id e índice por email.
type ContractorStore struct {
	mu      sync.RWMutex
	byID    map[string]entity.Contractor
	byEmail map[string]string // email → id
}

// NewContractorStore construye el almacén vacío.
func NewContractorStore() *ContractorStore {
	return &ContractorStore{
		byID:    make(map[string]entity.Contractor),
		byEmail: make(map[string]string),
	}
}

// Create persiste un contractor nuevo. Email repetido ⇒ ErrEmailAlreadyExists.
func (s *ContractorStore) Create(contractor *entity.Contractor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[contractor.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := s.byEmail[contractor.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	s.byID[contractor.ID] = *contractor
	s.byEmail[contractor.Email] = contractor.ID
	return nil
}

// GetByID devuelve el contractor o (nil, nil) si no existe.
func (s *ContractorStore) GetByID(id string) (*entity.Contractor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetByEmail devuelve el contractor del email o (nil, nil).
func (s *ContractorStore) GetByEmail(email string) (*entity.Contractor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	c := s.byID[id]
	return &c, nil
}

// Update muta un contractor existente; id inexistente ⇒ ErrNotFound.
func (s *ContractorStore) Update(contractor *entity.Contractor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.byID[contractor.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if prev.Email != contractor.Email {
		if _, taken := s.byEmail[contractor.Email]; taken {
			return domain.ErrEmailAlreadyExists
		}
		delete(s.byEmail, prev.Email)
		s.byEmail[contractor.Email] = contractor.ID
	}
	s.byID[contractor.ID] = *contractor
	return nil
}

// ListByCompany devuelve solo contractors de companyID, más recientes
// primero. El filtro vive aquí adentro: el caller no puede saltárselo.
func (s *ContractorStore) ListByCompany(companyID string, limit, offset int) ([]*entity.Contractor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.Contractor
	for _, c := range s.byID {
		if !c.Company.Is(companyID) {
			continue
		}
		cc := c
		list = append(list, &cc)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return paginate(list, limit, offset), nil
}

// paginate aplica limit/offset a una lista ya ordenada.
func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
