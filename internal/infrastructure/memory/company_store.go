// Package memory implementa los puertos de persistencia sobre mapas en
// proceso protegidos por mutex. Cada store serializa sus escrituras: un
// read-modify-write sobre una clave no se entrelaza con otro sobre la misma
// clave. Se usa en desarrollo y tests; en producción los adaptadores de
// postgres cumplen el mismo contrato.
package memory

import (
	"sync"

	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyStore)(nil)

// CompanyStore almacén de empresas con clave id.
type CompanyStore struct {
	mu     sync.RWMutex
	byID   map[string]entity.Company
	byCode map[string]string // companyCode → id
}

// NewCompanyStore construye el almacén vacío.
func NewCompanyStore() *CompanyStore {
	return &CompanyStore{
		byID:   make(map[string]entity.Company),
		byCode: make(map[string]string),
	}
}

// Create persiste una empresa nueva. Id o código repetidos ⇒ ErrDuplicate.
func (s *CompanyStore) Create(company *entity.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[company.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := s.byCode[company.CompanyCode]; ok {
		return domain.ErrDuplicate
	}
	s.byID[company.ID] = *company
	s.byCode[company.CompanyCode] = company.ID
	return nil
}

// GetByID devuelve la empresa o (nil, nil) si no existe.
func (s *CompanyStore) GetByID(id string) (*entity.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetByCode devuelve la empresa del código de invitación o (nil, nil).
func (s *CompanyStore) GetByCode(companyCode string) (*entity.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[companyCode]
	if !ok {
		return nil, nil
	}
	c := s.byID[id]
	return &c, nil
}

// Update muta una empresa existente; id inexistente ⇒ ErrNotFound.
// Un update jamás crea registros.
func (s *CompanyStore) Update(company *entity.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.byID[company.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if prev.CompanyCode != company.CompanyCode {
		delete(s.byCode, prev.CompanyCode)
		s.byCode[company.CompanyCode] = company.ID
	}
	s.byID[company.ID] = *company
	return nil
}
