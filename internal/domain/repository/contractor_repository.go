package repository

import "github.com/fieldserve/fieldserve-api/internal/domain/entity"

// ContractorRepository define el puerto de persistencia para Contractor (DIP).
type ContractorRepository interface {
	Create(contractor *entity.Contractor) error
	GetByID(id string) (*entity.Contractor, error)
	GetByEmail(email string) (*entity.Contractor, error)
	// Update muta un contractor existente; id inexistente ⇒ domain.ErrNotFound.
	Update(contractor *entity.Contractor) error
	// ListByCompany devuelve solo contractors cuya empresa coincide con
	// companyID. El filtro se aplica dentro del adaptador: un caller que
	// olvide filtrar no puede filtrar datos de otro tenant.
	ListByCompany(companyID string, limit, offset int) ([]*entity.Contractor, error)
}
