package repository

import "github.com/fieldserve/fieldserve-api/internal/domain/entity"

// EstimateRepository define el puerto de persistencia para Estimate (DIP).
type EstimateRepository interface {
	Create(estimate *entity.Estimate) error
	GetByID(id string) (*entity.Estimate, error)
	// Update muta un estimado existente (p.ej. al reclamarlo para una
	// empresa); id inexistente ⇒ domain.ErrNotFound.
	Update(estimate *entity.Estimate) error
	// ListByCompany devuelve solo estimados de companyID, más recientes
	// primero. Filtro dentro del adaptador, no negociable.
	ListByCompany(companyID string, limit, offset int) ([]*entity.Estimate, error)
}
