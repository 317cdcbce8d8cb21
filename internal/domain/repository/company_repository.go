package repository

import "github.com/fieldserve/fieldserve-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByCode(companyCode string) (*entity.Company, error)
	// Update muta una empresa existente; si el id no existe devuelve
	// domain.ErrNotFound (un update jamás crea registros nuevos).
	Update(company *entity.Company) error
}
