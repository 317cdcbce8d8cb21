package repository

import "github.com/fieldserve/fieldserve-api/internal/domain/entity"

// PricingOverrideRepository define el puerto de persistencia para
// PricingOverride (DIP). Contenedor con clave estimateID.
type PricingOverrideRepository interface {
	// Get devuelve el override o (nil, nil) si no existe.
	Get(estimateID string) (*entity.PricingOverride, error)
	// Set reemplaza por completo el override del estimado (upsert).
	Set(override *entity.PricingOverride) error
	// Delete es idempotente: borrar una clave ausente no es error.
	Delete(estimateID string) error
}
