package repository

import (
	"time"

	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
)

// HandoffRepository define el puerto de persistencia para Handoff (DIP).
// La identidad del registro es el estimateID: a lo sumo un handoff activo
// por estimado. Los handoffs nunca se eliminan (pista de auditoría).
type HandoffRepository interface {
	// Set crea o reemplaza por completo el handoff del estimado (upsert
	// idempotente, usado al iniciar una transferencia).
	Set(handoff *entity.Handoff) error
	GetByEstimateID(estimateID string) (*entity.Handoff, error)
	// UpdateStatus aplica el nuevo estado y refresca updatedAt de forma
	// atómica sobre la clave. Si no existe handoff para el estimado
	// devuelve domain.ErrNotFound sin mutar nada.
	UpdateStatus(estimateID string, status entity.HandoffStatus, updatedAt time.Time) error
	// ListByTech devuelve los handoffs con handedOffTo == techID y empresa
	// companyID, ordenados por handedOffAt descendente (más reciente primero).
	ListByTech(techID, companyID string) ([]*entity.Handoff, error)
}
