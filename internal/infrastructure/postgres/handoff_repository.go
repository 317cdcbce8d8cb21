package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

var _ repository.HandoffRepository = (*HandoffRepo)(nil)

// HandoffRepo implementación del puerto HandoffRepository sobre PostgreSQL.
// estimate_id es la clave primaria: a lo sumo un handoff activo por
// estimado, y el UPDATE de estado es atómico por fila.
type HandoffRepo struct {
	pool *pgxpool.Pool
}

// NewHandoffRepository construye el adaptador de persistencia para handoffs.
func NewHandoffRepository(pool *pgxpool.Pool) *HandoffRepo {
	return &HandoffRepo{pool: pool}
}

const handoffColumns = `estimate_id, company_id, handed_off_by, handed_off_to, handed_off_at, status, locked_pricing, snapshot, updated_at`

// Set crea o reemplaza por completo el handoff del estimado (upsert sobre
// la clave primaria).
func (r *HandoffRepo) Set(handoff *entity.Handoff) error {
	query := `
		INSERT INTO handoffs (` + handoffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (estimate_id) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			handed_off_by = EXCLUDED.handed_off_by,
			handed_off_to = EXCLUDED.handed_off_to,
			handed_off_at = EXCLUDED.handed_off_at,
			status = EXCLUDED.status,
			locked_pricing = EXCLUDED.locked_pricing,
			snapshot = EXCLUDED.snapshot,
			updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(context.Background(), query,
		handoff.EstimateID, handoff.CompanyID, handoff.HandedOffBy, handoff.HandedOffTo,
		handoff.HandedOffAt, string(handoff.Status), handoff.LockedPricing,
		handoff.Snapshot, handoff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("set handoff: %w", err)
	}
	return nil
}

// GetByEstimateID obtiene el handoff del estimado; (nil, nil) si no existe.
func (r *HandoffRepo) GetByEstimateID(estimateID string) (*entity.Handoff, error) {
	query := `SELECT ` + handoffColumns + ` FROM handoffs WHERE estimate_id = $1`
	h, err := scanHandoff(r.pool.QueryRow(context.Background(), query, estimateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get handoff: %w", err)
	}
	return h, nil
}

// UpdateStatus aplica el estado y refresca updated_at en un solo UPDATE
// (atómico por fila). Sin fila afectada ⇒ domain.ErrNotFound.
// locked_pricing y snapshot quedan fuera del SET a propósito.
func (r *HandoffRepo) UpdateStatus(estimateID string, status entity.HandoffStatus, updatedAt time.Time) error {
	query := `UPDATE handoffs SET status = $2, updated_at = $3 WHERE estimate_id = $1`
	tag, err := r.pool.Exec(context.Background(), query, estimateID, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("update handoff status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByTech lista handoffs de un técnico dentro de su empresa, más
// recientes primero. Ambos filtros están en la consulta.
func (r *HandoffRepo) ListByTech(techID, companyID string) ([]*entity.Handoff, error) {
	query := `
		SELECT ` + handoffColumns + `
		FROM handoffs WHERE handed_off_to = $1 AND company_id = $2
		ORDER BY handed_off_at DESC`
	rows, err := r.pool.Query(context.Background(), query, techID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list handoffs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Handoff
	for rows.Next() {
		h, err := scanHandoff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan handoff: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func scanHandoff(row pgx.Row) (*entity.Handoff, error) {
	var (
		h      entity.Handoff
		status string
	)
	err := row.Scan(
		&h.EstimateID, &h.CompanyID, &h.HandedOffBy, &h.HandedOffTo,
		&h.HandedOffAt, &status, &h.LockedPricing, &h.Snapshot, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	h.Status = entity.HandoffStatus(status)
	return &h, nil
}
