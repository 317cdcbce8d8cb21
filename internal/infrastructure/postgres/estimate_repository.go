package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

var _ repository.EstimateRepository = (*EstimateRepo)(nil)

// EstimateRepo implementación del puerto EstimateRepository sobre PostgreSQL.
// El payload calculado viaja como JSONB opaco.
type EstimateRepo struct {
	pool *pgxpool.Pool
}

// NewEstimateRepository construye el adaptador de persistencia para estimados.
func NewEstimateRepository(pool *pgxpool.Pool) *EstimateRepo {
	return &EstimateRepo{pool: pool}
}

const estimateColumns = `id, company_id, is_homeowner, payload, created_at, updated_at`

// Create persiste un estimado nuevo.
func (r *EstimateRepo) Create(estimate *entity.Estimate) error {
	query := `
		INSERT INTO estimates (` + estimateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		estimate.ID, estimate.Company.Ptr(), estimate.IsHomeowner, estimate.Payload,
		estimate.CreatedAt, estimate.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert estimate: %w", err)
	}
	return nil
}

// GetByID obtiene un estimado por ID; (nil, nil) si no existe.
func (r *EstimateRepo) GetByID(id string) (*entity.Estimate, error) {
	var (
		e         entity.Estimate
		companyID *string
	)
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE id = $1`
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &companyID, &e.IsHomeowner, &e.Payload, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estimate: %w", err)
	}
	e.Company = entity.TenantRefFromPtr(companyID)
	return &e, nil
}

// Update muta un estimado existente. Id inexistente ⇒ domain.ErrNotFound.
func (r *EstimateRepo) Update(estimate *entity.Estimate) error {
	query := `
		UPDATE estimates
		SET company_id = $2, is_homeowner = $3, payload = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		estimate.ID, estimate.Company.Ptr(), estimate.IsHomeowner, estimate.Payload, estimate.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update estimate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista estimados por empresa, más recientes primero. El WHERE
// por company_id está en la consulta, no a cargo del caller.
func (r *EstimateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Estimate, error) {
	query := `
		SELECT ` + estimateColumns + `
		FROM estimates WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	defer rows.Close()
	var list []*entity.Estimate
	for rows.Next() {
		var (
			e    entity.Estimate
			coID *string
		)
		if err := rows.Scan(&e.ID, &coID, &e.IsHomeowner, &e.Payload, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		e.Company = entity.TenantRefFromPtr(coID)
		list = append(list, &e)
	}
	return list, rows.Err()
}
