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

var _ repository.ContractorRepository = (*ContractorRepo)(nil)

// ContractorRepo implementación del puerto ContractorRepository sobre PostgreSQL.
type ContractorRepo struct {
	pool *pgxpool.Pool
}

// NewContractorRepository construye el adaptador de persistencia para contractors.
func NewContractorRepository(pool *pgxpool.Pool) *ContractorRepo {
	return &ContractorRepo{pool: pool}
}

const contractorColumns = `id, email, password_hash, name, role, company_id, status, created_at, updated_at`

// Create persiste un contractor nuevo. Email repetido ⇒ domain.ErrEmailAlreadyExists.
func (r *ContractorRepo) Create(contractor *entity.Contractor) error {
	query := `
		INSERT INTO contractors (` + contractorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		contractor.ID, contractor.Email, contractor.PasswordHash, contractor.Name,
		contractor.Role, contractor.Company.Ptr(), contractor.Status,
		contractor.CreatedAt, contractor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert contractor: %w", err)
	}
	return nil
}

// GetByID obtiene un contractor por ID; (nil, nil) si no existe.
func (r *ContractorRepo) GetByID(id string) (*entity.Contractor, error) {
	return r.getOne(`SELECT `+contractorColumns+` FROM contractors WHERE id = $1`, id)
}

// GetByEmail obtiene un contractor por email; (nil, nil) si no existe.
func (r *ContractorRepo) GetByEmail(email string) (*entity.Contractor, error) {
	return r.getOne(`SELECT `+contractorColumns+` FROM contractors WHERE email = $1`, email)
}

func (r *ContractorRepo) getOne(query string, arg any) (*entity.Contractor, error) {
	var (
		c         entity.Contractor
		companyID *string
	)
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Email, &c.PasswordHash, &c.Name, &c.Role, &companyID,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contractor: %w", err)
	}
	c.Company = entity.TenantRefFromPtr(companyID)
	return &c, nil
}

// Update muta un contractor existente. Id inexistente ⇒ domain.ErrNotFound.
func (r *ContractorRepo) Update(contractor *entity.Contractor) error {
	query := `
		UPDATE contractors
		SET email = $2, password_hash = $3, name = $4, role = $5,
		    company_id = $6, status = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		contractor.ID, contractor.Email, contractor.PasswordHash, contractor.Name,
		contractor.Role, contractor.Company.Ptr(), contractor.Status, contractor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update contractor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista contractors por empresa con paginación. El WHERE por
// company_id vive en la consulta: el filtro de tenant no es opcional.
func (r *ContractorRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Contractor, error) {
	query := `
		SELECT ` + contractorColumns + `
		FROM contractors WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list contractors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contractor
	for rows.Next() {
		var (
			c    entity.Contractor
			coID *string
		)
		if err := rows.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.Name, &c.Role, &coID, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contractor: %w", err)
		}
		c.Company = entity.TenantRefFromPtr(coID)
		list = append(list, &c)
	}
	return list, rows.Err()
}
