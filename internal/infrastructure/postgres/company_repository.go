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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

const companyColumns = `id, name, address, license_number, tax_id, payment_method, company_code, is_verified, created_at, updated_at`

// Create persiste una empresa nueva.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.Address, company.LicenseNumber, company.TaxID,
		company.PaymentMethod, company.CompanyCode, company.IsVerified,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID; (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.getOne(`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByCode obtiene una empresa por su código de invitación; (nil, nil) si no existe.
func (r *CompanyRepo) GetByCode(companyCode string) (*entity.Company, error) {
	return r.getOne(`SELECT `+companyColumns+` FROM companies WHERE company_code = $1`, companyCode)
}

func (r *CompanyRepo) getOne(query string, arg any) (*entity.Company, error) {
	var c entity.Company
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.Address, &c.LicenseNumber, &c.TaxID,
		&c.PaymentMethod, &c.CompanyCode, &c.IsVerified,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update muta una empresa existente. Id inexistente ⇒ domain.ErrNotFound:
// un UPDATE sin filas afectadas jamás se convierte en INSERT.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, address = $3, license_number = $4, tax_id = $5,
		    payment_method = $6, company_code = $7, is_verified = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.Address, company.LicenseNumber, company.TaxID,
		company.PaymentMethod, company.CompanyCode, company.IsVerified, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
