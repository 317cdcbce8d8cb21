package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

var _ repository.PricingOverrideRepository = (*PricingOverrideRepo)(nil)

// PricingOverrideRepo implementación del puerto PricingOverrideRepository
// sobre PostgreSQL. Cada tier se guarda como par de columnas NUMERIC
// nullable (codec shopspring/decimal registrado en el pool).
type PricingOverrideRepo struct {
	pool *pgxpool.Pool
}

// NewPricingOverrideRepository construye el adaptador de persistencia.
func NewPricingOverrideRepository(pool *pgxpool.Pool) *PricingOverrideRepo {
	return &PricingOverrideRepo{pool: pool}
}

const pricingColumns = `estimate_id, company_id, good_min, good_max, better_min, better_max, best_min, best_max, variance_notes, updated_at, updated_by`

// Get devuelve el override o (nil, nil) si no existe.
func (r *PricingOverrideRepo) Get(estimateID string) (*entity.PricingOverride, error) {
	var (
		o                                entity.PricingOverride
		goodMin, goodMax                 *decimal.Decimal
		betterMin, betterMax             *decimal.Decimal
		bestMin, bestMax                 *decimal.Decimal
	)
	query := `SELECT ` + pricingColumns + ` FROM pricing_overrides WHERE estimate_id = $1`
	err := r.pool.QueryRow(context.Background(), query, estimateID).Scan(
		&o.EstimateID, &o.CompanyID,
		&goodMin, &goodMax, &betterMin, &betterMax, &bestMin, &bestMax,
		&o.PricingVarianceNotes, &o.UpdatedAt, &o.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pricing override: %w", err)
	}
	o.CustomPricing = &entity.CustomPricing{
		Good:   tierFromColumns(goodMin, goodMax),
		Better: tierFromColumns(betterMin, betterMax),
		Best:   tierFromColumns(bestMin, bestMax),
	}
	return &o, nil
}

// Set reemplaza por completo el override del estimado (upsert).
func (r *PricingOverrideRepo) Set(override *entity.PricingOverride) error {
	goodMin, goodMax := tierToColumns(override.CustomPricing, entity.TierGood)
	betterMin, betterMax := tierToColumns(override.CustomPricing, entity.TierBetter)
	bestMin, bestMax := tierToColumns(override.CustomPricing, entity.TierBest)
	query := `
		INSERT INTO pricing_overrides (` + pricingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (estimate_id) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			good_min = EXCLUDED.good_min, good_max = EXCLUDED.good_max,
			better_min = EXCLUDED.better_min, better_max = EXCLUDED.better_max,
			best_min = EXCLUDED.best_min, best_max = EXCLUDED.best_max,
			variance_notes = EXCLUDED.variance_notes,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`
	_, err := r.pool.Exec(context.Background(), query,
		override.EstimateID, override.CompanyID,
		goodMin, goodMax, betterMin, betterMax, bestMin, bestMax,
		override.PricingVarianceNotes, override.UpdatedAt, override.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("set pricing override: %w", err)
	}
	return nil
}

// Delete es idempotente: cero filas afectadas no es error.
func (r *PricingOverrideRepo) Delete(estimateID string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM pricing_overrides WHERE estimate_id = $1`, estimateID)
	if err != nil {
		return fmt.Errorf("delete pricing override: %w", err)
	}
	return nil
}

func tierFromColumns(min, max *decimal.Decimal) *entity.PricingTier {
	if min == nil || max == nil {
		return nil
	}
	return &entity.PricingTier{Min: *min, Max: *max}
}

func tierToColumns(p *entity.CustomPricing, name string) (*decimal.Decimal, *decimal.Decimal) {
	if p == nil {
		return nil, nil
	}
	tier, ok := p.Tiers()[name]
	if !ok {
		return nil, nil
	}
	return &tier.Min, &tier.Max
}
