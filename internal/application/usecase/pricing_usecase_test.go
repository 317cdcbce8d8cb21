package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldserve/fieldserve-api/internal/application/analytics"
	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/application/usecase"
	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/infrastructure/memory"
)

func newPricingFixture(t *testing.T) *usecase.PricingUseCase {
	t.Helper()
	estimates := memory.NewEstimateStore()
	now := time.Now()
	require.NoError(t, estimates.Create(&entity.Estimate{
		ID: "est-1", Company: entity.ClaimedBy("empresa-1"), CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, estimates.Create(&entity.Estimate{
		ID: "est-ajeno", Company: entity.ClaimedBy("empresa-2"), CreatedAt: now, UpdatedAt: now,
	}))
	return usecase.NewPricingUseCase(memory.NewPricingOverrideStore(), estimates, analytics.Noop{})
}

func tier(min, max int64) *dto.PricingTierRequest {
	return &dto.PricingTierRequest{Min: decimal.NewFromInt(min), Max: decimal.NewFromInt(max)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Set
// ──────────────────────────────────────────────────────────────────────────────

func TestPricingSet_RegistraYAtribuye(t *testing.T) {
	uc := newPricingFixture(t)
	out, err := uc.Set("office-1", "empresa-1", "est-1", dto.SetCustomPricingRequest{
		Good:                 tier(4500, 5200),
		Better:               tier(5800, 6400),
		Best:                 tier(7000, 8100),
		PricingVarianceNotes: "acceso difícil al ático",
	})
	require.NoError(t, err)
	assert.Equal(t, "office-1", out.UpdatedBy, "el override queda atribuido")
	assert.Equal(t, "acceso difícil al ático", out.PricingVarianceNotes)
	require.Len(t, out.CustomPricing, 3)
	assert.True(t, out.CustomPricing[entity.TierGood].Min.Equal(decimal.NewFromInt(4500)))
	assert.True(t, out.CustomPricing[entity.TierBest].Max.Equal(decimal.NewFromInt(8100)))
}

func TestPricingSet_MinMayorQueMaxEsBadRequest(t *testing.T) {
	uc := newPricingFixture(t)
	_, err := uc.Set("office-1", "empresa-1", "est-1", dto.SetCustomPricingRequest{
		Good: tier(5200, 4500),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Un solo tier inválido invalida toda la petición, aunque el resto sea válido
	_, err = uc.Set("office-1", "empresa-1", "est-1", dto.SetCustomPricingRequest{
		Good:   tier(4500, 5200),
		Better: tier(9000, 100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nada quedó persistido
	_, err = uc.Get("est-1", "empresa-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPricingSet_MinIgualMaxEsValido(t *testing.T) {
	uc := newPricingFixture(t)
	out, err := uc.Set("office-1", "empresa-1", "est-1", dto.SetCustomPricingRequest{
		Good: tier(5000, 5000),
	})
	require.NoError(t, err)
	assert.True(t, out.CustomPricing[entity.TierGood].Min.Equal(out.CustomPricing[entity.TierGood].Max))
}

func TestPricingSet_SinNingunTierEsBadRequest(t *testing.T) {
	uc := newPricingFixture(t)
	_, err := uc.Set("office-1", "empresa-1", "est-1", dto.SetCustomPricingRequest{
		PricingVarianceNotes: "solo notas, sin precios",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPricingSet_ReemplazaPorCompleto(t *testing.T) {
	uc := newPricingFixture(t)
	_, err := uc.Set("office-1", "empresa-1", "est-1", dto.SetCustomPricingRequest{
		Good: tier(4500, 5200), Better: tier(5800, 6400),
	})
	require.NoError(t, err)

	// Segundo Set con solo "best": good y better desaparecen (no es merge)
	out, err := uc.Set("owner-1", "empresa-1", "est-1", dto.SetCustomPricingRequest{
		Best: tier(7000, 8100),
	})
	require.NoError(t, err)
	require.Len(t, out.CustomPricing, 1)
	assert.Contains(t, out.CustomPricing, entity.TierBest)
	assert.Equal(t, "owner-1", out.UpdatedBy)
}

func TestPricingSet_EstimadoAjenoEsNotFound(t *testing.T) {
	uc := newPricingFixture(t)
	_, err := uc.Set("office-1", "empresa-1", "est-ajeno", dto.SetCustomPricingRequest{
		Good: tier(4500, 5200),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Get / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestPricingGet_SinOverrideEsNotFound(t *testing.T) {
	uc := newPricingFixture(t)
	_, err := uc.Get("est-1", "empresa-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPricingDelete_VuelveAlPrecioCalculado(t *testing.T) {
	uc := newPricingFixture(t)
	_, err := uc.Set("office-1", "empresa-1", "est-1", dto.SetCustomPricingRequest{
		Good: tier(4500, 5200),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete("est-1", "empresa-1"))
	_, err = uc.Get("est-1", "empresa-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Idempotente
	require.NoError(t, uc.Delete("est-1", "empresa-1"))
}

func TestPricingDelete_EstimadoAjenoEsNotFound(t *testing.T) {
	uc := newPricingFixture(t)
	assert.ErrorIs(t, uc.Delete("est-ajeno", "empresa-1"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete("no-existe", "empresa-1"), domain.ErrNotFound)
}
