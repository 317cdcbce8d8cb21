package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldserve/fieldserve-api/internal/application/analytics"
	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/application/usecase"
	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: empresa con un estimado y un técnico, lista para transferir
// ──────────────────────────────────────────────────────────────────────────────

type handoffFixture struct {
	uc        *usecase.HandoffUseCase
	handoffs  *memory.HandoffStore
	estimates *memory.EstimateStore
}

func newHandoffFixture(t *testing.T, strict bool) *handoffFixture {
	t.Helper()
	estimates := memory.NewEstimateStore()
	contractors := memory.NewContractorStore()
	handoffs := memory.NewHandoffStore()
	now := time.Now()

	require.NoError(t, estimates.Create(&entity.Estimate{
		ID:        "est-1",
		Company:   entity.ClaimedBy("empresa-1"),
		Payload:   map[string]any{"system_type": "split", "tonnage": 3.0},
		CreatedAt: now,
		UpdatedAt: now,
	}))
	require.NoError(t, estimates.Create(&entity.Estimate{
		ID:        "est-ajeno",
		Company:   entity.ClaimedBy("empresa-2"),
		CreatedAt: now,
		UpdatedAt: now,
	}))
	require.NoError(t, contractors.Create(&entity.Contractor{
		ID: "tech-1", Email: "tech@acme.com", Role: entity.RoleTech,
		Company: entity.ClaimedBy("empresa-1"), CreatedAt: now,
	}))
	require.NoError(t, contractors.Create(&entity.Contractor{
		ID: "office-1", Email: "office@acme.com", Role: entity.RoleOffice,
		Company: entity.ClaimedBy("empresa-1"), CreatedAt: now,
	}))
	require.NoError(t, contractors.Create(&entity.Contractor{
		ID: "tech-otro", Email: "tech@rival.com", Role: entity.RoleTech,
		Company: entity.ClaimedBy("empresa-2"), CreatedAt: now,
	}))

	return &handoffFixture{
		uc:        usecase.NewHandoffUseCase(handoffs, estimates, contractors, analytics.Noop{}, strict),
		handoffs:  handoffs,
		estimates: estimates,
	}
}

func (f *handoffFixture) initiate(t *testing.T) *dto.HandoffResponse {
	t.Helper()
	out, err := f.uc.Initiate("office-1", "empresa-1", dto.InitiateHandoffRequest{
		EstimateID: "est-1", HandedOffTo: "tech-1",
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Initiate
// ──────────────────────────────────────────────────────────────────────────────

func TestHandoffInitiate_NaceBloqueadoConSnapshot(t *testing.T) {
	f := newHandoffFixture(t, true)
	out := f.initiate(t)

	assert.Equal(t, string(entity.HandoffHandedOff), out.Status)
	assert.True(t, out.LockedPricing, "el precio queda bloqueado desde la creación")
	assert.Equal(t, map[string]any{"system_type": "split", "tonnage": 3.0}, out.Snapshot)
	assert.Equal(t, "office-1", out.HandedOffBy)
	assert.Equal(t, "tech-1", out.HandedOffTo)
}

func TestHandoffInitiate_SnapshotCongelado(t *testing.T) {
	f := newHandoffFixture(t, true)
	f.initiate(t)

	// Mutar el estimado después del handoff no altera el snapshot
	est, err := f.estimates.GetByID("est-1")
	require.NoError(t, err)
	est.Payload["tonnage"] = 5.0
	require.NoError(t, f.estimates.Update(est))

	h, err := f.handoffs.GetByEstimateID("est-1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, h.Snapshot["tonnage"])
}

func TestHandoffInitiate_EstimadoAjenoEsNotFound(t *testing.T) {
	f := newHandoffFixture(t, true)
	_, err := f.uc.Initiate("office-1", "empresa-1", dto.InitiateHandoffRequest{
		EstimateID: "est-ajeno", HandedOffTo: "tech-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cross-tenant se oculta como inexistente")
}

func TestHandoffInitiate_ReceptorInvalido(t *testing.T) {
	f := newHandoffFixture(t, true)

	// Receptor de otra empresa
	_, err := f.uc.Initiate("office-1", "empresa-1", dto.InitiateHandoffRequest{
		EstimateID: "est-1", HandedOffTo: "tech-otro",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Receptor que no es técnico
	_, err = f.uc.Initiate("office-1", "empresa-1", dto.InitiateHandoffRequest{
		EstimateID: "est-1", HandedOffTo: "office-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Receptor inexistente
	_, err = f.uc.Initiate("office-1", "empresa-1", dto.InitiateHandoffRequest{
		EstimateID: "est-1", HandedOffTo: "nadie",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Advance: modo estricto
// ──────────────────────────────────────────────────────────────────────────────

func TestHandoffAdvance_CaminoFeliz(t *testing.T) {
	f := newHandoffFixture(t, true)
	f.initiate(t)

	out, err := f.uc.Advance("empresa-1", "est-1", dto.UpdateHandoffStatusRequest{Status: "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", out.Status)
	assert.True(t, out.LockedPricing)

	out, err = f.uc.Advance("empresa-1", "est-1", dto.UpdateHandoffStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Status)
	assert.True(t, out.LockedPricing, "el bloqueo sobrevive hasta el estado terminal")
}

func TestHandoffAdvance_EstrictoRechazaSalto(t *testing.T) {
	f := newHandoffFixture(t, true)
	f.initiate(t)

	_, err := f.uc.Advance("empresa-1", "est-1", dto.UpdateHandoffStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, domain.ErrConflict, "handed_off → completed salta un estado")

	// El estado no cambió
	h, err := f.handoffs.GetByEstimateID("est-1")
	require.NoError(t, err)
	assert.Equal(t, entity.HandoffHandedOff, h.Status)
}

func TestHandoffAdvance_EstrictoRechazaRetroceso(t *testing.T) {
	f := newHandoffFixture(t, true)
	f.initiate(t)
	_, err := f.uc.Advance("empresa-1", "est-1", dto.UpdateHandoffStatusRequest{Status: "in_progress"})
	require.NoError(t, err)

	_, err = f.uc.Advance("empresa-1", "est-1", dto.UpdateHandoffStatusRequest{Status: "in_progress"})
	assert.ErrorIs(t, err, domain.ErrConflict, "self-loop no es transición válida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Advance: modo permisivo
// ──────────────────────────────────────────────────────────────────────────────

func TestHandoffAdvance_PermisivoAceptaSalto(t *testing.T) {
	f := newHandoffFixture(t, false)
	f.initiate(t)

	out, err := f.uc.Advance("empresa-1", "est-1", dto.UpdateHandoffStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Status)
}

func TestHandoffAdvance_PermisivoIgualRechazaEstadoInicial(t *testing.T) {
	f := newHandoffFixture(t, false)
	f.initiate(t)

	// "handed_off" no es un estado de avance ni en modo permisivo
	_, err := f.uc.Advance("empresa-1", "est-1", dto.UpdateHandoffStatusRequest{Status: "handed_off"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Advance: errores comunes
// ──────────────────────────────────────────────────────────────────────────────

func TestHandoffAdvance_SinHandoffEsNotFound(t *testing.T) {
	f := newHandoffFixture(t, true)
	_, err := f.uc.Advance("empresa-1", "est-1", dto.UpdateHandoffStatusRequest{Status: "in_progress"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHandoffAdvance_OtraEmpresaEsNotFound(t *testing.T) {
	f := newHandoffFixture(t, true)
	f.initiate(t)
	_, err := f.uc.Advance("empresa-2", "est-1", dto.UpdateHandoffStatusRequest{Status: "in_progress"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHandoffAdvance_EstadoDesconocidoEsBadRequest(t *testing.T) {
	f := newHandoffFixture(t, true)
	f.initiate(t)
	_, err := f.uc.Advance("empresa-1", "est-1", dto.UpdateHandoffStatusRequest{Status: "done"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
