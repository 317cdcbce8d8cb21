package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldserve/fieldserve-api/internal/application/analytics"
	"github.com/fieldserve/fieldserve-api/internal/application/auth"
	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/infrastructure/memory"
	pkgjwt "github.com/fieldserve/fieldserve-api/pkg/jwt"
)

const testSecret = "secret-solo-para-tests"

func newAuthFixture(t *testing.T) (*auth.AuthUseCase, *memory.Revoker) {
	t.Helper()
	revoker := memory.NewRevoker()
	uc := auth.NewAuthUseCase(memory.NewContractorStore(), revoker, analytics.Noop{}, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "fieldserve-test",
	})
	return uc, revoker
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_NaceSinEmpresa(t *testing.T) {
	uc, _ := newAuthFixture(t)
	out, err := uc.Register(dto.RegisterRequest{
		Email: "ana@acme.com", Password: "password123", Name: "Ana",
	})
	require.NoError(t, err)
	assert.Empty(t, out.CompanyID, "el registro no asigna empresa")
	assert.Equal(t, "tech", out.Role)
	assert.Equal(t, "active", out.Status)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthFixture(t)
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@acme.com", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "ana@acme.com", Password: "otropassword"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteTokenParseable(t *testing.T) {
	uc, _ := newAuthFixture(t)
	reg, err := uc.Register(dto.RegisterRequest{Email: "ana@acme.com", Password: "password123"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "password123"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, reg.ID, out.Contractor.ID)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, claims.ContractorID)
	assert.Empty(t, claims.CompanyID)
}

// Email inexistente y password incorrecto devuelven el mismo error: las
// credenciales malas son indistinguibles entre sí.
func TestLogin_CredencialesMalasIndistinguibles(t *testing.T) {
	uc, _ := newAuthFixture(t)
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@acme.com", Password: "password123"})
	require.NoError(t, err)

	_, errPassword := uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "incorrecta"})
	_, errEmail := uc.Login(dto.LoginRequest{Email: "nadie@acme.com", Password: "password123"})
	assert.ErrorIs(t, errPassword, domain.ErrUnauthenticated)
	assert.ErrorIs(t, errEmail, domain.ErrUnauthenticated)
	assert.Equal(t, errPassword, errEmail)
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_RevocaElJti(t *testing.T) {
	uc, revoker := newAuthFixture(t)
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@acme.com", Password: "password123"})
	require.NoError(t, err)
	out, err := uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "password123"})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(claims))
	revoked, err := revoker.IsRevoked(claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	// Idempotente: cerrar de nuevo no es error
	require.NoError(t, uc.Logout(claims))
}

func TestLogout_SinClaimsNoEsError(t *testing.T) {
	uc, _ := newAuthFixture(t)
	assert.NoError(t, uc.Logout(nil))
}
