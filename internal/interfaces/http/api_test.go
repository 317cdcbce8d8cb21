package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldserve/fieldserve-api/internal/application/analytics"
	"github.com/fieldserve/fieldserve-api/internal/application/auth"
	"github.com/fieldserve/fieldserve-api/internal/application/usecase"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/infrastructure/memory"
	apphttp "github.com/fieldserve/fieldserve-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Harness: API completa sobre almacenes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-api-tests"

type apiFixture struct {
	app       *fiber.App
	estimates *memory.EstimateStore
	handoffs  *memory.HandoffStore
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	companies := memory.NewCompanyStore()
	contractors := memory.NewContractorStore()
	estimates := memory.NewEstimateStore()
	handoffs := memory.NewHandoffStore()
	pricing := memory.NewPricingOverrideStore()
	revoker := memory.NewRevoker()
	recorder := analytics.Noop{}

	authUC := auth.NewAuthUseCase(contractors, revoker, recorder, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 60, Issuer: "fieldserve-test",
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		CompanyUC:  usecase.NewCompanyUseCase(companies, contractors),
		TeamUC:     usecase.NewTeamUseCase(contractors),
		EstimateUC: usecase.NewEstimateUseCase(estimates, recorder),
		HandoffUC:  usecase.NewHandoffUseCase(handoffs, estimates, contractors, recorder, true),
		PricingUC:  usecase.NewPricingUseCase(pricing, estimates, recorder),
		JWTSecret:  testJWTSecret,
		Revoker:    revoker,
	})
	return &apiFixture{app: app, estimates: estimates, handoffs: handoffs}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// register + login; devuelve el token de sesión.
func (f *apiFixture) signup(t *testing.T, email string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": email, "password": "password123", "name": email,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	return f.login(t, email)
}

func (f *apiFixture) login(t *testing.T, email string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	require.Equal(t, true, body["success"])
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

// Empresa completa: owner crea la empresa, office y tech se unen por código.
// El login se repite tras el onboarding para que el token lleve la empresa.
type companyUsers struct {
	companyID            string
	owner, office, tech  string // tokens
	techID               string
}

func (f *apiFixture) setupCompany(t *testing.T, dominio string) companyUsers {
	t.Helper()
	ownerTok := f.signup(t, "owner@"+dominio)
	resp := f.do(t, http.MethodPost, "/api/companies", ownerTok, fiber.Map{"name": dominio})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	company := body["company"].(map[string]any)
	companyID := company["id"].(string)
	code := company["company_code"].(string)

	officeTok := f.signup(t, "office@"+dominio)
	resp = f.do(t, http.MethodPost, "/api/companies/join", officeTok, fiber.Map{
		"company_code": code, "role": "office",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	techTok := f.signup(t, "tech@"+dominio)
	resp = f.do(t, http.MethodPost, "/api/companies/join", techTok, fiber.Map{
		"company_code": code, "role": "tech",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Tokens nuevos con company_id en los claims
	ownerTok = f.login(t, "owner@"+dominio)
	officeTok = f.login(t, "office@"+dominio)
	techTok = f.login(t, "tech@"+dominio)

	// ID del técnico vía su propio perfil
	resp = f.do(t, http.MethodGet, "/api/me", techTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode(t, resp)["contractor"].(map[string]any)

	return companyUsers{
		companyID: companyID,
		owner:     ownerTok, office: officeTok, tech: techTok,
		techID: me["id"].(string),
	}
}

func (f *apiFixture) seedEstimate(t *testing.T, id, companyID string, homeowner bool, at time.Time) {
	t.Helper()
	company := entity.Unclaimed()
	if companyID != "" {
		company = entity.ClaimedBy(companyID)
	}
	require.NoError(t, f.estimates.Create(&entity.Estimate{
		ID: id, Company: company, IsHomeowner: homeowner,
		Payload:   map[string]any{"system_type": "split"},
		CreatedAt: at, UpdatedAt: at,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RutaProtegidaSinToken(t *testing.T) {
	f := newAPIFixture(t)
	for _, path := range []string{"/api/me", "/api/estimates", "/api/team", "/api/handoffs"} {
		resp := f.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "GET %s sin token", path)
		body := decode(t, resp)
		assert.NotEmpty(t, body["error"], "el sobre de error lleva la clave error")
	}
}

func TestAPI_LogoutInvalidaElToken(t *testing.T) {
	f := newAPIFixture(t)
	tok := f.signup(t, "ana@acme.com")

	resp := f.do(t, http.MethodGet, "/api/me", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/auth/logout", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// El mismo token ya no sirve
	resp = f.do(t, http.MethodGet, "/api/me", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Capacidades y roles
// ──────────────────────────────────────────────────────────────────────────────

// /api/team es solo owner_admin: office y tech reciben 403, no una lista vacía.
func TestAPI_TeamSoloOwnerAdmin(t *testing.T) {
	f := newAPIFixture(t)
	users := f.setupCompany(t, "acme.com")

	resp := f.do(t, http.MethodGet, "/api/team", users.owner, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Len(t, body["team"], 3)

	for name, tok := range map[string]string{"office": users.office, "tech": users.tech} {
		resp := f.do(t, http.MethodGet, "/api/team", tok, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "rol %s", name)
		resp.Body.Close()
	}
}

// La lista del equipo jamás serializa hashes de password.
func TestAPI_TeamNoExponeHashes(t *testing.T) {
	f := newAPIFixture(t)
	users := f.setupCompany(t, "acme.com")

	resp := f.do(t, http.MethodGet, "/api/team", users.owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(raw)), "password")
	assert.NotContains(t, string(raw), "$2a$", "ningún hash bcrypt en la salida")
}

// Un contractor recién registrado (sin empresa) no tiene capacidades de empresa.
func TestAPI_SinEmpresaRecibe403(t *testing.T) {
	f := newAPIFixture(t)
	tok := f.signup(t, "solo@acme.com")

	for _, path := range []string{"/api/estimates", "/api/company", "/api/team"} {
		resp := f.do(t, http.MethodGet, path, tok, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "GET %s", path)
		resp.Body.Close()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento de tenant
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_EstimadoAjenoEs404(t *testing.T) {
	f := newAPIFixture(t)
	acme := f.setupCompany(t, "acme.com")
	rival := f.setupCompany(t, "rival.com")
	f.seedEstimate(t, "est-rival", rival.companyID, false, time.Now())

	// El dueño lo ve
	resp := f.do(t, http.MethodGet, "/api/estimates/est-rival", rival.owner, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// La otra empresa recibe 404, no 403: la existencia no se revela
	resp = f.do(t, http.MethodGet, "/api/estimates/est-rival", acme.owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/estimates/no-existe", acme.owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_VistaPublicaSoloHomeownerSinReclamar(t *testing.T) {
	f := newAPIFixture(t)
	users := f.setupCompany(t, "acme.com")
	f.seedEstimate(t, "est-libre", "", true, time.Now())
	f.seedEstimate(t, "est-empresa", users.companyID, false, time.Now())

	resp := f.do(t, http.MethodGet, "/api/public/estimates/est-libre", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["success"])

	// El de empresa es invisible sin sesión
	resp = f.do(t, http.MethodGet, "/api/public/estimates/est-empresa", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Reclamar el libre lo saca de la vista pública
	resp = f.do(t, http.MethodPost, "/api/estimates/est-libre/claim", users.office, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/public/estimates/est-libre", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Handoffs de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoDeHandoff(t *testing.T) {
	f := newAPIFixture(t)
	users := f.setupCompany(t, "acme.com")
	base := time.Now()
	f.seedEstimate(t, "est-1", users.companyID, false, base)
	f.seedEstimate(t, "est-2", users.companyID, false, base.Add(time.Minute))

	// El técnico no puede iniciar handoffs
	resp := f.do(t, http.MethodPost, "/api/handoffs", users.tech, fiber.Map{
		"estimate_id": "est-1", "handed_off_to": users.techID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Office transfiere ambos estimados al técnico
	for _, id := range []string{"est-1", "est-2"} {
		resp := f.do(t, http.MethodPost, "/api/handoffs", users.office, fiber.Map{
			"estimate_id": id, "handed_off_to": users.techID,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decode(t, resp)
		handoff := body["handoff"].(map[string]any)
		assert.Equal(t, "handed_off", handoff["status"])
		assert.Equal(t, true, handoff["locked_pricing"])
	}

	// El técnico ve su lista, más recientes primero
	resp = f.do(t, http.MethodGet, "/api/handoffs", users.tech, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	list := body["handoffs"].([]any)
	require.Len(t, list, 2)
	first := list[0].(map[string]any)
	second := list[1].(map[string]any)
	assert.Equal(t, "est-2", first["estimate_id"], "el handoff más reciente va primero")
	assert.Equal(t, "est-1", second["estimate_id"])

	// Office no puede avanzar estados (capacidad de owner_admin y tech)
	resp = f.do(t, http.MethodPatch, "/api/handoffs/est-1/status", users.office, fiber.Map{
		"status": "in_progress",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// El técnico avanza: saltarse un estado es 409, el camino adyacente pasa
	resp = f.do(t, http.MethodPatch, "/api/handoffs/est-1/status", users.tech, fiber.Map{
		"status": "completed",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPatch, "/api/handoffs/est-1/status", users.tech, fiber.Map{
		"status": "in_progress",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decode(t, resp)
	handoff := body["handoff"].(map[string]any)
	assert.Equal(t, "in_progress", handoff["status"])
	assert.Equal(t, true, handoff["locked_pricing"], "el bloqueo de precio sobrevive la transición")

	// Estado desconocido es 400
	resp = f.do(t, http.MethodPatch, "/api/handoffs/est-1/status", users.tech, fiber.Map{
		"status": "done",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Pricing override de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_PricingOverride(t *testing.T) {
	f := newAPIFixture(t)
	users := f.setupCompany(t, "acme.com")
	f.seedEstimate(t, "est-1", users.companyID, false, time.Now())

	// El técnico no gestiona precios
	resp := f.do(t, http.MethodGet, "/api/estimates/est-1/pricing", users.tech, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Sin override todavía
	resp = f.do(t, http.MethodGet, "/api/estimates/est-1/pricing", users.office, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// min > max es 400
	resp = f.do(t, http.MethodPut, "/api/estimates/est-1/pricing", users.office, fiber.Map{
		"good": fiber.Map{"min": "5200", "max": "4500"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Registro válido
	resp = f.do(t, http.MethodPut, "/api/estimates/est-1/pricing", users.office, fiber.Map{
		"good":                   fiber.Map{"min": "4500", "max": "5200"},
		"best":                   fiber.Map{"min": "7000", "max": "8100"},
		"pricing_variance_notes": "acceso difícil",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	pricing := body["pricing"].(map[string]any)
	assert.Equal(t, "acceso difícil", pricing["pricing_variance_notes"])
	assert.NotEmpty(t, pricing["updated_by"])

	// Delete idempotente
	resp = f.do(t, http.MethodDelete, "/api/estimates/est-1/pricing", users.owner, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = f.do(t, http.MethodDelete, "/api/estimates/est-1/pricing", users.owner, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/estimates/est-1/pricing", users.office, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
