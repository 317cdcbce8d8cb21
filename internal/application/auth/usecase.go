package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldserve/fieldserve-api/internal/application/analytics"
	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
	"github.com/fieldserve/fieldserve-api/pkg/jwt"
)

// JWTConfig configuración para emisión de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase es la autoridad de sesión: registro, login y logout.
// La verificación de credenciales (bcrypt) vive solo aquí; el resto del
// sistema trata el hash como opaco.
type AuthUseCase struct {
	contractorRepo repository.ContractorRepository
	revoker        TokenRevoker
	recorder       analytics.Recorder
	jwtCfg         JWTConfig
}

// NewAuthUseCase construye la autoridad de sesión.
func NewAuthUseCase(contractorRepo repository.ContractorRepository, revoker TokenRevoker, recorder analytics.Recorder, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{contractorRepo: contractorRepo, revoker: revoker, recorder: recorder, jwtCfg: jwtCfg}
}

// Register crea un contractor sin empresa (Unclaimed): el onboarding se
// completa creando una empresa o uniéndose con un companyCode. Devuelve
// domain.ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.ContractorResponse, error) {
	existing, _ := uc.contractorRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	now := time.Now()
	contractor := &entity.Contractor{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleTech, // rol por defecto; cambia al crear/unirse a una empresa
		Company:      entity.Unclaimed(),
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.contractorRepo.Create(contractor); err != nil {
		return nil, err
	}
	return ToContractorResponse(contractor), nil
}

// Login verifica email/password, emite el token de sesión y retorna token +
// contractor. Credenciales malas ⇒ domain.ErrUnauthenticated (indistinguible
// entre email inexistente y password incorrecto).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	contractor, err := uc.contractorRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if contractor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(contractor.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if contractor.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(
		uc.jwtCfg.Secret,
		contractor.ID,
		contractor.Company.OrEmpty(),
		contractor.Role,
		contractor.Email,
		uc.jwtCfg.Issuer,
		uc.jwtCfg.ExpMinutes,
	)
	if err != nil {
		return nil, err
	}
	uc.recorder.Record(analytics.EventLogin, map[string]any{
		"contractor_id": contractor.ID,
		"company_id":    contractor.Company.OrEmpty(),
		"role":          contractor.Role,
	})
	return &dto.LoginResponse{
		Success:    true,
		Token:      token,
		Contractor: *ToContractorResponse(contractor),
	}, nil
}

// Logout revoca el jti del token hasta su expiración. Idempotente: cerrar
// una sesión ya cerrada no es error.
func (uc *AuthUseCase) Logout(claims *jwt.SessionClaims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil // ya expiró, no hay nada que revocar
	}
	return uc.revoker.Revoke(claims.ID, ttl)
}

// Profile devuelve el perfil propio del contractor autenticado.
func (uc *AuthUseCase) Profile(contractorID string) (*dto.ContractorResponse, error) {
	contractor, err := uc.contractorRepo.GetByID(contractorID)
	if err != nil {
		return nil, err
	}
	if contractor == nil {
		return nil, domain.ErrNotFound
	}
	return ToContractorResponse(contractor), nil
}

// ToContractorResponse mapea la entidad al DTO de salida (sin el hash).
func ToContractorResponse(c *entity.Contractor) *dto.ContractorResponse {
	if c == nil {
		return nil
	}
	return &dto.ContractorResponse{
		ID:        c.ID,
		Email:     c.Email,
		Name:      c.Name,
		Role:      c.Role,
		CompanyID: c.Company.OrEmpty(),
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
