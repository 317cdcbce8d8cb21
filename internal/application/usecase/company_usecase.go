package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/domain"
	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

// CompanyUseCase maneja el perfil de empresa y el onboarding de contractors
// (crear empresa o unirse con companyCode).
type CompanyUseCase struct {
	companyRepo    repository.CompanyRepository
	contractorRepo repository.ContractorRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(companyRepo repository.CompanyRepository, contractorRepo repository.ContractorRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo, contractorRepo: contractorRepo}
}

// Create crea una empresa y convierte al caller en su owner_admin. Solo un
// contractor sin empresa puede crear una (domain.ErrConflict si ya tiene).
func (uc *CompanyUseCase) Create(callerID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	caller, err := uc.contractorRepo.GetByID(callerID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, domain.ErrNotFound
	}
	if caller.Company.Claimed() {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	company := &entity.Company{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Address:       in.Address,
		LicenseNumber: in.LicenseNumber,
		TaxID:         in.TaxID,
		PaymentMethod: in.PaymentMethod,
		CompanyCode:   newCompanyCode(),
		IsVerified:    false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	caller.Company = entity.ClaimedBy(company.ID)
	caller.Role = entity.RoleOwnerAdmin
	caller.UpdatedAt = now
	if err := uc.contractorRepo.Update(caller); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Join une al caller a la empresa del companyCode. El rol solicitado solo
// puede ser office o tech (el owner_admin nace con la empresa).
func (uc *CompanyUseCase) Join(callerID string, in dto.JoinCompanyRequest) (*dto.CompanyResponse, error) {
	caller, err := uc.contractorRepo.GetByID(callerID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, domain.ErrNotFound
	}
	if caller.Company.Claimed() {
		return nil, domain.ErrConflict
	}
	role := in.Role
	if role == "" {
		role = entity.RoleTech
	}
	if role != entity.RoleOffice && role != entity.RoleTech {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByCode(strings.ToUpper(strings.TrimSpace(in.CompanyCode)))
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	caller.Company = entity.ClaimedBy(company.ID)
	caller.Role = role
	caller.UpdatedAt = time.Now()
	if err := uc.contractorRepo.Update(caller); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetOwn devuelve el perfil de la empresa de la sesión.
func (uc *CompanyUseCase) GetOwn(companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// UpdateOwn actualiza el perfil de la empresa de la sesión (campos opcionales).
func (uc *CompanyUseCase) UpdateOwn(companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.LicenseNumber != nil {
		company.LicenseNumber = *in.LicenseNumber
	}
	if in.TaxID != nil {
		company.TaxID = *in.TaxID
	}
	if in.PaymentMethod != nil {
		company.PaymentMethod = *in.PaymentMethod
	}
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// newCompanyCode genera el código de invitación: 8 hex en mayúsculas.
// La unicidad la respalda el índice único en persistencia.
func newCompanyCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:8])
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		Address:       c.Address,
		LicenseNumber: c.LicenseNumber,
		TaxID:         c.TaxID,
		PaymentMethod: c.PaymentMethod,
		CompanyCode:   c.CompanyCode,
		IsVerified:    c.IsVerified,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
