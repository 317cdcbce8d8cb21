package usecase

import (
	"github.com/fieldserve/fieldserve-api/internal/application/auth"
	"github.com/fieldserve/fieldserve-api/internal/application/dto"
	"github.com/fieldserve/fieldserve-api/internal/domain/repository"
)

// TeamUseCase lista el equipo de una empresa.
type TeamUseCase struct {
	contractorRepo repository.ContractorRepository
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(contractorRepo repository.ContractorRepository) *TeamUseCase {
	return &TeamUseCase{contractorRepo: contractorRepo}
}

// List devuelve los contractors de la empresa de la sesión. El filtro de
// tenant lo aplica el repositorio; el DTO de salida no tiene campo para el
// hash de password, así que no puede filtrarse.
func (uc *TeamUseCase) List(companyID string, page dto.PageRequest) ([]dto.ContractorResponse, error) {
	page.DefaultPage()
	members, err := uc.contractorRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContractorResponse, 0, len(members))
	for _, m := range members {
		out = append(out, *auth.ToContractorResponse(m))
	}
	return out, nil
}
