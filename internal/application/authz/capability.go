// Package authz centraliza la autorización por capacidades: los call sites
// piden permiso para una acción nombrada contra un contexto de ejecución, en
// lugar de comparar roles inline. La política de roles y la regla de tenant
// viven solo aquí; evolucionar la política no toca ningún handler.
package authz

import "github.com/fieldserve/fieldserve-api/internal/domain/entity"

// Acciones nombradas que el núcleo conoce. Cualquier otro nombre se niega.
const (
	ActionViewEstimates   = "contractor:view_estimates"
	ActionClaimEstimate   = "estimate:claim"
	ActionViewCompany     = "company:view"
	ActionUpdateCompany   = "company:update"
	ActionListTeam        = "team:list"
	ActionInitiateHandoff = "handoff:initiate"
	ActionAdvanceHandoff  = "handoff:advance"
	ActionViewOwnHandoffs = "handoff:view_own"
	ActionManagePricing   = "pricing:manage"
)

// ExecutionContext es la identidad resuelta de la sesión más metadatos de la
// petición. Se construye una vez por request; CanExecute nunca lo muta.
type ExecutionContext struct {
	ContractorID string
	Company      entity.TenantRef
	Role         string
	// TargetCompanyID, si viene, es la empresa del recurso objetivo. La
	// política lo compara con la empresa de la sesión: cualquier
	// discrepancia es negación, sin importar el rol.
	TargetCompanyID string
}

// Authenticated informa si el contexto proviene de una sesión resuelta.
func (c ExecutionContext) Authenticated() bool {
	return c.ContractorID != "" && entity.ValidRole(c.Role)
}

// policies mapea acción → regla de rol. Las reglas son funciones puras sobre
// el contexto; la regla de tenant se evalúa antes, en CanExecute.
var policies = map[string]func(ExecutionContext) bool{
	ActionViewEstimates:   requireCompany(entity.RoleOwnerAdmin, entity.RoleOffice, entity.RoleTech),
	ActionClaimEstimate:   requireCompany(entity.RoleOwnerAdmin, entity.RoleOffice),
	ActionViewCompany:     requireCompany(entity.RoleOwnerAdmin, entity.RoleOffice),
	ActionUpdateCompany:   requireCompany(entity.RoleOwnerAdmin, entity.RoleOffice),
	ActionListTeam:        requireCompany(entity.RoleOwnerAdmin),
	ActionInitiateHandoff: requireCompany(entity.RoleOwnerAdmin, entity.RoleOffice),
	ActionAdvanceHandoff:  requireCompany(entity.RoleOwnerAdmin, entity.RoleTech),
	ActionViewOwnHandoffs: requireCompany(entity.RoleTech),
	ActionManagePricing:   requireCompany(entity.RoleOwnerAdmin, entity.RoleOffice),
}

// CanExecute decide si el actor del contexto puede ejecutar la acción.
// Es un predicado puro y determinista: mismo contexto, misma respuesta,
// sin efectos observables. Negación por defecto: acción desconocida o
// contexto no autenticado ⇒ false.
func CanExecute(action string, ctx ExecutionContext) bool {
	if !ctx.Authenticated() {
		return false
	}
	if ctx.TargetCompanyID != "" && !ctx.Company.Is(ctx.TargetCompanyID) {
		return false
	}
	rule, ok := policies[action]
	if !ok {
		return false
	}
	return rule(ctx)
}

// requireCompany construye una regla que exige empresa reclamada y uno de
// los roles indicados.
func requireCompany(roles ...string) func(ExecutionContext) bool {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(ctx ExecutionContext) bool {
		if !ctx.Company.Claimed() {
			return false
		}
		_, ok := allowed[ctx.Role]
		return ok
	}
}
