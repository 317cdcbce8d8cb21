package entity

import "time"

// Roles válidos para Contractor.
const (
	RoleOwnerAdmin = "owner_admin"
	RoleOffice     = "office"
	RoleTech       = "tech"
)

// ValidRole informa si el rol es uno de los tres conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleOwnerAdmin, RoleOffice, RoleTech:
		return true
	}
	return false
}

// Contractor representa una persona de una empresa contratista (dueño,
// personal de oficina o técnico de campo). Company es Unclaimed hasta que
// el onboarding se completa (crear empresa o unirse con companyCode).
type Contractor struct {
	ID           string
	Email        string // único en el sistema
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Name         string
	Role         string // owner_admin, office, tech
	Company      TenantRef
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
