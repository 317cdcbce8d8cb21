package entity

import "time"

// Company representa una empresa contratista (tenant del sistema).
// Es la frontera de aislamiento: todo recurso con empresa asignada solo es
// visible para contractors cuya sesión pertenece a la misma empresa.
type Company struct {
	ID            string
	Name          string
	Address       string
	LicenseNumber string
	TaxID         string
	PaymentMethod string
	CompanyCode   string // código de invitación para que un contractor se una
	IsVerified    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
