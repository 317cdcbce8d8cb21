package entity

import "time"

// Estimate representa un estimado de trabajo HVAC. El payload con el cálculo
// de precios se trata como opaco: este núcleo no recalcula precios, solo los
// transporta y los congela en el handoff.
//
// Visibilidad: con empresa asignada, solo contractors de esa empresa; con
// IsHomeowner y sin empresa, lectura pública sin autenticación.
type Estimate struct {
	ID          string
	Company     TenantRef
	IsHomeowner bool
	Payload     map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PubliclyReadable informa si el estimado puede leerse sin sesión.
func (e *Estimate) PubliclyReadable() bool {
	return e.IsHomeowner && !e.Company.Claimed()
}
