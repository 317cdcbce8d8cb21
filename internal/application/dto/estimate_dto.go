package dto

import "time"

// EstimateResponse salida de un estimado. Para lectura pública (homeowner)
// el payload se expone igual; company_id viaja vacío si no está reclamado.
type EstimateResponse struct {
	EstimateID  string         `json:"estimate_id"`
	CompanyID   string         `json:"company_id,omitempty"`
	IsHomeowner bool           `json:"is_homeowner"`
	Payload     map[string]any `json:"payload"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
