package dto

import "time"

// InitiateHandoffRequest entrada para transferir un estimado a un técnico.
type InitiateHandoffRequest struct {
	EstimateID  string `json:"estimate_id" validate:"required"`
	HandedOffTo string `json:"handed_off_to" validate:"required"` // contractor id del técnico
}

// UpdateHandoffStatusRequest entrada para avanzar el estado del handoff.
type UpdateHandoffStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress completed"`
}

// HandoffResponse salida de un handoff.
type HandoffResponse struct {
	EstimateID    string         `json:"estimate_id"`
	CompanyID     string         `json:"company_id"`
	HandedOffBy   string         `json:"handed_off_by"`
	HandedOffTo   string         `json:"handed_off_to"`
	HandedOffAt   time.Time      `json:"handed_off_at"`
	Status        string         `json:"status"`
	LockedPricing bool           `json:"locked_pricing"`
	Snapshot      map[string]any `json:"snapshot"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
