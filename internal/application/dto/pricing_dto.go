package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingTierRequest rango inclusivo de un tier. Invariante min ≤ max
// (validado en el caso de uso antes de persistir).
type PricingTierRequest struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// SetCustomPricingRequest entrada para registrar el override de precio.
// Reemplazo completo: los tiers ausentes quedan sin override.
type SetCustomPricingRequest struct {
	Good                 *PricingTierRequest `json:"good"`
	Better               *PricingTierRequest `json:"better"`
	Best                 *PricingTierRequest `json:"best"`
	PricingVarianceNotes string              `json:"pricing_variance_notes"`
}

// PricingTierResponse rango de un tier en la salida.
type PricingTierResponse struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// PricingOverrideResponse salida del override vigente de un estimado.
type PricingOverrideResponse struct {
	EstimateID           string                          `json:"estimate_id"`
	CompanyID            string                          `json:"company_id"`
	CustomPricing        map[string]PricingTierResponse  `json:"custom_pricing"` // por nombre de tier
	PricingVarianceNotes string                          `json:"pricing_variance_notes"`
	UpdatedAt            time.Time                       `json:"updated_at"`
	UpdatedBy            string                          `json:"updated_by"`
}
