package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nombres de los tres tiers de precio que un contractor puede sobreescribir.
const (
	TierGood   = "good"
	TierBetter = "better"
	TierBest   = "best"
)

// PricingTier es un rango inclusivo de precio final. Invariante: Min ≤ Max.
type PricingTier struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Valid verifica el invariante Min ≤ Max.
func (t PricingTier) Valid() bool {
	return t.Min.LessThanOrEqual(t.Max)
}

// CustomPricing son los tres tiers nombrados; cada uno es opcional.
type CustomPricing struct {
	Good   *PricingTier
	Better *PricingTier
	Best   *PricingTier
}

// Tiers devuelve los tiers presentes con su nombre, para validación y salida.
func (p *CustomPricing) Tiers() map[string]PricingTier {
	out := make(map[string]PricingTier, 3)
	if p.Good != nil {
		out[TierGood] = *p.Good
	}
	if p.Better != nil {
		out[TierBetter] = *p.Better
	}
	if p.Best != nil {
		out[TierBest] = *p.Best
	}
	return out
}

// PricingOverride es el precio final ingresado por un contractor, que
// prevalece sobre los rangos calculados del estimado. Es el único canal
// sancionado para cambiar el precio efectivo mientras el handoff está
// bloqueado, y queda atribuido (UpdatedBy) como registro explícito.
// Invariante: CompanyID debe coincidir con la empresa del estimado.
type PricingOverride struct {
	EstimateID           string
	CompanyID            string
	CustomPricing        *CustomPricing
	PricingVarianceNotes string
	UpdatedAt            time.Time
	UpdatedBy            string // contractor que registró el override
}
