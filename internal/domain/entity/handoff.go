package entity

import "time"

// HandoffStatus es el estado del ciclo de vida de un handoff.
// Máquina de estados: handed_off → in_progress → completed (terminal).
// Sin saltos hacia adelante ni retrocesos.
type HandoffStatus string

const (
	HandoffHandedOff  HandoffStatus = "handed_off"
	HandoffInProgress HandoffStatus = "in_progress"
	HandoffCompleted  HandoffStatus = "completed"
)

// ParseHandoffStatus valida el string crudo de la petición.
func ParseHandoffStatus(s string) (HandoffStatus, bool) {
	switch HandoffStatus(s) {
	case HandoffHandedOff, HandoffInProgress, HandoffCompleted:
		return HandoffStatus(s), true
	}
	return "", false
}

// Valid informa si el estado es uno de los tres conocidos.
func (s HandoffStatus) Valid() bool {
	switch s {
	case HandoffHandedOff, HandoffInProgress, HandoffCompleted:
		return true
	}
	return false
}

// Advance informa si el estado es uno de avance (no el inicial).
func (s HandoffStatus) Advance() bool {
	return s == HandoffInProgress || s == HandoffCompleted
}

// Terminal informa si no admite más transiciones.
func (s HandoffStatus) Terminal() bool {
	return s == HandoffCompleted
}

// rank ordena los estados para rechazar retrocesos.
func (s HandoffStatus) rank() int {
	switch s {
	case HandoffHandedOff:
		return 0
	case HandoffInProgress:
		return 1
	case HandoffCompleted:
		return 2
	}
	return -1
}

// CanAdvanceTo informa si la transición s → next es válida en modo estricto:
// hacia adelante y adyacente (handed_off→in_progress, in_progress→completed).
func (s HandoffStatus) CanAdvanceTo(next HandoffStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	return next.rank() == s.rank()+1
}

// Handoff registra la transferencia de un estimado a un técnico de la misma
// empresa. Identidad = EstimateID (a lo sumo un handoff activo por estimado).
// Nunca se elimina: es la pista de auditoría de la transferencia.
type Handoff struct {
	EstimateID    string
	CompanyID     string
	HandedOffBy   string // contractor que inicia
	HandedOffTo   string // técnico receptor; debe pertenecer a CompanyID
	HandedOffAt   time.Time
	Status        HandoffStatus
	LockedPricing bool // true desde la creación; el precio solo cambia vía PricingOverride
	Snapshot      map[string]any
	UpdatedAt     time.Time
}
