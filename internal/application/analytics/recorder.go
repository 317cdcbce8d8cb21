// Package analytics define el canal lateral de eventos de producto.
// Es fire-and-forget: registrar un evento jamás puede hacer fallar la
// petición que lo origina.
package analytics

// Recorder publica un evento con sus atributos. Las implementaciones deben
// tragarse sus propios errores (loguearlos, no propagarlos).
type Recorder interface {
	Record(event string, fields map[string]any)
}

// Eventos que emite el núcleo.
const (
	EventLogin             = "login"
	EventEstimateClaimed   = "estimate_claimed"
	EventHandoffInitiated  = "handoff_initiated"
	EventHandoffAdvanced   = "handoff_advanced"
	EventPricingOverridden = "pricing_overridden"
)

// Noop descarta todos los eventos (NATS sin configurar, tests).
type Noop struct{}

// Record no hace nada.
func (Noop) Record(string, map[string]any) {}
