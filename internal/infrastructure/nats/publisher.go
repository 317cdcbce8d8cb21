// Package nats publica los eventos de analítica en NATS. Es el canal
// lateral fire-and-forget del núcleo: un publish fallido se loguea y se
// descarta, jamás hace fallar la petición que originó el evento.
package nats

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/fieldserve/fieldserve-api/internal/application/analytics"
	"github.com/fieldserve/fieldserve-api/pkg/logger"
)

var _ analytics.Recorder = (*Publisher)(nil)

const subjectPrefix = "fieldserve.events."

// Publisher publica eventos JSON en fieldserve.events.<nombre>.
type Publisher struct {
	nc  *nats.Conn
	log *logger.Logger
}

// Connect establece la conexión con reintentos ilimitados; las caídas se
// loguean y la librería reconecta sola.
func Connect(url string, log *logger.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(1 * time.Second),
		nats.ReconnectJitter(500*time.Millisecond, 2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS desconectado")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconectado")
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	return &Publisher{nc: nc, log: log}, nil
}

// Record publica el evento. Cualquier error se traga aquí (se loguea):
// el contrato de analytics.Recorder es best-effort.
func (p *Publisher) Record(event string, fields map[string]any) {
	payload := map[string]any{
		"event": event,
		"at":    time.Now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range fields {
		payload[k] = v
	}
	data, err := json.Marshal(payload)
	if err != nil {
		p.log.Warn().Err(err).Str("event", event).Msg("evento de analítica no serializable")
		return
	}
	if err := p.nc.Publish(subjectPrefix+event, data); err != nil {
		p.log.Warn().Err(err).Str("event", event).Msg("publish de analítica falló")
	}
}

// Close drena y cierra la conexión.
func (p *Publisher) Close() {
	_ = p.nc.Drain()
}
