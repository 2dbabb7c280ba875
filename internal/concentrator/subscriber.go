package concentrator

import (
	"github.com/sensorgrid/concentrator/internal/telemetry"
)

// Sink consumes batches of decoded records.
//
// Implementations receive exactly one call per successfully decoded
// message, with the records in wire order. Calls may arrive concurrently
// from multiple transport delivery goroutines.
type Sink interface {
	OnMessage(records []telemetry.Record)
}

// Config carries the static subscription parameters for the transport
// connection. The subscriber stores them for wiring but never interprets
// them; they configure the external MQTT client.
type Config struct {
	Server      string
	Port        int
	ClientID    string
	TopicFilter string
}

// Subscriber turns transport message deliveries into decoded record
// batches for its sink.
//
// The sink reference is fixed for the subscriber's lifetime.
type Subscriber struct {
	sink Sink
	cfg  Config
}

// New creates a Subscriber delivering to the given sink.
func New(sink Sink, cfg Config) *Subscriber {
	return &Subscriber{sink: sink, cfg: cfg}
}

// Config returns the static subscription parameters the subscriber was
// constructed with.
func (s *Subscriber) Config() Config {
	return s.cfg
}

// OnMessage handles one transport delivery.
//
// qos is transport metadata; it is accepted to match the delivery
// signature but not interpreted. On successful decode the whole record
// batch goes to the sink in a single call. On decode failure the sink is
// not invoked and the error is returned for the transport's error policy
// to handle.
func (s *Subscriber) OnMessage(topic string, qos byte, payload []byte) error {
	_ = qos

	records, err := telemetry.Parse(topic, payload)
	if err != nil {
		return err
	}

	s.sink.OnMessage(records)
	return nil
}
