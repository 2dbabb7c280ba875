// Package mqtt provides MQTT client connectivity for the concentrator.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Telemetry topic subscriptions with wildcard support
//   - Message publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The concentrator is a pure consumer: sensor gateways publish telemetry
// envelopes to the broker, the concentrator subscribes to a configured
// topic filter and feeds each delivery to the decoding pipeline.
//
//	Sensor Gateways → MQTT Broker → Concentrator → Record Sink
//
// Handler errors (typically decode failures) are logged here; this is the
// transport boundary where error policy lives. Handlers are never retried
// and failing messages are not redelivered by this layer.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.Subscribe(cfg.MQTT.Subscription.TopicFilter, 1,
//	    func(topic string, qos byte, payload []byte) error {
//	        return subscriber.OnMessage(topic, qos, payload)
//	    })
//
// # Thread Safety
//
// All methods are safe for concurrent use. Subscriptions are restored
// automatically on reconnect.
package mqtt
