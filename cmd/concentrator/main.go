// Sensor Concentrator
//
// This is the main entry point for the concentrator: a service that
// subscribes to sensor telemetry on an MQTT broker, decodes each message
// into typed records and forwards record batches to a sink (InfluxDB when
// enabled, structured logs otherwise).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sensorgrid/concentrator/internal/concentrator"
	"github.com/sensorgrid/concentrator/internal/infrastructure/config"
	"github.com/sensorgrid/concentrator/internal/infrastructure/logging"
	"github.com/sensorgrid/concentrator/internal/infrastructure/mqtt"
	"github.com/sensorgrid/concentrator/internal/sink/influxdb"
	"github.com/sensorgrid/concentrator/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// logSink is the fallback record sink used when InfluxDB is disabled.
// It logs each batch at debug level so decoded traffic stays observable.
type logSink struct {
	log *logging.Logger
}

func (s *logSink) OnMessage(records []telemetry.Record) {
	for _, rec := range records {
		s.log.Debug("record decoded",
			"name", rec.Name,
			"value", rec.Value,
			"unit", rec.Unit,
			"topic", rec.Topic.Path(),
			"timestamp", rec.Timestamp,
		)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting concentrator",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Choose the record sink: InfluxDB when enabled, log-only otherwise
	var sink concentrator.Sink
	if cfg.InfluxDB.Enabled {
		influxSink, err := influxdb.Connect(ctx, cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB sink")
			if closeErr := influxSink.Close(); closeErr != nil {
				log.Error("error closing InfluxDB sink", "error", closeErr)
			}
		}()
		influxSink.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB sink connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
		sink = influxSink
	} else {
		log.Info("InfluxDB disabled, records will be logged only")
		sink = &logSink{log: log.With("component", "logsink")}
	}

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	// Decode failures surface as handler errors and are logged here,
	// at the transport boundary.
	mqttClient.SetLogger(log.With("component", "mqtt"))
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Wire the subscription callback
	subscriber := concentrator.New(sink, concentrator.Config{
		Server:      cfg.MQTT.Broker.Host,
		Port:        cfg.MQTT.Broker.Port,
		ClientID:    cfg.MQTT.Broker.ClientID,
		TopicFilter: cfg.MQTT.Subscription.TopicFilter,
	})

	// #nosec G115 -- qos validated to 0..2 by config.Validate
	if err := mqttClient.Subscribe(cfg.MQTT.Subscription.TopicFilter, byte(cfg.MQTT.QoS), subscriber.OnMessage); err != nil {
		return fmt.Errorf("subscribing to telemetry: %w", err)
	}
	log.Info("subscribed to telemetry",
		"filter", cfg.MQTT.Subscription.TopicFilter,
		"qos", cfg.MQTT.QoS,
	)

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order
	return nil
}

// getConfigPath returns the configuration file path.
// The CONCENTRATOR_CONFIG environment variable overrides the default.
func getConfigPath() string {
	if path := os.Getenv("CONCENTRATOR_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
