package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sensorgrid/concentrator/internal/infrastructure/logging"
	"github.com/sensorgrid/concentrator/internal/telemetry"
)

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("CONCENTRATOR_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_InvalidTopicFilter verifies run fails config validation before
// touching the network.
func TestRun_InvalidTopicFilter(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
mqtt:
  broker:
    host: "127.0.0.1"
    port: 1883
    client_id: "test-client"
  qos: 1
  subscription:
    topic_filter: ""

influxdb:
  enabled: false

logging:
  level: info
  format: text
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("CONCENTRATOR_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with empty topic filter")
	}
}

// TestGetConfigPath_Default verifies default config path.
func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv("CONCENTRATOR_CONFIG", "")

	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	expected := "/custom/path/config.yaml"
	t.Setenv("CONCENTRATOR_CONFIG", expected)

	if path := getConfigPath(); path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}

// TestLogSink verifies the fallback sink accepts batches without a backend.
func TestLogSink(t *testing.T) {
	sink := &logSink{log: logging.Default()}

	sink.OnMessage([]telemetry.Record{
		{Name: "T", Value: 14.5, Unit: "C", Topic: telemetry.NewTopic("topic")},
		{Name: "O", Value: 2, Topic: telemetry.NewTopic("topic")},
	})
	sink.OnMessage(nil)
}
