package influxdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sensorgrid/concentrator/internal/infrastructure/config"
	"github.com/sensorgrid/concentrator/internal/telemetry"
)

func TestRecordPoint(t *testing.T) {
	ts := time.Date(2016, 1, 1, 5, 10, 15, 0, time.UTC)
	rec := telemetry.Record{
		Name:      "T",
		Timestamp: ts,
		Value:     14.5,
		Unit:      "C",
		Topic:     telemetry.NewTopic("house/sensor/0a45"),
	}

	point := recordPoint(rec)

	if point.Name() != "telemetry" {
		t.Errorf("measurement = %q, want %q", point.Name(), "telemetry")
	}
	if !point.Time().Equal(ts) {
		t.Errorf("point time = %v, want envelope timestamp %v", point.Time(), ts)
	}

	tags := map[string]string{}
	for _, tag := range point.TagList() {
		tags[tag.Key] = tag.Value
	}
	if tags["name"] != "T" {
		t.Errorf("tag name = %q, want %q", tags["name"], "T")
	}
	if tags["unit"] != "C" {
		t.Errorf("tag unit = %q, want %q", tags["unit"], "C")
	}
	if tags["topic"] != "house/sensor/0a45" {
		t.Errorf("tag topic = %q, want %q", tags["topic"], "house/sensor/0a45")
	}

	fields := point.FieldList()
	if len(fields) != 1 {
		t.Fatalf("field count = %d, want 1", len(fields))
	}
	if fields[0].Key != "value" {
		t.Errorf("field key = %q, want %q", fields[0].Key, "value")
	}
	if got, ok := fields[0].Value.(float64); !ok || got != 14.5 {
		t.Errorf("field value = %v, want 14.5", fields[0].Value)
	}
}

func TestRecordPoint_NoUnit(t *testing.T) {
	rec := telemetry.Record{
		Name:      "O",
		Timestamp: time.Date(2016, 1, 1, 5, 10, 15, 0, time.UTC),
		Value:     2,
		Topic:     telemetry.NewTopic("topic"),
	}

	point := recordPoint(rec)

	for _, tag := range point.TagList() {
		if tag.Key == "unit" {
			t.Errorf("unit tag = %q present for unitless record, want omitted", tag.Value)
		}
	}
}

func TestConnect_Disabled(t *testing.T) {
	_, err := Connect(context.Background(), config.InfluxDBConfig{Enabled: false})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestOnMessage_Disconnected(t *testing.T) {
	// A zero sink must drop batches without panicking.
	s := &Sink{}

	s.OnMessage([]telemetry.Record{
		{Name: "T", Value: 1, Topic: telemetry.NewTopic("topic")},
	})
}

func TestCloseNil(t *testing.T) {
	s := &Sink{}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on zero sink error = %v, want nil", err)
	}
}

func TestHealthCheck_Disconnected(t *testing.T) {
	s := &Sink{}

	if err := s.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestFlush_Disconnected(t *testing.T) {
	s := &Sink{}
	s.Flush() // must not panic with nil writeAPI
}
