package mqtt

import (
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/sensorgrid/concentrator/internal/infrastructure/config"
)

// requireBroker skips the test when no broker is listening locally.
// Integration tests exercise a real Mosquitto at 127.0.0.1:1883.
func requireBroker(t *testing.T) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", "127.0.0.1:1883", 500*time.Millisecond)
	if err != nil {
		t.Skipf("no MQTT broker at 127.0.0.1:1883: %v", err)
	}
	conn.Close()
}

func integrationConfig(clientID string) config.MQTTConfig {
	cfg := testConfig()
	cfg.Broker.ClientID = clientID
	return cfg
}

func TestIntegration_ConnectAndClose(t *testing.T) {
	requireBroker(t)

	client, err := Connect(integrationConfig("concentrator-it-connect"))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect, want true")
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close, want false")
	}
}

func TestIntegration_PublishSubscribe(t *testing.T) {
	requireBroker(t)

	client, err := Connect(integrationConfig("concentrator-it-pubsub"))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	topic := fmt.Sprintf("sensors/it-%d", time.Now().UnixNano())
	payload := `{"ts":"2016-01-01T05:10:15Z","body":{"T|C":14.5}}`

	var mu sync.Mutex
	var gotTopic string
	var gotPayload []byte
	received := make(chan struct{})

	err = client.Subscribe(topic, 1, func(topic string, qos byte, payload []byte) error {
		mu.Lock()
		gotTopic = topic
		gotPayload = append([]byte(nil), payload...)
		mu.Unlock()
		close(received)
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if !client.HasSubscription(topic) {
		t.Error("HasSubscription() = false after Subscribe, want true")
	}

	if err := client.Publish(topic, []byte(payload), 1, false); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message delivery")
	}

	mu.Lock()
	defer mu.Unlock()
	if gotTopic != topic {
		t.Errorf("delivered topic = %q, want %q", gotTopic, topic)
	}
	if string(gotPayload) != payload {
		t.Errorf("delivered payload = %s, want %s", gotPayload, payload)
	}
}

func TestIntegration_Unsubscribe(t *testing.T) {
	requireBroker(t)

	client, err := Connect(integrationConfig("concentrator-it-unsub"))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	topic := fmt.Sprintf("sensors/it-unsub-%d", time.Now().UnixNano())
	err = client.Subscribe(topic, 1, func(string, byte, []byte) error { return nil })
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if err := client.Unsubscribe(topic); err != nil {
		t.Errorf("Unsubscribe() error = %v", err)
	}
	if client.HasSubscription(topic) {
		t.Error("HasSubscription() = true after Unsubscribe, want false")
	}
}
