package mqtt

import "fmt"

// Topic prefixes for the concentrator's own traffic.
//
// Telemetry topics are owned by the publishing gateways, not by this
// package: the concentrator subscribes to whatever filter is configured
// and treats the topic as an opaque record attribute. Only the status
// topics below are built here.
const (
	// TopicPrefixSensors is the conventional base for gateway telemetry.
	TopicPrefixSensors = "sensors"

	// TopicPrefixSystem is the base for concentrator status topics.
	TopicPrefixSystem = "concentrator/system"
)

// Topics provides builders for the concentrator's MQTT topics.
// Using these helpers keeps topic naming consistent across the codebase.
type Topics struct{}

// SensorTelemetry returns the conventional telemetry topic for one gateway.
//
// Example: sensors/0a45
func (Topics) SensorTelemetry(gatewayID string) string {
	return fmt.Sprintf("%s/%s", TopicPrefixSensors, gatewayID)
}

// AllSensorTelemetry returns a pattern matching all gateway telemetry.
//
// Pattern: sensors/#
func (Topics) AllSensorTelemetry() string {
	return fmt.Sprintf("%s/#", TopicPrefixSensors)
}

// SystemStatus returns the concentrator status topic.
//
// Example: concentrator/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}
