// Package influxdb writes decoded telemetry records to InfluxDB.
//
// It implements the concentrator's Sink capability: every record batch
// handed over by the subscription callback becomes one point per record,
// written through the non-blocking batched write API.
//
// # Data Layout
//
// Records map to points as:
//
//	measurement: "telemetry"
//	tags:        name, topic, unit (unit omitted when absent)
//	field:       value (float64)
//	time:        the envelope timestamp (not the write time)
//
// # Error Handling
//
// Writes are asynchronous; batch write failures are reported via the
// SetOnError callback. Connection and health check errors are returned
// directly.
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines; the
// underlying write API serialises batching internally, so no ordering
// guarantee is needed from callers.
package influxdb
