// Package telemetry decodes sensor telemetry messages into typed records.
//
// This package owns:
//   - The Record model: one decoded measurement (name, timestamp, value,
//     optional unit, source topic)
//   - The message envelope wire format and its field-encoding convention
//   - Timestamp parsing (ISO-8601 UTC, explicit "Z" suffix)
//
// # Wire Format
//
// Every telemetry message is a JSON object with exactly two top-level fields:
//
//	{
//	    "ts": "2016-01-01T05:10:15Z",
//	    "body": {
//	        "T|C": 14.5,
//	        "O": 2
//	    }
//	}
//
// The "ts" timestamp is shared by every field in the message. Body keys
// encode "<name>" or "<name>|<unit>"; values are numeric measurements.
// The example above decodes to two records: temperature 14.5 celsius and
// occupancy 2 (no unit).
//
// # Ordering
//
// Parse returns records in the order their keys appear in the body. This is
// part of the contract, not an implementation detail: downstream consumers
// observe record order within a message.
//
// # Error Handling
//
// Decoding is all-or-nothing. The first malformed key or non-numeric value
// fails the whole message; Parse never returns a partial batch alongside an
// error. Errors are sentinel values checked with errors.Is; see errors.go.
//
// # Thread Safety
//
// Parse is stateless and reentrant. It is safe to call concurrently from
// multiple goroutines; each call only reads its input and allocates its
// output.
package telemetry
