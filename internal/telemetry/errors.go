package telemetry

import "errors"

// Decode errors returned by Parse.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrMalformedPayload is returned when the payload is not valid UTF-8
	// or not a well-formed JSON object.
	ErrMalformedPayload = errors.New("telemetry: malformed payload")

	// ErrMissingField is returned when "ts" or "body" is absent from an
	// otherwise valid JSON object.
	ErrMissingField = errors.New("telemetry: missing envelope field")

	// ErrInvalidTimestamp is returned when "ts" is present but not an
	// ISO-8601 UTC timestamp with a "Z" suffix.
	ErrInvalidTimestamp = errors.New("telemetry: invalid timestamp")

	// ErrInvalidFieldKey is returned when a body key splits into an empty
	// record name (e.g. "|C").
	ErrInvalidFieldKey = errors.New("telemetry: invalid field key")

	// ErrInvalidFieldValue is returned when a body value is not numeric.
	ErrInvalidFieldValue = errors.New("telemetry: invalid field value")
)
