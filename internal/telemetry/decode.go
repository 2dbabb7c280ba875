package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// envelope is the wire-level message shape.
//
// TS is a pointer so a missing field is distinguishable from an empty
// string; Body stays raw so the key order of the object is preserved
// during decoding (json.Unmarshal into a map would lose it).
type envelope struct {
	TS   *string         `json:"ts"`
	Body json.RawMessage `json:"body"`
}

// Parse decodes one telemetry message into records.
//
// The payload must be a UTF-8 JSON object matching the envelope format
// (see package documentation). topic is the source channel; it is wrapped
// into a Topic and stamped on every record, never interpreted.
//
// Records are returned in body key order. Decoding is all-or-nothing: the
// first error fails the whole message and no records are returned.
//
// Returns:
//   - []Record: one record per body key, in key order
//   - error: ErrMalformedPayload, ErrMissingField, ErrInvalidTimestamp,
//     ErrInvalidFieldKey or ErrInvalidFieldValue (wrapped with detail)
func Parse(topic string, payload []byte) ([]Record, error) {
	if !utf8.Valid(payload) {
		return nil, fmt.Errorf("%w: payload is not valid UTF-8", ErrMalformedPayload)
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if env.TS == nil {
		return nil, fmt.Errorf("%w: ts", ErrMissingField)
	}
	if env.Body == nil {
		return nil, fmt.Errorf("%w: body", ErrMissingField)
	}

	ts, err := parseTimestamp(*env.TS)
	if err != nil {
		return nil, err
	}

	return parseBody(env.Body, ts, NewTopic(topic))
}

// parseTimestamp parses an ISO-8601 timestamp with an explicit "Z" suffix.
//
// Offsets like "+01:00" are rejected even though RFC 3339 allows them:
// the wire format requires zero UTC offset spelled as "Z".
func parseTimestamp(s string) (time.Time, error) {
	if !strings.HasSuffix(s, "Z") {
		return time.Time{}, fmt.Errorf("%w: %q is not Z-suffixed UTC", ErrInvalidTimestamp, s)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidTimestamp, s, err)
	}
	return t.UTC(), nil
}

// parseBody walks the raw body object token by token so records come out
// in the same order their keys appear on the wire.
func parseBody(raw json.RawMessage, ts time.Time, topic Topic) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: body: %w", ErrMalformedPayload, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: body is not an object", ErrMalformedPayload)
	}

	var records []Record
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: body: %w", ErrMalformedPayload, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: body key is not a string", ErrMalformedPayload)
		}

		name, unit := splitFieldKey(key)
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldKey, key)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: body: %w", ErrMalformedPayload, err)
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%w: %q: value %v is not numeric", ErrInvalidFieldValue, key, valTok)
		}
		value, err := num.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidFieldValue, key, err)
		}

		records = append(records, Record{
			Name:      name,
			Timestamp: ts,
			Value:     value,
			Unit:      unit,
			Topic:     topic,
		})
	}

	return records, nil
}

// splitFieldKey splits a body key on the first "|" into name and unit.
// A key without "|" has no unit ("O" -> "O", ""); "T|C" -> "T", "C".
func splitFieldKey(key string) (name, unit string) {
	name, unit, _ = strings.Cut(key, "|")
	return name, unit
}
