package telemetry

import (
	"strings"
	"time"
)

// topicSeparator joins topic segments into the flattened path form.
const topicSeparator = "/"

// Topic identifies the publish/subscribe channel a record originated from.
//
// Topics are hierarchical: "house/sensor/0a45" has three segments. Two
// topics are considered the same channel when their path renderings match.
type Topic struct {
	segments []string
}

// NewTopic builds a Topic from its flattened path form, splitting on "/".
func NewTopic(path string) Topic {
	return Topic{segments: strings.Split(path, topicSeparator)}
}

// Path renders the topic in its flattened form (e.g. "a/b/c").
// This round-trips with NewTopic.
func (t Topic) Path() string {
	return strings.Join(t.segments, topicSeparator)
}

// Segments returns a copy of the topic's path segments.
func (t Topic) Segments() []string {
	out := make([]string, len(t.segments))
	copy(out, t.segments)
	return out
}

// Record is one decoded measurement.
//
// Records are value objects: created once by the decoder, read many times
// downstream, never mutated. Copy freely.
type Record struct {
	// Name is the short identifier of the measured quantity (e.g. "T", "O").
	// Always non-empty; the decoder rejects keys with empty names.
	Name string

	// Timestamp is when the measurement was taken (UTC, second precision).
	// Shared by every record decoded from the same message.
	Timestamp time.Time

	// Value is the numeric measurement. Integer and floating point wire
	// values both land here.
	Value float64

	// Unit is the short unit string (e.g. "C"). Empty when the field
	// encoding carried no unit.
	Unit string

	// Topic is the channel the measurement arrived on.
	Topic Topic
}

// Equal reports whether two records carry the same measurement.
//
// Name, timestamp, value and unit must all match. Topics are compared by
// their path rendering, not by identity.
func (r Record) Equal(other Record) bool {
	return r.Name == other.Name &&
		r.Timestamp.Equal(other.Timestamp) &&
		r.Value == other.Value &&
		r.Unit == other.Unit &&
		r.Topic.Path() == other.Topic.Path()
}
