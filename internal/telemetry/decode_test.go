package telemetry

import (
	"errors"
	"testing"
	"time"
)

func TestParseRoundTrip(t *testing.T) {
	payload := []byte(`{
        "ts": "2016-01-01T05:10:15Z",
        "body": {
            "T|C": 14.5,
            "O": 2
        }
    }`)

	records, err := Parse("topic", payload)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Parse() returned %d records, want 2", len(records))
	}

	ts := time.Date(2016, 1, 1, 5, 10, 15, 0, time.UTC)
	expected := map[string]Record{
		"T": {Name: "T", Timestamp: ts, Value: 14.5, Unit: "C", Topic: NewTopic("topic")},
		"O": {Name: "O", Timestamp: ts, Value: 2, Topic: NewTopic("topic")},
	}

	seen := map[string]bool{}
	for _, rec := range records {
		want, ok := expected[rec.Name]
		if !ok {
			t.Fatalf("unexpected record name %q", rec.Name)
		}
		if seen[rec.Name] {
			t.Fatalf("duplicate record for name %q", rec.Name)
		}
		seen[rec.Name] = true

		if !rec.Equal(want) {
			t.Errorf("record %q = %+v, want %+v", rec.Name, rec, want)
		}
		if got := rec.Topic.Path(); got != "topic" {
			t.Errorf("Topic.Path() = %q, want %q", got, "topic")
		}
	}
}

func TestParseKeyOrderPreserved(t *testing.T) {
	// Record order must follow body key order, whichever way round the
	// keys arrive on the wire.
	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{
			name:    "temperature first",
			payload: `{"ts":"2016-01-01T05:10:15Z","body":{"T|C":14.5,"O":2}}`,
			want:    []string{"T", "O"},
		},
		{
			name:    "occupancy first",
			payload: `{"ts":"2016-01-01T05:10:15Z","body":{"O":2,"T|C":14.5}}`,
			want:    []string{"O", "T"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse("topic", []byte(tt.payload))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(records) != len(tt.want) {
				t.Fatalf("Parse() returned %d records, want %d", len(records), len(tt.want))
			}
			for i, name := range tt.want {
				if records[i].Name != name {
					t.Errorf("records[%d].Name = %q, want %q", i, records[i].Name, name)
				}
			}
		})
	}
}

func TestParseNameUnitSplit(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		wantName string
		wantUnit string
	}{
		{name: "name with unit", key: "T|C", wantName: "T", wantUnit: "C"},
		{name: "name without unit", key: "O", wantName: "O", wantUnit: ""},
		{name: "unit containing separator", key: "V|m|s", wantName: "V", wantUnit: "m|s"},
		{name: "trailing separator means no unit", key: "B|", wantName: "B", wantUnit: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := []byte(`{"ts":"2016-01-01T05:10:15Z","body":{"` + tt.key + `":1}}`)
			records, err := Parse("topic", payload)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(records) != 1 {
				t.Fatalf("Parse() returned %d records, want 1", len(records))
			}
			if records[0].Name != tt.wantName {
				t.Errorf("Name = %q, want %q", records[0].Name, tt.wantName)
			}
			if records[0].Unit != tt.wantUnit {
				t.Errorf("Unit = %q, want %q", records[0].Unit, tt.wantUnit)
			}
		})
	}
}

func TestParseSharedTimestamp(t *testing.T) {
	payload := []byte(`{"ts":"2016-03-12T20:38:00Z","body":{"T|C":20,"H|%":45,"O":1}}`)

	records, err := Parse("topic", payload)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := time.Date(2016, 3, 12, 20, 38, 0, 0, time.UTC)
	for _, rec := range records {
		if !rec.Timestamp.Equal(want) {
			t.Errorf("record %q timestamp = %v, want %v", rec.Name, rec.Timestamp, want)
		}
	}
}

func TestParseTopicPath(t *testing.T) {
	payload := []byte(`{"ts":"2016-01-01T05:10:15Z","body":{"T":1}}`)

	records, err := Parse("house/sensor/0a45", payload)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := records[0].Topic.Path(); got != "house/sensor/0a45" {
		t.Errorf("Topic.Path() = %q, want %q", got, "house/sensor/0a45")
	}
}

func TestParseEmptyBody(t *testing.T) {
	records, err := Parse("topic", []byte(`{"ts":"2016-01-01T05:10:15Z","body":{}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Parse() returned %d records for empty body, want 0", len(records))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{
			name:    "malformed JSON",
			payload: `{"ts": "2016-01-01T05:10:15Z", "body"`,
			wantErr: ErrMalformedPayload,
		},
		{
			name:    "not an object",
			payload: `[1, 2, 3]`,
			wantErr: ErrMalformedPayload,
		},
		{
			name:    "body is not an object",
			payload: `{"ts":"2016-01-01T05:10:15Z","body":[1]}`,
			wantErr: ErrMalformedPayload,
		},
		{
			name:    "missing ts",
			payload: `{"body":{"T|C":14.5}}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "missing body",
			payload: `{"ts":"2016-01-01T05:10:15Z"}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "unparseable ts",
			payload: `{"ts":"yesterday","body":{"T":1}}`,
			wantErr: ErrInvalidTimestamp,
		},
		{
			name:    "ts with numeric offset instead of Z",
			payload: `{"ts":"2016-01-01T05:10:15+01:00","body":{"T":1}}`,
			wantErr: ErrInvalidTimestamp,
		},
		{
			name:    "empty name in field key",
			payload: `{"ts":"2016-01-01T05:10:15Z","body":{"|C":14.5}}`,
			wantErr: ErrInvalidFieldKey,
		},
		{
			name:    "string field value",
			payload: `{"ts":"2016-01-01T05:10:15Z","body":{"T|C":"warm"}}`,
			wantErr: ErrInvalidFieldValue,
		},
		{
			name:    "null field value",
			payload: `{"ts":"2016-01-01T05:10:15Z","body":{"T|C":null}}`,
			wantErr: ErrInvalidFieldValue,
		},
		{
			name:    "object field value",
			payload: `{"ts":"2016-01-01T05:10:15Z","body":{"T|C":{"v":1}}}`,
			wantErr: ErrInvalidFieldValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse("topic", []byte(tt.payload))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			if records != nil {
				t.Errorf("Parse() returned records %v alongside error, want nil", records)
			}
		})
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	payload := []byte{0xff, 0xfe, '{', '}'}

	_, err := Parse("topic", payload)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("Parse() error = %v, want ErrMalformedPayload", err)
	}
}

func TestParseFailsWholeMessage(t *testing.T) {
	// One bad key poisons the whole message: no records from the valid
	// keys around it.
	payload := []byte(`{"ts":"2016-01-01T05:10:15Z","body":{"T|C":14.5,"|C":1,"O":2}}`)

	records, err := Parse("topic", payload)
	if !errors.Is(err, ErrInvalidFieldKey) {
		t.Errorf("Parse() error = %v, want ErrInvalidFieldKey", err)
	}
	if records != nil {
		t.Errorf("Parse() returned partial records %v, want nil", records)
	}
}

func TestParseIdempotent(t *testing.T) {
	payload := []byte(`{"ts":"2016-01-01T05:10:15Z","body":{"T|C":14.5,"O":2}}`)

	first, err := Parse("topic", payload)
	if err != nil {
		t.Fatalf("first Parse() error = %v", err)
	}
	second, err := Parse("topic", payload)
	if err != nil {
		t.Fatalf("second Parse() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("record counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("records[%d] differ: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestParseIntegerAndFloatValues(t *testing.T) {
	payload := []byte(`{"ts":"2016-01-01T05:10:15Z","body":{"O":2,"T|C":14.5,"B|%":100}}`)

	records, err := Parse("topic", payload)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := map[string]float64{"O": 2, "T": 14.5, "B": 100}
	for _, rec := range records {
		if rec.Value != want[rec.Name] {
			t.Errorf("record %q value = %v, want %v", rec.Name, rec.Value, want[rec.Name])
		}
	}
}
