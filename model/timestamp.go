package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Zoneless values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Timestamp is a time reported by the API. Servers send RFC 3339,
// zoneless date-times or bare dates; text that matches none of them is
// kept and the time stays zero. A decoded value encodes back to exactly the
// text it was read from.
type Timestamp struct {
	time.Time
	raw string
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp reads s leniently. It never fails.
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, raw: s}
		}
	}
	return Timestamp{raw: s}
}

// String returns the text the value was read from, or RFC 3339 for
// values built from a time.
func (t Timestamp) String() string {
	if t.raw != "" {
		return t.raw
	}
	if t.Time.IsZero() {
		return ""
	}
	return t.Time.Format(time.RFC3339Nano)
}

// Format formats the time, or returns the reported text when it could not
// be parsed.
func (t Timestamp) Format(layout string) string {
	if t.Time.IsZero() {
		return t.String()
	}
	return t.Time.Format(layout)
}

// Local converts the parsed time to local time, keeping unparsed text.
func (t Timestamp) Local() Timestamp {
	if t.Time.IsZero() {
		return t
	}
	return Timestamp{Time: t.Time.Local()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	s := t.String()
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(s)
}

// UnmarshalJSON accepts strings, null and Unix milliseconds.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = Timestamp{}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = ParseTimestamp(s)
	default:
		ms, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return fmt.Errorf("timestamp: unsupported value %s", b)
		}
		*t = Timestamp{Time: time.UnixMilli(ms).UTC(), raw: string(b)}
	}
	return nil
}

func (t Timestamp) MarshalYAML() (any, error) {
	if s := t.String(); s != "" {
		return s, nil
	}
	return nil, nil
}
