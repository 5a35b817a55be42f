package model

import (
	"encoding/json"
	"testing"
	"time"
)

const dateOnlyProduct = `{"id":"1","name":"Test Product","description":"A test product","price":100,` +
	`"categoryId":"cat-1","inventory":10,"imageUrl":"https://example.com/image.jpg",` +
	`"createdAt":"2024-01-01","updatedAt":"2024-01-01"}`

func TestProductDecodesDateOnlyTimestamps(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(dateOnlyProduct), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !p.CreatedAt.Equal(want) || !p.UpdatedAt.Equal(want) {
		t.Errorf("expected %v, got %v / %v", want, p.CreatedAt.Time, p.UpdatedAt.Time)
	}
	if p.Name != "Test Product" || p.Price != 100 || p.Inventory != 10 {
		t.Errorf("unexpected product %+v", p)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(out, &fields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields["createdAt"] != "2024-01-01" {
		t.Errorf("expected the reported text to be kept, got %v", fields["createdAt"])
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		parsed bool
	}{
		{"2024-03-05T10:20:30Z", time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC), true},
		{"2024-03-05T10:20:30.5+02:00", time.Date(2024, 3, 5, 8, 20, 30, 500000000, time.UTC), true},
		{"2024-03-05T10:20:30", time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC), true},
		{"2024-03-05 10:20:30", time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC), true},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"last tuesday", time.Time{}, false},
	}
	for _, tt := range tests {
		ts := ParseTimestamp(tt.in)
		if ts.IsZero() == tt.parsed {
			t.Errorf("%q: parsed=%v", tt.in, !ts.IsZero())
			continue
		}
		if tt.parsed && !ts.Equal(tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, ts.Time)
		}
		if ts.String() != tt.in {
			t.Errorf("%q: String() = %q", tt.in, ts.String())
		}
	}
}

func TestTimestampUnmarshalVariants(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"id":"u","createdAt":null,"updatedAt":1704067200000}`), &u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.CreatedAt.IsZero() || u.CreatedAt.String() != "" {
		t.Errorf("expected zero createdAt, got %q", u.CreatedAt.String())
	}
	if !u.UpdatedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected millis to decode, got %v", u.UpdatedAt.Time)
	}

	var o Order
	if err := json.Unmarshal([]byte(`{"id":"o","createdAt":"soon"}`), &o); err != nil {
		t.Fatalf("unparseable text should not fail the order: %v", err)
	}
	if o.CreatedAt.Format(time.DateTime) != "soon" {
		t.Errorf("expected raw text to be shown, got %q", o.CreatedAt.Format(time.DateTime))
	}

	if err := json.Unmarshal([]byte(`{"createdAt":{"at":1}}`), &o); err == nil {
		t.Error("expected an object timestamp to be rejected")
	}
}

func TestTimestampMarshalZero(t *testing.T) {
	out, err := json.Marshal(struct {
		At Timestamp `json:"at"`
	}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"at":null}` {
		t.Errorf("expected null, got %s", out)
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if got := NewTimestamp(now).String(); got != "2025-06-01T12:00:00Z" {
		t.Errorf("expected RFC 3339, got %q", got)
	}
}
