package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(buf, &Config{Level: level, Format: FormatJSON}, "test-svc")
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "invalid-level")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug should be filtered at info level, got %q", buf.String())
	}
	l.Info("shown")
	if buf.Len() == 0 {
		t.Error("expected info line")
	}
}

func TestInfoWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "debug")
	l.Info("item added", Fields(FieldProductID, "p-1", "quantity", 2))

	m := decodeLine(t, &buf)
	if m["message"] != "item added" {
		t.Errorf("unexpected message %v", m["message"])
	}
	if m[FieldProductID] != "p-1" {
		t.Errorf("expected product_id p-1, got %v", m[FieldProductID])
	}
	if m["service"] != "test-svc" {
		t.Errorf("expected service tag, got %v", m["service"])
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info").WithComponent("cart")
	if l.service != "test-svc" {
		t.Errorf("service should be preserved, got %q", l.service)
	}
	l.Warn("persist failed")
	m := decodeLine(t, &buf)
	if m[FieldComponent] != "cart" {
		t.Errorf("expected component=cart, got %v", m[FieldComponent])
	}
	if m["level"] != "warn" {
		t.Errorf("expected warn level, got %v", m["level"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	newJSONLogger(&buf, "info").WithError(errors.New("boom")).Error("failed")
	m := decodeLine(t, &buf)
	if m["error"] != "boom" {
		t.Errorf("expected error=boom, got %v", m["error"])
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	newJSONLogger(&buf, "info").WithFields(map[string]interface{}{FieldEndpoint: "/public/cart"}).Info("call")
	m := decodeLine(t, &buf)
	if m[FieldEndpoint] != "/public/cart" {
		t.Errorf("expected endpoint field, got %v", m[FieldEndpoint])
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error("nothing")
	l.WithComponent("x").Info("still nothing")
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &Config{Level: "info", Format: FormatConsole, NoColor: true}, "svc")
	l.Info("hello")
	if !strings.Contains(buf.String(), "[INF]") || !strings.Contains(buf.String(), "hello") {
		t.Errorf("unexpected console output %q", buf.String())
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := globalLogger
	defer func() { globalLogger = prev }()

	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected lazily created global logger")
	}

	custom := Nop()
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("SetGlobalLogger did not take effect")
	}
	Info("package-level")
	Debug("package-level")
	Warn("package-level")
	Error("package-level")
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != FormatConsole || cfg.Output != "stderr" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json"}, false},
		{"disabled level", Config{Level: "disabled", Format: "console"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "skipped", "dangling")
	if len(m) != 2 {
		t.Errorf("expected 2 fields, got %d: %v", len(m), m)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("login", errors.New("bad"))
	if ef[FieldOperation] != "login" || ef[FieldError] != "bad" {
		t.Errorf("unexpected error fields %v", ef)
	}
	df := DurationFields("call", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("unexpected duration %v", df[FieldDuration])
	}
}
