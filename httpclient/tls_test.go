package httpclient

import (
	"crypto/tls"
	"testing"
)

func TestTLSConfig_BuildNil(t *testing.T) {
	var c *TLSConfig
	cfg, err := c.Build()
	if err != nil || cfg != nil {
		t.Errorf("nil config should build to nil, got %v %v", cfg, err)
	}
	if (&TLSConfig{}).IsEnabled() {
		t.Error("empty config should not be enabled")
	}
}

func TestTLSConfig_BuildMinVersion(t *testing.T) {
	cfg, err := (&TLSConfig{ServerName: "shop.local", MinVersion: "1.3"}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MinVersion != tls.VersionTLS13 || cfg.ServerName != "shop.local" {
		t.Errorf("unexpected config %+v", cfg)
	}

	cfg, _ = (&TLSConfig{SkipVerify: true}).Build()
	if cfg.MinVersion != tls.VersionTLS12 || !cfg.InsecureSkipVerify {
		t.Errorf("unexpected default config %+v", cfg)
	}
}

func TestTLSConfig_BuildMissingCA(t *testing.T) {
	if _, err := (&TLSConfig{CAFile: "/nonexistent/ca.pem"}).Build(); err == nil {
		t.Error("expected error for missing CA file")
	}
}

func TestTLSConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TLSConfig
		wantErr bool
	}{
		{"nil", nil, false},
		{"cert and key", &TLSConfig{CertFile: "c", KeyFile: "k"}, false},
		{"cert only", &TLSConfig{CertFile: "c"}, true},
		{"bad version", &TLSConfig{MinVersion: "1.0"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
