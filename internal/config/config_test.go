package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "romanapi.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutPath(t *testing.T) {
	t.Setenv(EnvPort, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadOverridesOnlyDefinedKeys(t *testing.T) {
	t.Setenv(EnvPort, "")
	path := writeConfig(t, `
id = "roman.alpha"
addr = "127.0.0.1:9443"
cors_origins = ["https://numerals.example", " http://localhost:5173 "]
shutdown_timeout = "3s"

[log]
level = "debug"
no_color = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ID != "roman.alpha" {
		t.Fatalf("unexpected id: %q", cfg.ID)
	}
	if cfg.Addr != "127.0.0.1:9443" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if len(cfg.CorsOrigins) != 2 || cfg.CorsOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins: %q", cfg.CorsOrigins)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected shutdown timeout: %v", cfg.ShutdownTimeout)
	}
	if cfg.ReadHeaderTimeout != Default().ReadHeaderTimeout {
		t.Fatalf("read header timeout should keep default, got %v", cfg.ReadHeaderTimeout)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.NoColor || !cfg.Log.Timestamp {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadPortEnvOverridesAddr(t *testing.T) {
	t.Setenv(EnvPort, "8080")
	path := writeConfig(t, `addr = "127.0.0.1:9443"`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:8080" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %q", cfg.Addr)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Setenv(EnvPort, "")
	cases := map[string]string{
		"unknown key":   `listen = ":1"`,
		"bad duration":  `read_header_timeout = "soon"`,
		"empty id":      `id = "  "`,
		"bad addr":      `addr = "localhost"`,
		"half tls pair": `tls_cert_file = "/etc/romanapi/server.crt"`,
		"zero timeout":  `shutdown_timeout = "0s"`,
		"syntax":        `id = `,
		"bad origin":    `cors_origins = ["numerals.example"]`,
	}
	for name, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "config load failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTemplateRoundTripsToDefaults(t *testing.T) {
	t.Setenv(EnvPort, "")
	path := filepath.Join(t.TempDir(), "romanapi.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("overwrite template: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("template does not match defaults: %+v", cfg)
	}
}
