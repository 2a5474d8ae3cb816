package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPort overrides the port part of Addr, the way hosting platforms hand it out.
const EnvPort = "PORT"

// Config is the resolved runtime configuration for one romanapi node.
type Config struct {
	ID                string
	Addr              string
	CorsOrigins       []string
	TrustedProxies    []string
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	TLSCertFile       string
	TLSKeyFile        string
	Log               LogConfig
}

type LogConfig struct {
	Level     string
	Timestamp bool
	NoColor   bool
}

func Default() Config {
	return Config{
		ID:                "romanapi",
		Addr:              ":3000",
		CorsOrigins:       []string{"*"},
		TrustedProxies:    []string{"127.0.0.1", "::1"},
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		Log: LogConfig{
			Level:     "info",
			Timestamp: true,
		},
	}
}

// TLSEnabled reports whether both halves of the key pair are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// romanapi.toml key mapping.
type fileConfig struct {
	ID                string        `toml:"id"`
	Addr              string        `toml:"addr"`
	CorsOrigins       []string      `toml:"cors_origins"`
	TrustedProxies    []string      `toml:"trusted_proxies"`
	ReadHeaderTimeout string        `toml:"read_header_timeout"`
	IdleTimeout       string        `toml:"idle_timeout"`
	ShutdownTimeout   string        `toml:"shutdown_timeout"`
	TLSCertFile       string        `toml:"tls_cert_file,omitempty"`
	TLSKeyFile        string        `toml:"tls_key_file,omitempty"`
	Log               fileLogConfig `toml:"log"`
}

type fileLogConfig struct {
	Level     string `toml:"level"`
	Timestamp bool   `toml:"timestamp"`
	NoColor   bool   `toml:"no_color"`
}

// Load overlays the keys defined in path onto Default, applies env overrides
// and validates the result. An empty path loads defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if err := overlayFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	ApplyEnv(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayFile(path string, cfg *Config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("id") {
		cfg.ID = strings.TrimSpace(raw.ID)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = trimAll(raw.CorsOrigins)
	}
	if meta.IsDefined("trusted_proxies") {
		cfg.TrustedProxies = trimAll(raw.TrustedProxies)
	}
	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"read_header_timeout", raw.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{"idle_timeout", raw.IdleTimeout, &cfg.IdleTimeout},
		{"shutdown_timeout", raw.ShutdownTimeout, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if !meta.IsDefined(d.key) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return fmt.Errorf("config parse failed (%s): %s: %w", path, d.key, err)
		}
		*d.dst = v
	}
	if meta.IsDefined("tls_cert_file") {
		cfg.TLSCertFile = strings.TrimSpace(raw.TLSCertFile)
	}
	if meta.IsDefined("tls_key_file") {
		cfg.TLSKeyFile = strings.TrimSpace(raw.TLSKeyFile)
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}
	return nil
}

// ApplyEnv replaces the port of cfg.Addr with $PORT when it is set.
func ApplyEnv(cfg *Config) {
	port := strings.TrimSpace(os.Getenv(EnvPort))
	if port == "" {
		return
	}
	host, _, err := net.SplitHostPort(cfg.Addr)
	if err != nil {
		host = ""
	}
	cfg.Addr = net.JoinHostPort(host, port)
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.ID) == "" {
		return fmt.Errorf("config missing id")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("config missing addr")
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return fmt.Errorf("config addr invalid: %w", err)
	}
	if cfg.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("config read_header_timeout must be positive")
	}
	if cfg.IdleTimeout < 0 {
		return fmt.Errorf("config idle_timeout must not be negative")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("config shutdown_timeout must be positive")
	}
	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return fmt.Errorf("config tls_cert_file and tls_key_file must be set together")
	}
	for i, origin := range cfg.CorsOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("cors_origins[%d] %q must be \"*\" or an http(s) origin", i, origin)
		}
	}
	return nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
