package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Template renders Default as a romanapi.toml document.
func Template() (string, error) {
	def := Default()
	data, err := toml.Marshal(fileConfig{
		ID:                def.ID,
		Addr:              def.Addr,
		CorsOrigins:       def.CorsOrigins,
		TrustedProxies:    def.TrustedProxies,
		ReadHeaderTimeout: def.ReadHeaderTimeout.String(),
		IdleTimeout:       def.IdleTimeout.String(),
		ShutdownTimeout:   def.ShutdownTimeout.String(),
		Log: fileLogConfig{
			Level:     def.Log.Level,
			Timestamp: def.Log.Timestamp,
			NoColor:   def.Log.NoColor,
		},
	})
	if err != nil {
		return "", fmt.Errorf("render config template: %w", err)
	}
	return string(data), nil
}

func WriteTemplate(path string, overwrite bool) error {
	template, err := Template()
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}
