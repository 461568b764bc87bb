package config

import (
	"os"
	"testing"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	// defaults
	os.Unsetenv("ONEPERCENT_HTTP_ADDR")
	os.Unsetenv("ONEPERCENT_DB_DSN")
	os.Unsetenv("ONEPERCENT_JWT_SECRET")
	os.Unsetenv("ONEPERCENT_MAX_UPLOAD_BYTES")
	cfg := Load()
	if cfg.HTTPAddr == "" || cfg.DatabaseDSN == "" || cfg.JWTSecret == "" || cfg.UploadDir == "" {
		t.Fatalf("empty config fields")
	}
	if cfg.MaxUploadBytes != 5*1024*1024 {
		t.Fatalf("default upload limit: %d", cfg.MaxUploadBytes)
	}

	// env override
	os.Setenv("ONEPERCENT_HTTP_ADDR", ":9999")
	os.Setenv("ONEPERCENT_DB_DSN", "file::memory:")
	os.Setenv("ONEPERCENT_JWT_SECRET", "secret")
	os.Setenv("ONEPERCENT_MAX_UPLOAD_BYTES", "1024")
	defer func() {
		os.Unsetenv("ONEPERCENT_HTTP_ADDR")
		os.Unsetenv("ONEPERCENT_DB_DSN")
		os.Unsetenv("ONEPERCENT_JWT_SECRET")
		os.Unsetenv("ONEPERCENT_MAX_UPLOAD_BYTES")
	}()
	cfg = Load()
	if cfg.HTTPAddr != ":9999" || cfg.DatabaseDSN != "file::memory:" || cfg.JWTSecret != "secret" || cfg.MaxUploadBytes != 1024 {
		t.Fatalf("env not applied: %+v", cfg)
	}
}
