package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr       string
	DatabaseDSN    string
	JWTSecret      string
	UploadDir      string
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		HTTPAddr:       getEnv("ONEPERCENT_HTTP_ADDR", ":5000"),
		DatabaseDSN:    getEnv("ONEPERCENT_DB_DSN", "file:onepercent.db?cache=shared&mode=rwc"),
		JWTSecret:      getEnv("ONEPERCENT_JWT_SECRET", "dev-secret-change"),
		UploadDir:      getEnv("ONEPERCENT_UPLOAD_DIR", "uploads"),
		MaxUploadBytes: getEnvInt64("ONEPERCENT_MAX_UPLOAD_BYTES", 5*1024*1024),
	}
	if cfg.JWTSecret == "dev-secret-change" {
		log.Println("WARNING: using development JWT secret; set ONEPERCENT_JWT_SECRET")
	}
	return cfg
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
