// Package config carga la configuración del servicio desde variables de entorno.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"pet-vaccination-tracker/internal/platform/logger"
)

type Config struct {
	// Port del servidor HTTP. Default "8080".
	Port string

	// DBDSN es opcional: vacío => repos in-memory.
	DBDSN string

	LogLevel  logger.Level
	LogFormat logger.Format
	AppName   string

	// ProtocolsFile reemplaza el catálogo embebido (YAML).
	ProtocolsFile string

	// AuthTokens "token=user,..." activa el verifier estático.
	// Vacío => modo dev con header X-Debug-User-ID.
	AuthTokens string

	// AlertsConcurrency limita el fan-out de /me/vaccination-alerts.
	AlertsConcurrency int
}

func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DBDSN:         strings.TrimSpace(os.Getenv("DB_DSN")),
		LogLevel:      logger.ParseLevel(os.Getenv("LOG_LEVEL")),
		LogFormat:     logger.ParseFormat(os.Getenv("LOG_FORMAT")),
		AppName:       getEnv("APP_NAME", "pet-vaccination-tracker"),
		ProtocolsFile: strings.TrimSpace(os.Getenv("PROTOCOLS_FILE")),
		AuthTokens:    strings.TrimSpace(os.Getenv("AUTH_TOKENS")),
	}

	conc, err := strconv.Atoi(getEnv("ALERTS_CONCURRENCY", "4"))
	if err != nil || conc <= 0 {
		return Config{}, fmt.Errorf("ALERTS_CONCURRENCY must be a positive integer, got %q", os.Getenv("ALERTS_CONCURRENCY"))
	}
	cfg.AlertsConcurrency = conc

	if cfg.ProtocolsFile != "" {
		if _, err := os.Stat(cfg.ProtocolsFile); err != nil {
			return Config{}, fmt.Errorf("PROTOCOLS_FILE: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
