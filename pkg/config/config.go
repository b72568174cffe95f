package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Classroom ClassroomConfig
	CORS      CORSConfig
	Log       LogConfig
	Exports   ExportsConfig
	UI        UIConfig
}

// ClassroomConfig points the gateway at the external classroom API.
type ClassroomConfig struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
	PageSize    int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportsConfig toggles CSV/PDF report downloads.
type ExportsConfig struct {
	Enabled bool
}

// UIConfig gates the server-rendered report pages.
type UIConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Classroom = ClassroomConfig{
		BaseURL:     v.GetString("CLASSROOM_BASE_URL"),
		AccessToken: v.GetString("CLASSROOM_ACCESS_TOKEN"),
		Timeout:     parseDuration(v.GetString("CLASSROOM_TIMEOUT"), 15*time.Second),
		PageSize:    v.GetInt("CLASSROOM_PAGE_SIZE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	cfg.UI = UIConfig{
		Enabled: v.GetBool("ENABLE_UI"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("CLASSROOM_BASE_URL", "https://classroom.googleapis.com/v1")
	v.SetDefault("CLASSROOM_ACCESS_TOKEN", "")
	v.SetDefault("CLASSROOM_TIMEOUT", "15s")
	v.SetDefault("CLASSROOM_PAGE_SIZE", 100)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_EXPORTS", true)
	v.SetDefault("ENABLE_UI", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
