package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type SupabaseConfig struct {
	URL        string
	ServiceKey string
	Bucket     string
}

type MailConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type Config struct {
	Port           string
	Environment    string
	DataBackend    string
	DatabaseURL    string
	JWTSecret      string
	SessionTTL     time.Duration
	AdminAPIKey    string
	MockLatency    time.Duration
	RabbitMQURL    string
	Supabase       SupabaseConfig
	Mail           MailConfig
	CORSOrigins    []string
	MaxUploadBytes int64
	LogLevel       string
	AppURL         string
}

// Load lê o .env (se existir) e as variáveis de ambiente.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        get("PORT", "8080"),
		Environment: get("ENVIRONMENT", "development"),
		DataBackend: strings.ToLower(get("DATA_BACKEND", BackendMemory)),
		DatabaseURL: get("DATABASE_URL", ""),
		JWTSecret:   get("JWT_SECRET", ""),
		AdminAPIKey: get("ADMIN_API_KEY", ""),
		RabbitMQURL: get("RABBITMQ_URL", ""),
		Supabase: SupabaseConfig{
			URL:        strings.TrimRight(get("SUPABASE_URL", ""), "/"),
			ServiceKey: get("SUPABASE_SERVICE_KEY", ""),
			Bucket:     get("SUPABASE_BUCKET", "id-documents"),
		},
		Mail: MailConfig{
			Host: get("MAIL_HOST", ""),
			User: get("MAIL_USER", ""),
			Pass: get("MAIL_PASS", ""),
			From: get("MAIL_FROM", "MapeoRewards <no-reply@mapeorewards.fr>"),
		},
		CORSOrigins: splitList(get("CORS_ORIGINS", "http://localhost:5173")),
		LogLevel:    get("LOG_LEVEL", "info"),
		AppURL:      strings.TrimRight(get("APP_URL", "http://localhost:5173"), "/"),
	}

	var err error
	if cfg.SessionTTL, err = duration("SESSION_TTL", 24*time.Hour); err != nil {
		return cfg, err
	}
	latencyMS, err := integer("MOCK_LATENCY_MS", 800)
	if err != nil {
		return cfg, err
	}
	cfg.MockLatency = time.Duration(latencyMS) * time.Millisecond
	if cfg.Mail.Port, err = integer("MAIL_PORT", 587); err != nil {
		return cfg, err
	}
	maxUpload, err := integer("MAX_UPLOAD_BYTES", 10<<20)
	if err != nil {
		return cfg, err
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	switch cfg.DataBackend {
	case BackendMemory:
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = "dev-secret-change-me"
		}
	case BackendPostgres:
		if cfg.DatabaseURL, err = must("DATABASE_URL"); err != nil {
			return cfg, err
		}
		if cfg.JWTSecret, err = must("JWT_SECRET"); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("DATA_BACKEND inválido: %q (use %s ou %s)", cfg.DataBackend, BackendMemory, BackendPostgres)
	}

	return cfg, nil
}

func (c Config) MailEnabled() bool {
	return c.Mail.Host != ""
}

func (c Config) SupabaseEnabled() bool {
	return c.Supabase.URL != "" && c.Supabase.ServiceKey != ""
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) (string, error) {
	v := os.Getenv(k)
	if v == "" {
		return "", fmt.Errorf("missing required env: %s", k)
	}
	return v, nil
}

func integer(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s deve ser um inteiro: %w", k, err)
	}
	return n, nil
}

func duration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s deve ser uma duração (ex: 24h): %w", k, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
