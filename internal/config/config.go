package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name    string `envconfig:"APP_NAME" default:"Wedding Planner"`
		Port    int    `envconfig:"PORT" default:"8080"`
		BaseURL string `envconfig:"APP_BASE_URL" default:"http://localhost:3000"`
	}

	Firestore struct {
		ProjectID       string `envconfig:"FIRESTORE_PROJECT_ID"`
		CredentialsFile string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
	}

	Auth struct {
		Mode      string `envconfig:"AUTH_MODE" default:"firebase"`
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		Issuer    string `envconfig:"AUTH_JWT_ISSUER" default:"planner"`
	}

	SendGrid struct {
		APIKey       string `envconfig:"SENDGRID_API_KEY"`
		APIKeySecret string `envconfig:"SENDGRID_API_KEY_SECRET"`
		FromEmail    string `envconfig:"SENDGRID_FROM_EMAIL" default:"noreply@weddingledger.app"`
		FromName     string `envconfig:"SENDGRID_FROM_NAME" default:"Wedding Planner"`
		TemplateID   string `envconfig:"SENDGRID_TEMPLATE_ID"`
	}

	Export struct {
		Bucket string `envconfig:"EXPORT_BUCKET"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Cleanup struct {
		Interval  time.Duration `envconfig:"CLEANUP_INTERVAL" default:"1m"`
		BatchSize int           `envconfig:"CLEANUP_BATCH_SIZE" default:"500"`
	}

	Listener struct {
		Debounce    time.Duration `envconfig:"LISTENER_DEBOUNCE" default:"500ms"`
		BaseDelay   time.Duration `envconfig:"LISTENER_BACKOFF_BASE" default:"1s"`
		MaxDelay    time.Duration `envconfig:"LISTENER_BACKOFF_MAX" default:"30s"`
		MaxAttempts int           `envconfig:"LISTENER_MAX_ATTEMPTS" default:"5"`
	}

	Invitation struct {
		TTL time.Duration `envconfig:"INVITATION_TTL" default:"168h"`
	}

	// Console is the user the operator TUI acts as.
	Console struct {
		UserID string `envconfig:"CONSOLE_USER_ID"`
	}
}

const (
	AuthFirebase = "firebase"
	AuthJWT      = "jwt"
)

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	c.App.BaseURL = strings.TrimRight(c.App.BaseURL, "/")

	switch c.Auth.Mode {
	case AuthFirebase:
	case AuthJWT:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("AUTH_JWT_SECRET is required when AUTH_MODE=%s", AuthJWT)
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.Auth.Mode)
	}

	if c.Firestore.ProjectID == "" {
		return fmt.Errorf("FIRESTORE_PROJECT_ID is required")
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
