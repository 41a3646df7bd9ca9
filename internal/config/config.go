package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type StoreBackend string

const (
	PostgresqlStore StoreBackend = "postgresql"
	MongodbStore    StoreBackend = "mongodb"
)

type MailBackend string

const (
	SMTPMail MailBackend = "smtp"
	SESMail  MailBackend = "ses"
)

type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	DatabaseURL        string `env:"DATABASE_URL,required,notEmpty"`
	DatabaseName       string `env:"DATABASE_NAME" envDefault:"flask_app_db"`
	DatabaseCollection string `env:"DATABASE_COLLECTION" envDefault:"user_registrations"`

	Secret                     string        `env:"SECRET,required,notEmpty"`
	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`
	PublicBaseURL              url.URL       `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	MailBackend  MailBackend `env:"MAIL_BACKEND" envDefault:"smtp"`
	MailUsername string      `env:"MAIL_USERNAME"`
	MailPassword string      `env:"MAIL_PASSWORD"`
	MailSMTPHost string      `env:"MAIL_SMTP_HOST" envDefault:"smtp.gmail.com"`
	MailSMTPPort int         `env:"MAIL_SMTP_PORT" envDefault:"587"`
	MailSender   string      `env:"MAIL_SENDER"`

	AwsRegion    string `env:"AWS_REGION"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	LogDevelopment bool     `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return parse(nil)
}

func parse(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}

	if cfg.MailSender == "" {
		cfg.MailSender = cfg.MailUsername
	}
	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	if _, err := cfg.StoreBackend(); err != nil {
		return nil, err
	}
	if cfg.BcryptHasherCost < 4 || cfg.BcryptHasherCost > 31 {
		return nil, fmt.Errorf("invalid BCRYPT_HASHER_COST value: %d", cfg.BcryptHasherCost)
	}
	if cfg.PasswordResetValidDuration < time.Second || cfg.PasswordResetValidDuration%time.Second != 0 {
		return nil, fmt.Errorf("invalid PASSWORD_RESET_VALID_DURATION value: %s", cfg.PasswordResetValidDuration)
	}
	if cfg.PublicBaseURL.Scheme == "" || cfg.PublicBaseURL.Host == "" {
		return nil, fmt.Errorf("PUBLIC_BASE_URL must be an absolute URL")
	}

	switch cfg.MailBackend {
	case SMTPMail:
		if cfg.MailUsername == "" || cfg.MailPassword == "" {
			return nil, fmt.Errorf("MAIL_USERNAME and MAIL_PASSWORD must be set for the smtp mail backend")
		}
	case SESMail:
		if cfg.AwsRegion == "" || cfg.MailSender == "" {
			return nil, fmt.Errorf("AWS_REGION and MAIL_SENDER must be set for the ses mail backend")
		}
	default:
		return nil, fmt.Errorf("invalid MAIL_BACKEND value: %q", cfg.MailBackend)
	}

	return cfg, nil
}

// StoreBackend picks the credential store implementation from the scheme of
// DATABASE_URL.
func (c *Config) StoreBackend() (StoreBackend, error) {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid DATABASE_URL value: %w", err)
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		return PostgresqlStore, nil
	case "mongodb", "mongodb+srv":
		return MongodbStore, nil
	default:
		return "", fmt.Errorf("unsupported DATABASE_URL scheme: %q", u.Scheme)
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
