package config

import (
	"fmt"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/osa911/contactrelay/internal/contact"
	"github.com/osa911/contactrelay/internal/logging"
	mailer "github.com/osa911/contactrelay/internal/mail"
	"github.com/osa911/contactrelay/internal/telemetry"
	"github.com/osa911/contactrelay/internal/version"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment     string        `env:"ENV" envDefault:"development"`
	Port            string        `env:"API_PORT" envDefault:"8080"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"65536"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Contact form
	Contact ContactConfig

	// Outbound mail
	Mail MailConfig

	// Proxies whose X-Forwarded-For is honoured for client IPs
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
}

// ContactConfig holds the fixed values the contact handler relays with.
type ContactConfig struct {
	Path             string  `env:"CONTACT_PATH" envDefault:"/contact"`
	Recipient        string  `env:"CONTACT_RECIPIENT"`
	Subject          string  `env:"CONTACT_SUBJECT" envDefault:"Website Contact"`
	ConfirmationPath string  `env:"CONTACT_CONFIRMATION_PATH" envDefault:"/confirmation.htm"`
	FailurePath      string  `env:"CONTACT_FAILURE_PATH"`
	EmailPolicy      string  `env:"CONTACT_EMAIL_POLICY" envDefault:"permissive"`
	ReplyToSender    bool    `env:"CONTACT_REPLY_TO_SENDER" envDefault:"false"`
	RateRPS          float64 `env:"CONTACT_RATE_RPS" envDefault:"1"`
	RateBurst        int     `env:"CONTACT_RATE_BURST" envDefault:"5"`
}

// MailConfig selects and configures the outbound transport.
type MailConfig struct {
	Transport string        `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	From      string        `env:"MAIL_FROM"`
	Timeout   time.Duration `env:"MAIL_TIMEOUT" envDefault:"15s"`

	SMTPHost      string `env:"SMTP_HOST" envDefault:"localhost"`
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername  string `env:"SMTP_USERNAME"`
	SMTPPassword  string `env:"SMTP_PASSWORD"`
	SMTPTLSPolicy string `env:"SMTP_TLS_POLICY" envDefault:"opportunistic"`
	SMTPSSL       bool   `env:"SMTP_SSL" envDefault:"false"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overrides variables that are already set
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.LogFile == "" {
		if cfg.IsProduction() {
			cfg.LogFile = "/app/logs/contactrelay.log"
		} else {
			cfg.LogFile = "./logs/contactrelay.log"
		}
	}

	cfg.Mail.Transport = strings.ToLower(strings.TrimSpace(cfg.Mail.Transport))
	cfg.Contact.EmailPolicy = strings.ToLower(strings.TrimSpace(cfg.Contact.EmailPolicy))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and enumerations.
func (c *Config) Validate() error {
	if _, err := mail.ParseAddress(c.Contact.Recipient); err != nil {
		return fmt.Errorf("CONTACT_RECIPIENT must be a valid address: %w", err)
	}
	if !strings.HasPrefix(c.Contact.Path, "/") {
		return fmt.Errorf("CONTACT_PATH must start with /")
	}
	if c.Contact.ConfirmationPath == "" {
		return fmt.Errorf("CONTACT_CONFIRMATION_PATH is required")
	}

	switch contact.EmailPolicy(c.Contact.EmailPolicy) {
	case contact.EmailPolicyPermissive, contact.EmailPolicyStrict:
	default:
		return fmt.Errorf("invalid CONTACT_EMAIL_POLICY: %q", c.Contact.EmailPolicy)
	}

	if c.Contact.RateRPS <= 0 || c.Contact.RateBurst < 1 {
		return fmt.Errorf("CONTACT_RATE_RPS must be positive and CONTACT_RATE_BURST at least 1")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.Mail.Timeout <= 0 {
		return fmt.Errorf("MAIL_TIMEOUT must be positive")
	}

	switch c.Mail.Transport {
	case mailer.TransportSMTP:
		if _, err := mail.ParseAddress(c.Mail.From); err != nil {
			return fmt.Errorf("MAIL_FROM must be a valid address for the smtp transport: %w", err)
		}
		switch c.Mail.SMTPTLSPolicy {
		case "opportunistic", "mandatory", "none":
		default:
			return fmt.Errorf("invalid SMTP_TLS_POLICY: %q", c.Mail.SMTPTLSPolicy)
		}
	case mailer.TransportTelegram:
		if c.Mail.TelegramBotToken == "" || c.Mail.TelegramChatID == 0 {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required for the telegram transport")
		}
	case mailer.TransportLog:
	default:
		return fmt.Errorf("invalid MAIL_TRANSPORT: %q", c.Mail.Transport)
	}

	return nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ContactSettings returns the immutable settings the contact service is built with.
func (c *Config) ContactSettings() contact.Settings {
	return contact.Settings{
		Recipient:        c.Contact.Recipient,
		Subject:          c.Contact.Subject,
		ConfirmationPath: c.Contact.ConfirmationPath,
		FailurePath:      c.Contact.FailurePath,
		EmailPolicy:      contact.EmailPolicy(c.Contact.EmailPolicy),
		ReplyToSender:    c.Contact.ReplyToSender,
		DeliveryTimeout:  c.Mail.Timeout,
	}
}

// LogConfig returns the logging configuration derived from the environment.
func (c *Config) LogConfig() *logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = strings.ToLower(c.LogLevel)
	lc.File = c.LogFile
	lc.LogRequests = c.LogRequests
	return lc
}

// MailOptions returns the options the outbound sender is built with.
func (c *Config) MailOptions() mailer.Options {
	return mailer.Options{
		Transport: c.Mail.Transport,
		From:      c.Mail.From,
		Timeout:   c.Mail.Timeout,
		SMTP: mailer.SMTPOptions{
			Host:      c.Mail.SMTPHost,
			Port:      c.Mail.SMTPPort,
			Username:  c.Mail.SMTPUsername,
			Password:  c.Mail.SMTPPassword,
			TLSPolicy: c.Mail.SMTPTLSPolicy,
			SSL:       c.Mail.SMTPSSL,
		},
		Telegram: mailer.TelegramOptions{
			BotToken: c.Mail.TelegramBotToken,
			ChatID:   c.Mail.TelegramChatID,
		},
	}
}

// TelemetryConfig returns the tracing exporter settings.
func (c *Config) TelemetryConfig() telemetry.Config {
	return telemetry.Config{
		Endpoint:       c.OTLPEndpoint,
		Insecure:       c.OTLPInsecure,
		ServiceVersion: version.Version,
	}
}
