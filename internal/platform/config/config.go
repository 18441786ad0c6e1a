package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration assembled from the environment.
type Server struct {
	Addr          string
	AdminToken    string
	JWTSigningKey string

	PostgresURL string
	RedisURL    string

	KafkaBrokers           []string
	NotificationTopic      string
	NotificationBufferSize int
	NotificationRetries    int

	SMTP SMTPConfig
}

// SMTPConfig configures the outbound mailer.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CAREERHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	adminToken := os.Getenv("ADMIN_TOKEN")

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	topic := os.Getenv("NOTIFICATION_TOPIC")
	if topic == "" {
		topic = "careerhub.notifications"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:          addr,
		AdminToken:    adminToken,
		JWTSigningKey: jwtSigningKey,

		PostgresURL: os.Getenv("POSTGRES_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		KafkaBrokers:           brokers,
		NotificationTopic:      topic,
		NotificationBufferSize: 256,
		NotificationRetries:    3,

		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envOr("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     envOr("SMTP_FROM", "Career Guidance Platform <noreply@careerhub.local>"),
			Timeout:  10 * time.Second,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
