package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	JWTSecret string

	IdempTTLSecs int

	// Reminder job
	ReminderWindowDays int
	SMTPHost           string
	SMTPPort           string
	SMTPUser           string
	SMTPPass           string
	ReminderRecipient  string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "prestamos"),
		MySQLUser: getenv("MYSQL_USER", "prestamos"),
		MySQLPass: getenv("MYSQL_PASS", "prestamos"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		JWTSecret: getenv("JWT_SECRET", ""),

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		ReminderWindowDays: getenvInt("REMINDER_WINDOW_DAYS", 5),
		SMTPHost:           getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getenv("SMTP_PORT", "587"),
		SMTPUser:           getenv("SMTP_USER", ""),
		SMTPPass:           getenv("SMTP_PASS", ""),
		ReminderRecipient:  getenv("REMINDER_RECIPIENT", ""),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	return nil
}

// ValidateReminder covers the fields the notifier job needs on top of the
// database settings.
func (c *Config) ValidateReminder() error {
	if c.SMTPHost == "" || c.SMTPPort == "" || c.SMTPUser == "" {
		return errors.New("missing SMTP config (SMTP_HOST/PORT/USER)")
	}
	if c.ReminderRecipient == "" {
		return errors.New("missing REMINDER_RECIPIENT")
	}
	if c.ReminderWindowDays < 0 {
		return errors.New("REMINDER_WINDOW_DAYS must be >= 0")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATE/DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
