package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ContactKeyKind selects which guest identity field is the unique contact key.
type ContactKeyKind string

const (
	ContactKeyEmail ContactKeyKind = "email"
	ContactKeyPhone ContactKeyKind = "phone"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// RabbitURL is optional; when empty no booking events are published.
	RabbitURL string

	ContactKeyKind   ContactKeyKind
	AllowPastCheckIn bool
	SeedDemoData     bool
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "reservations"),

		RabbitURL: os.Getenv("RABBITMQ_URL"),

		ContactKeyKind:   ContactKeyKind(getEnv("CONTACT_KEY_KIND", string(ContactKeyEmail))),
		AllowPastCheckIn: getEnvBool("ALLOW_PAST_CHECKIN", false),
		SeedDemoData:     getEnvBool("SEED_DEMO_DATA", false),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
