package config

import (
	"os"
	"strconv"
	"time"
)

type EcocoinConfig struct {
	WelcomeBonus        int64
	PartnerBookingSpend int64
	LeaderboardLimit    int
	LeaderboardCacheTTL time.Duration
}

// VerificationConfig bounds the background verification machinery: a fixed
// worker pool draining a bounded queue, with a deployment-level timeout
// imposed on every classifier call.
type VerificationConfig struct {
	Workers           int
	QueueSize         int
	ClassifierTimeout time.Duration
	Model             string
}

func LoadEcocoinConfig() *EcocoinConfig {
	return &EcocoinConfig{
		WelcomeBonus:        getEnvAsInt64("ECO_WELCOME_BONUS", 100),
		PartnerBookingSpend: getEnvAsInt64("ECO_PARTNER_BOOKING_SPEND", 100),
		LeaderboardLimit:    getEnvAsInt("ECO_LEADERBOARD_LIMIT", 10),
		LeaderboardCacheTTL: getEnvAsDuration("ECO_LEADERBOARD_CACHE_TTL", 30*time.Second),
	}
}

func LoadVerificationConfig() *VerificationConfig {
	return &VerificationConfig{
		Workers:           getEnvAsInt("ECO_VERIFY_WORKERS", 4),
		QueueSize:         getEnvAsInt("ECO_VERIFY_QUEUE_SIZE", 64),
		ClassifierTimeout: getEnvAsDuration("ECO_VERIFY_TIMEOUT", 60*time.Second),
		Model:             getEnv("ECO_VERIFY_MODEL", "gpt-4o"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
