package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all the configuration for the studio service.
type Config struct {
	Addr          string
	Mode          string
	AllowedOrigin string
	SessionSecret string
	RoadmapPath   string
	EventsDBPath  string
	UploadDelay   time.Duration
	HighlightTTL  time.Duration
	RecordEvents  bool
}

// Load reads configuration from a .env file (if present) and the environment.
// Every value has a development default; nothing is strictly required.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:          getString("ADDR", ":8080"),
		Mode:          getString("MODE", "dev"),
		AllowedOrigin: getString("ALLOWED_ORIGIN", "http://localhost:4200"),
		SessionSecret: getString("SESSION_SECRET", "studio-dev-secret"),
		RoadmapPath:   getString("ROADMAP_PATH", "roadmap.md"),
		EventsDBPath:  getString("EVENTS_DB_PATH", "./studio-events.db"),
		UploadDelay:   getDuration("UPLOAD_DELAY", 1500*time.Millisecond),
		HighlightTTL:  getDuration("HIGHLIGHT_TTL", 5*time.Second),
		RecordEvents:  getBool("RECORD_EVENTS", false),
	}
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
