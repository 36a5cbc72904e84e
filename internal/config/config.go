package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port         string
	DBPath       string
	LogLevel     string
	LogFormat    string
	BaseURL      string
	FrontendURL  string
	ResendAPIKey string
	FromEmail    string
	VenueMapURL  string
	HotelInfoURL string
	UploadDir    string
}

// Load reads configuration from a .env file (if present) and the environment,
// falling back to local-development defaults.
func Load() Config {
	godotenv.Load()

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		DBPath:       getEnv("WEDDING_DB_PATH", "wedding.db"),
		LogLevel:     getEnv("WEDDING_LOG_LEVEL", "info"),
		LogFormat:    getEnv("WEDDING_LOG_FORMAT", "text"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		FromEmail:    getEnv("FROM_EMAIL", "contact@samandjonah.com"),
		VenueMapURL:  getEnv("VENUE_MAP_URL", "https://maps.google.com"),
		HotelInfoURL: getEnv("HOTEL_INFO_URL", "http://localhost:3000"),
		UploadDir:    getEnv("WEDDING_UPLOAD_DIR", "uploads"),
	}
	cfg.BaseURL = getEnv("WEDDING_BASE_URL", "http://localhost:"+cfg.Port)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
