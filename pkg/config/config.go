package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	RefreshSecret    string
	JWTRefreshExpiry time.Duration

	GoogleClientID     string
	GoogleClientSecret string

	// BaseURL is this server's public origin, used to build OAuth callback
	// redirect URIs. FrontendURL is where the web flow lands after login.
	BaseURL     string
	FrontendURL string

	LLMServiceURL string

	GCSBucketName string
	GCSFolderName string
	GCSKeyFile    string

	FirebaseCredentials string
}

// IsProduction reports whether the process runs with production settings.
// Controls things like returning password-reset tokens in API responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBHost:     getEnv("DATABASE_HOST", "localhost"),
		DBPort:     getEnv("DATABASE_PORT", "5432"),
		DBUser:     getEnv("DATABASE_USER", "postgres"),
		DBPassword: getEnv("DATABASE_PASSWORD", ""),
		DBName:     getEnv("DATABASE_NAME", "genprd"),
		DBSSLMode:  getEnv("DATABASE_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:  getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		RefreshSecret:    getEnv("REFRESH_SECRET", "your-refresh-secret-change-in-production"),
		JWTRefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", 168*time.Hour),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),

		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		LLMServiceURL: getEnv("LLM_SERVICE_URL", "http://127.0.0.1:8081"),

		GCSBucketName: getEnv("GCP_BUCKET_NAME", ""),
		GCSFolderName: getEnv("GCP_FOLDER_NAME", "prd-exports"),
		GCSKeyFile:    getEnv("GCP_STORAGE_KEYFILE", ""),

		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			return parsed
		}
	}
	return defaultValue
}
