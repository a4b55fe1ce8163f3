package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, loaded from the environment.
type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	MongoURI                string
	JWTSecret               string
	FirebaseCredentialsPath string
	UserPhotoDir            string
}

// Load reads a .env file if present and builds the configuration from
// environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		UserPhotoDir:            getEnv("USER_PHOTO_DIR", "user_photo_dir"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
