package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over the file.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(dst *string, name string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	setString(&config.EndpointAddrHTTP, "ADDRESS")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "SECRET_KEY")
	setString(&config.S3AccessKey, "S3_ACCESS_KEY")
	setString(&config.S3SecretKey, "S3_SECRET_KEY")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_ENDPOINT")
	setString(&config.PublicBaseURL, "PUBLIC_BASE_URL")

	if v, ok := os.LookupEnv("S3_USE_PATH_STYLE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.S3UsePathStyle = b
		}
	}
	if v, ok := os.LookupEnv("PRESIGN_EXPIRY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.PresignExpiry = d
		}
	}
}
