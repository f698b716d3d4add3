package config

import (
	"os"
	"strings"
)

type Config struct {
	Port     string
	LogLevel string

	MongoURI string
	MongoDB  string

	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	// RedisAddr empty disables the product cache.
	RedisAddr     string
	RedisPassword string

	MediaDir     string
	MediaBaseURL string

	CORSOrigins []string
}

func Load() Config {
	return Config{
		Port:          getEnv("PORT", "9001"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "spicemart"),
		JWTSecret:     getEnv("JWT_SECRET", "SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		MediaDir:      getEnv("MEDIA_DIR", "media"),
		MediaBaseURL:  getEnv("MEDIA_BASE_URL", "/media"),
		CORSOrigins:   splitEnv("CORS_ORIGINS", "*"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitEnv(key, def string) []string {
	v := getEnv(key, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
