package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries every process-wide setting. It is built once in main and
// passed by reference into the components that need it; nothing below main
// reads the environment.
type Config struct {
	Addr         string
	MongoURI     string
	MongoDB      string
	RedisAddr    string
	JWTSecret    []byte
	PredictorURL string
	StaticDir    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg := &Config{
		Addr:         getenv("PORT", ":8080"),
		MongoURI:     getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getenv("MONGO_DB", "wanderlust"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:    []byte(getenv("JWT_SECRET", "dev_secret_change_me")),
		PredictorURL: getenv("PREDICTOR_URL", "http://localhost:5000/predict"),
		StaticDir:    getenv("STATIC_DIR", "./static"),
	}
	if cfg.Addr[0] != ':' {
		cfg.Addr = ":" + cfg.Addr
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
