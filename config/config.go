package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	OCRLanguage       string
	MaxFileSize       int64
	LogLevel          string
	Scoring           ScoringConfig
}

// ScoringConfig configures the external scoring collaborator call.
type ScoringConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

func LoadConfig() *Config {
	// .env is optional; plain environment variables win in Docker/K8s.
	_ = godotenv.Load()

	temperature, err := strconv.ParseFloat(getEnv("SCORING_TEMPERATURE", "0.2"), 64)
	if err != nil {
		temperature = 0.2
	}
	timeoutSec, err := strconv.Atoi(getEnv("SCORING_TIMEOUT_SECONDS", "60"))
	if err != nil || timeoutSec <= 0 {
		timeoutSec = 60
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		OCRLanguage:       getEnv("OCR_LANGUAGE", "eng"),
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Scoring: ScoringConfig{
			BaseURL:     getEnv("SCORING_BASE_URL", "https://api.openai.com"),
			APIKey:      os.Getenv("SCORING_API_KEY"),
			Model:       getEnv("SCORING_MODEL", "gpt-3.5-turbo"),
			Temperature: temperature,
			Timeout:     time.Duration(timeoutSec) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
