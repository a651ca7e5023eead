package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	Pipeline PipelineConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type GeminiConfig struct {
	APIKey      string
	TextModel   string // classification prompts (text only)
	VisionModel string // OCR and structured extraction (multimodal)
	Timeout     time.Duration
}

type PipelineConfig struct {
	// MaxImageDimension caps the longest side of any page image sent to the
	// model; larger pages are downscaled preserving aspect ratio.
	MaxImageDimension    int
	MaxParallelDocuments int
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// Without a .env file environment variables are used directly
	// (useful for Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "60"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "120"))
	llmTimeout, _ := strconv.Atoi(getEnv("LLM_TIMEOUT_SECONDS", "90"))
	maxDimension, _ := strconv.Atoi(getEnv("MAX_IMAGE_DIMENSION", "900"))
	maxParallel, _ := strconv.Atoi(getEnv("MAX_PARALLEL_DOCUMENTS", "4"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			TextModel:   getEnv("GEMINI_TEXT_MODEL", "gemini-1.5-flash"),
			VisionModel: getEnv("GEMINI_VISION_MODEL", "gemini-1.5-flash"),
			Timeout:     time.Duration(llmTimeout) * time.Second,
		},
		Pipeline: PipelineConfig{
			MaxImageDimension:    maxDimension,
			MaxParallelDocuments: maxParallel,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
