package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	CORS     CORSConfig
	Storage  StorageConfig
	Mock     MockConfig
	Hospital HospitalConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type StorageConfig struct {
	DataDir    string
	QuotaBytes int64
}

type MockConfig struct {
	Delay time.Duration
	Dir   string
}

// HospitalConfig feeds the letterhead on print documents
type HospitalConfig struct {
	Nama   string
	Alamat string
	Telp   string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Storage: StorageConfig{
			DataDir:    getEnv("DATA_DIR", "./data"),
			QuotaBytes: parseInt64(getEnv("STORAGE_QUOTA_BYTES", "10485760")),
		},
		Mock: MockConfig{
			Delay: parseDuration(getEnv("MOCK_DELAY", "500ms")),
			Dir:   getEnv("MOCK_DATA_DIR", ""),
		},
		Hospital: HospitalConfig{
			Nama:   getEnv("HOSPITAL_NAME", "RSUD Harapan Sehat"),
			Alamat: getEnv("HOSPITAL_ADDRESS", "Jl. Kesehatan Raya No. 1, Kota Bogor"),
			Telp:   getEnv("HOSPITAL_PHONE", "(0251) 555-0199"),
		},
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using default\n", s)
		return 500 * time.Millisecond
	}
	return duration
}

func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Printf("Warning: Invalid number '%s', using default\n", s)
		return 10 << 20
	}
	return n
}

func parseOrigins(s string) []string {
	if s == "" {
		return []string{}
	}

	origins := []string{}
	current := ""
	for _, char := range s {
		if char == ',' {
			if current != "" {
				origins = append(origins, current)
				current = ""
			}
		} else {
			current += string(char)
		}
	}
	if current != "" {
		origins = append(origins, current)
	}

	return origins
}
