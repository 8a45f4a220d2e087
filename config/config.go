package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresURL string
	MongoURL    string
	DBType      string
	Port        string

	// Serial numbering policy for ticket/bill numbers (PREFIX-YYYY-NNN).
	SerialPrefix  string
	SerialPadding int
	SerialStart   int

	// Stored-tare validity window in days.
	TareValidityDays int

	PDFSavePath string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		Logger().Info("No .env file found, using system environment variables")
	}

	cfg := &Config{
		PostgresURL:      os.Getenv("POSTGRES_URL"),
		MongoURL:         os.Getenv("MONGO_URL"),
		DBType:           os.Getenv("DB_TYPE"),
		Port:             os.Getenv("PORT"),
		SerialPrefix:     os.Getenv("SERIAL_PREFIX"),
		SerialPadding:    envInt("SERIAL_PADDING", 3),
		SerialStart:      envInt("SERIAL_START", 1),
		TareValidityDays: envInt("TARE_VALIDITY_DAYS", 30),
		PDFSavePath:      os.Getenv("PDF_SAVE_PATH"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SerialPrefix == "" {
		cfg.SerialPrefix = "WB"
	}
	if cfg.PDFSavePath == "" {
		cfg.PDFSavePath = "./pdfs"
	}
	return cfg
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		Logger().Warnf("invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}
