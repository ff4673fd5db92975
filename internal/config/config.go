package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the server.
type Config struct {
	Addr              string        `envconfig:"ADDR" default:":8080"`
	DBPath            string        `envconfig:"DB" default:"emart.sqlite3"`
	JWTSecret         string        `envconfig:"JWT_SECRET"`
	DemoPassword      string        `envconfig:"DEMO_PASSWORD" default:"demo123"`
	DemoAuth          bool          `envconfig:"DEMO_AUTH" default:"true"`
	LowStockThreshold int           `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`
	ReadTimeout       time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout      time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
}

// Load reads configuration from the environment, after loading a .env
// file when one exists. Variables are prefixed with EMART_.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("emart", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
