package config

import (
	"github.com/caarlos0/env/v11"
)

// Config holds the server settings, read from the environment. A .env file
// is loaded by the godotenv autoload import in main.
type Config struct {
	HTTPAddr       string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	RoomCodeLength int    `env:"ROOM_CODE_LENGTH" envDefault:"6"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
