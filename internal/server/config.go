package server

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvPort       = "REORDER_HTTP_PORT"
	EnvConfigPath = "REORDER_CONFIG"
	EnvListPath   = "REORDER_LIST"
	EnvDebug      = "REORDER_DEBUG"

	DefaultPort = "8080"
)

type Config struct {
	Port       string
	ConfigPath string
	ListPath   string
	Debug      bool
}

// LoadConfig reads envFile when it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile = strings.TrimSpace(envFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return ConfigFromEnv(os.Getenv), nil
}

func ConfigFromEnv(getenv func(string) string) Config {
	cfg := Config{
		Port:       strings.TrimSpace(getenv(EnvPort)),
		ConfigPath: strings.TrimSpace(getenv(EnvConfigPath)),
		ListPath:   strings.TrimSpace(getenv(EnvListPath)),
	}
	switch strings.ToLower(strings.TrimSpace(getenv(EnvDebug))) {
	case "1", "true", "yes", "on":
		cfg.Debug = true
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	return cfg
}
