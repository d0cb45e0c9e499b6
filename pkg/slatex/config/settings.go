package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every runtime setting variable.
const EnvPrefix = "SLATEX"

// Settings are the runtime inputs of a run, read from SLATEX_* variables.
// Command-line flags override them.
type Settings struct {
	XLSM     string `envconfig:"XLSM"`
	Project  string `envconfig:"PROJECT" default:"."`
	Config   string `envconfig:"CONFIG"`
	Pretty   bool   `envconfig:"PRETTY" default:"true"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadSettings loads envFile (if it exists) without overriding variables
// already set, then reads SLATEX_* variables.
func LoadSettings(envFile string) (Settings, error) {
	var s Settings
	if envFile != "" {
		if err := loadEnvFile(envFile); err != nil {
			return s, err
		}
	}
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return s, fmt.Errorf("read environment: %w", err)
	}
	return s, nil
}

func loadEnvFile(path string) error {
	envMap, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	for k, v := range envMap {
		if _, exists := os.LookupEnv(k); !exists {
			if err := os.Setenv(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}
