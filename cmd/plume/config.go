package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// appConfig carries the CLI settings. Precedence, lowest to highest:
// built-in defaults, the YAML config file, environment variables, flags.
type appConfig struct {
	Vault     string `yaml:"vault"`
	Extension string `yaml:"extension"`
}

func defaultVaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Plume"
	}
	return filepath.Join(home, "Documents", "Plume")
}

// configFilePath resolves the config file location. PLUME_CONFIG wins;
// otherwise the platform config dir is used (e.g. ~/.config/plume/config.yaml).
func configFilePath() string {
	if path := os.Getenv("PLUME_CONFIG"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "plume", "config.yaml")
}

func loadConfig() appConfig {
	// A .env in the working directory feeds the PLUME_* variables below.
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg := appConfig{
		Vault: defaultVaultPath(),
	}

	if path := configFilePath(); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				slog.Warn("ignoring malformed config file", "path", path, "error", err)
			}
		} else if !os.IsNotExist(err) {
			slog.Warn("cannot read config file", "path", path, "error", err)
		}
	}

	if v := os.Getenv("PLUME_VAULT"); v != "" {
		cfg.Vault = v
	}
	if v := os.Getenv("PLUME_EXTENSION"); v != "" {
		cfg.Extension = v
	}

	return cfg
}
