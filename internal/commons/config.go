package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"vincula/internal/config"
)

// LoadConfig reads a YAML config file on top of the env-driven defaults,
// so sections absent from the file keep working values instead of zeroes.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
