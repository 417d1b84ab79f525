package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the optional achronyme.yaml project file: import search paths
// and display preferences a host project can pin instead of passing flags
// on every invocation (SPEC_FULL.md's AMBIENT STACK config entry).
type Config struct {
	ImportPaths []string `yaml:"import_paths"`
	Precision   int      `yaml:"precision"`
}

func defaultConfig() Config {
	return Config{Precision: -1}
}

// loadConfig reads path if it exists; a missing file is not an error, since
// achronyme.yaml is entirely optional.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
