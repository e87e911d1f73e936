package helper

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"pastamsm.mleku.dev/pippenger"
)

// Environment switches read on top of the config file
const (
	EnvPortable = "PASTA_MSM_PORTABLE"
	EnvForceADX = "PASTA_MSM_FORCE_ADX"
	EnvNoGPU    = "PASTA_MSM_NO_GPU"
)

// Config is the CLI configuration file
type Config struct {
	Engine   pippenger.Config `yaml:"engine"`
	LogLevel string           `yaml:"log_level"`
	Portable bool             `yaml:"portable"`
	ForceADX bool             `yaml:"force_adx"`
}

// DefaultConfig returns the configuration used without a file
func DefaultConfig() *Config {
	return &Config{
		Engine:   pippenger.DefaultConfig(),
		LogLevel: "info",
	}
}

// ReadConfigFile reads a YAML config file. Fields the file leaves out keep
// their defaults.
func ReadConfigFile(path string) (*Config, error) {
	if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
		return nil, fmt.Errorf("suffix of %s is neither yaml nor yml", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}

	return config, nil
}

// ApplyEnv overrides the file settings with the environment switches. Only
// switches that are set are applied.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, sw := range []struct {
		name string
		dst  *bool
	}{
		{EnvPortable, &c.Portable},
		{EnvForceADX, &c.ForceADX},
		{EnvNoGPU, &c.Engine.DisableGPU},
	} {
		raw, ok := lookup(sw.name)
		if !ok || raw == "" {
			continue
		}

		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", sw.name, raw, err)
		}

		*sw.dst = v
	}

	return nil
}
