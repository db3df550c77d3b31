// Loads a run's sim.Config from YAML, strictly: unknown fields are a load
// error rather than being silently ignored, so a typoed key fails the run
// instead of silently running defaults.

package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/corelayout-sim/sim"
)

// decodeConfig parses and validates config bytes, rejecting unknown fields.
func decodeConfig(data []byte) (*sim.Config, error) {
	var cfg sim.Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// loadConfig reads and validates the YAML config at path, exiting the
// process on any read, parse, or validation failure.
func loadConfig(path string) *sim.Config {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("error reading config %s: %v", path, err)
	}

	cfg, err := decodeConfig(data)
	if err != nil {
		logrus.Fatalf("%s: %v", path, err)
	}

	return cfg
}
