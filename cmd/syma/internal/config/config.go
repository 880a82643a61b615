// Package config loads the optional syma CLI config file, grounded on
// github.com/open-policy-agent/opa/runtime's loadConfig: a YAML file
// supplying defaults for flags the user didn't pass explicitly.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// File is the shape of a syma.yaml config file.
type File struct {
	LogLevel string `yaml:"log_level"`
	Entry    string `yaml:"entry"`
}

// Load reads and parses path. A missing path is not an error; it
// returns a zero File so callers can apply it unconditionally.
func Load(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
