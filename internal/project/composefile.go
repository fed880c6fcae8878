package project

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ComposeFile is the subset of a compose file stackctl cares about.
type ComposeFile struct {
	// Name is the optional top-level project name.
	Name string `yaml:"name"`

	// Services maps service names to their definitions. Definitions are
	// kept as raw nodes because only the names are used.
	Services map[string]yaml.Node `yaml:"services"`
}

// LoadComposeFile reads and parses a compose file.
func LoadComposeFile(path string) (*ComposeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose file: %w", err)
	}

	var cf ComposeFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse compose file %s: %w", path, err)
	}
	return &cf, nil
}

// ServiceNames returns the declared service names in sorted order.
func (c *ComposeFile) ServiceNames() []string {
	names := make([]string, 0, len(c.Services))
	for name := range c.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
