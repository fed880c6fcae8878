package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Devcontainer is the subset of devcontainer.json used for discovery.
type Devcontainer struct {
	// Name is the display name of the dev container.
	Name string `json:"name"`

	// DockerComposeFile is a string or an array of strings.
	DockerComposeFile interface{} `json:"dockerComposeFile,omitempty"`

	// Service is the compose service the dev container attaches to.
	Service string `json:"service,omitempty"`
}

// LoadDevcontainer reads a devcontainer.json file, which may contain
// comments and trailing commas.
func LoadDevcontainer(path string) (*Devcontainer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read devcontainer.json: %w", err)
	}

	var dc Devcontainer
	if err := json.Unmarshal(jsonc.ToJSON(data), &dc); err != nil {
		return nil, fmt.Errorf("failed to parse devcontainer.json at %s: %w", path, err)
	}
	return &dc, nil
}

// ComposeFiles normalizes dockerComposeFile to a list. Non-string entries
// are skipped.
func (d *Devcontainer) ComposeFiles() []string {
	switch v := d.DockerComposeFile.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []interface{}:
		files := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				files = append(files, s)
			}
		}
		return files
	default:
		return nil
	}
}
