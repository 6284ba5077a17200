// File: internal/snippets/snippets.go
package snippets

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed snippets.yaml
var catalogue []byte

// Snippet is one API reference example with the equivalent CLI invocation
type Snippet struct {
	Title   string `yaml:"title"`
	Command string `yaml:"command"`
	Code    string `yaml:"code"`
}

// Load returns the built-in snippets in display order
func Load() ([]Snippet, error) {
	return Parse(catalogue)
}

func Parse(data []byte) ([]Snippet, error) {
	var out []Snippet
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("error parsing snippets: %w", err)
	}
	for i := range out {
		if out[i].Title == "" {
			return nil, fmt.Errorf("snippet %d has no title", i+1)
		}
		out[i].Code = strings.TrimRight(out[i].Code, "\n")
	}
	return out, nil
}
