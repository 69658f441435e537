package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a plan file. Plan files are
// YAML; JSON documents parse as well.
type ImportSchema struct {
	Activities   []ActivityImport   `yaml:"activities"`
	Dependencies []DependencyImport `yaml:"dependencies,omitempty"`
}

// ActivityImport defines an activity in the plan file. Parent must name an
// activity that appears earlier in the list.
type ActivityImport struct {
	Ref        string            `yaml:"ref"`
	Parent     *string           `yaml:"parent,omitempty"`
	Name       string            `yaml:"name"`
	Start      *string           `yaml:"start,omitempty"`
	End        *string           `yaml:"end,omitempty"`
	Color      string            `yaml:"color,omitempty"`
	Collapsed  bool              `yaml:"collapsed,omitempty"`
	Milestones []MilestoneImport `yaml:"milestones,omitempty"`
}

// MilestoneImport defines a milestone owned by the enclosing activity.
type MilestoneImport struct {
	Name string `yaml:"name"`
	Date string `yaml:"date"`
}

// DependencyImport defines a link between two activity refs. Type defaults
// to FS.
type DependencyImport struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Type string `yaml:"type,omitempty"`
}

// LoadImportSchema reads and parses a plan file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses plan file contents.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
