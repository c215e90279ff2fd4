package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for project import.
type ImportSchema struct {
	Project  ProjectImport   `json:"project"`
	Subtasks []SubtaskImport `json:"subtasks"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
}

// SubtaskImport defines one subtask in the import file. Priority and
// deadline are optional; blank values inherit from the project.
type SubtaskImport struct {
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min"`
	Priority    *int    `json:"priority,omitempty"`
	Order       *int    `json:"order,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}

// LoadImportSchema reads and parses a project import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
