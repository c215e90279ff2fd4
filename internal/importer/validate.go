package importer

import (
	"fmt"

	"github.com/pgorski/taskcal/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error
	errs = append(errs, validateProject(&schema.Project)...)
	errs = append(errs, validateSubtasks(schema.Subtasks)...)
	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.Title == "" {
		errs = append(errs, fmt.Errorf("project.title is required"))
	}
	if p.Priority != nil {
		if err := domain.ValidatePriority(*p.Priority); err != nil {
			errs = append(errs, fmt.Errorf("project.priority: %w", err))
		}
	}
	errs = append(errs, validateOptionalDate("project.deadline", p.Deadline)...)

	return errs
}

func validateSubtasks(subtasks []SubtaskImport) []error {
	var errs []error

	if len(subtasks) == 0 {
		errs = append(errs, fmt.Errorf("at least one subtask is required"))
	}

	seen := make(map[string]bool, len(subtasks))
	for i, st := range subtasks {
		prefix := fmt.Sprintf("subtasks[%d]", i)

		if st.Description == "" {
			errs = append(errs, fmt.Errorf("%s.description is required", prefix))
		} else if seen[st.Description] {
			errs = append(errs, fmt.Errorf("%s.description: duplicate %q", prefix, st.Description))
		} else {
			seen[st.Description] = true
		}

		if st.DurationMin <= 0 {
			errs = append(errs, fmt.Errorf("%s.duration_min must be positive, got %d", prefix, st.DurationMin))
		}
		if st.Priority != nil {
			if err := domain.ValidatePriority(*st.Priority); err != nil {
				errs = append(errs, fmt.Errorf("%s.priority: %w", prefix, err))
			}
		}
		errs = append(errs, validateOptionalDate(prefix+".deadline", st.Deadline)...)
	}

	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := domain.ParseDate(*dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
