package schema

import "fmt"

// Issue is a non-fatal authoring finding about a parsed schema.
type Issue struct {
	Table      string // Table name, empty for sequence findings
	Field      string // Field name (optional)
	Message    string
	Suggestion string // Helpful suggestion (optional)
}

// Error returns a formatted message
func (i Issue) Error() string {
	var msg string
	switch {
	case i.Field != "":
		msg = fmt.Sprintf("%s.%s: %s", i.Table, i.Field, i.Message)
	case i.Table != "":
		msg = fmt.Sprintf("%s: %s", i.Table, i.Message)
	default:
		msg = i.Message
	}
	if i.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", i.Suggestion)
	}
	return msg
}

// Issues is a collection of lint findings
type Issues []Issue

// Error returns all findings, numbered
func (is Issues) Error() string {
	if len(is) == 0 {
		return "no issues"
	}
	if len(is) == 1 {
		return is[0].Error()
	}

	result := fmt.Sprintf("found %d issues:\n", len(is))
	for i, issue := range is {
		result += fmt.Sprintf("  %d. %s\n", i+1, issue.Error())
	}
	return result
}

// Lint reports tables that were only referenced by ADD FIELD, tables without
// fields, duplicate sequence names and duplicate field names. Findings come
// back in schema order. Parsing already succeeded, so none of these are errors.
func Lint(s *Schema) Issues {
	var issues Issues

	seen := make(map[string]bool, len(s.Sequences))
	for _, name := range s.Sequences {
		if seen[name] {
			issues = append(issues, Issue{
				Message: fmt.Sprintf("sequence %q is declared more than once", name),
			})
		}
		seen[name] = true
	}

	for _, t := range s.Tables() {
		if t.Implicit {
			issues = append(issues, Issue{
				Table:      t.Name,
				Message:    "table is referenced by ADD FIELD but never declared",
				Suggestion: fmt.Sprintf("add ADD TABLE %q before its fields", t.Name),
			})
		}
		if len(t.Fields) == 0 {
			issues = append(issues, Issue{
				Table:   t.Name,
				Message: "table has no fields",
			})
		}

		names := make(map[string]bool, len(t.Fields))
		for _, f := range t.Fields {
			if names[f.Name] {
				issues = append(issues, Issue{
					Table:   t.Name,
					Field:   f.Name,
					Message: "field is declared more than once",
				})
			}
			names[f.Name] = true
		}
	}

	return issues
}
