package fixtures

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var entitySchema []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("entity.json", bytes.NewReader(entitySchema)); err != nil {
		return nil, err
	}
	return compiler.Compile("entity.json")
})

// Issue is one schema violation inside a fixture document.
type Issue struct {
	Location string
	Message  string
}

// ValidationError lists the schema violations of one document.
type ValidationError struct {
	Source string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		parts = append(parts, location+": "+issue.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidDocument
}

func validateRaw(source string, raw map[string]any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("fixtures: compile schema: %w", err)
	}

	// YAML decodes numbers as int; the validator expects JSON shaped values.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	if err := schema.Validate(payload); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &ValidationError{Source: source, Issues: collectIssues(verr)}
		}
		return &ValidationError{Source: source, Issues: []Issue{{Message: err.Error()}}}
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
