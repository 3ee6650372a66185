package quizgen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// questionSetSchema is the structural contract every normalized question
// set must satisfy before it is persisted or served.
var questionSetSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questionText": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"options": map[string]any{
				"type":     "array",
				"minItems": OptionCount,
				"maxItems": OptionCount,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":      "string",
							"minLength": 1,
						},
						"isCorrect": map[string]any{
							"type": "boolean",
						},
					},
					"required":             []any{"text", "isCorrect"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questionText", "options"},
		"additionalProperties": false,
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledQuestionSetSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, so round-trip the map.
		defBytes, err := json.Marshal(questionSetSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://question-set.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// ValidateQuestions checks a normalized question set against the schema
// plus the one rule a JSON schema cannot express cheaply: exactly one
// option per question is flagged correct.
func ValidateQuestions(questions []Question) error {
	raw, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("marshal question set: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse question set: %w", err)
	}

	schema, err := compiledQuestionSetSchema()
	if err != nil {
		return fmt.Errorf("compile question-set schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	for i, q := range questions {
		correct := 0
		for _, o := range q.Options {
			if o.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("question %d: %d options flagged correct, want exactly 1", i+1, correct)
		}
	}
	return nil
}
