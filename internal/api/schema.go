package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema a response body must satisfy.
type Schema struct {
	Name       string
	Definition map[string]any
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validate checks raw against schema. A nil schema always passes.
func validate(endpoint string, schema *Schema, raw []byte) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &FetchError{Kind: KindDecode, Endpoint: endpoint, Message: "invalid JSON", Err: err}
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return &FetchError{Kind: KindDecode, Endpoint: endpoint, Message: fmt.Sprintf("compile schema %q", schema.Name), Err: err}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &FetchError{Kind: KindDecode, Endpoint: endpoint, Message: fmt.Sprintf("response does not match %s", schema.Name), Err: err}
	}
	return nil
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a parsed JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

func arrayOf(item map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": item}
}

var (
	quizQuestionsSchema = &Schema{
		Name: "quiz-questions",
		Definition: arrayOf(map[string]any{
			"type":     "object",
			"required": []any{"id", "question", "option_a", "option_b", "option_c", "option_d"},
			"properties": map[string]any{
				"id":       map[string]any{"type": "integer"},
				"question": map[string]any{"type": "string"},
				"option_a": map[string]any{"type": "string"},
				"option_b": map[string]any{"type": "string"},
				"option_c": map[string]any{"type": "string"},
				"option_d": map[string]any{"type": "string"},
			},
		}),
	}

	answerResultSchema = &Schema{
		Name: "answer-result",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"is_correct", "correct_option"},
			"properties": map[string]any{
				"is_correct":     map[string]any{"type": "boolean"},
				"correct_option": map[string]any{"type": "string", "enum": []any{"a", "b", "c", "d"}},
				"explanation":    map[string]any{"type": []any{"string", "null"}},
			},
		},
	}

	fixedSetsSchema = &Schema{
		Name: "fixed-sets",
		Definition: arrayOf(map[string]any{
			"type":     "object",
			"required": []any{"id", "title"},
			"properties": map[string]any{
				"id":             map[string]any{"type": "integer"},
				"title":          map[string]any{"type": "string"},
				"question_count": map[string]any{"type": "integer", "minimum": 0},
			},
		}),
	}

	progressSchema = &Schema{
		Name: "progress",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"overall_accuracy", "total_attempts"},
			"properties": map[string]any{
				"overall_accuracy":   map[string]any{"type": "number"},
				"total_attempts":     map[string]any{"type": "integer"},
				"time_spent_minutes": map[string]any{"type": "integer"},
				"strengths":          arrayOf(map[string]any{"type": "string"}),
				"weaknesses":         arrayOf(map[string]any{"type": "string"}),
				"topic_stats": map[string]any{
					"type": "object",
					"additionalProperties": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name":     map[string]any{"type": "string"},
							"accuracy": map[string]any{"type": "number"},
							"correct":  map[string]any{"type": "integer"},
							"total":    map[string]any{"type": "integer"},
						},
					},
				},
			},
		},
	}

	learningPathSchema = &Schema{
		Name: "learning-path",
		Definition: arrayOf(map[string]any{
			"type":     "object",
			"required": []any{"topic_name", "mastery"},
			"properties": map[string]any{
				"topic_name": map[string]any{"type": "string"},
				"mastery":    map[string]any{"type": "string"},
				"action":     map[string]any{"type": "string"},
			},
		}),
	}
)
