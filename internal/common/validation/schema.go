// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ChatRequestSchema describes the body of POST /api/chat and the variables
// of the answer-company-question job. language stays a free string: unknown
// values are ignored and detection runs instead.
const ChatRequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["message"],
  "properties": {
    "message":        {"type": "string", "minLength": 1, "maxLength": 4000, "pattern": "\\S"},
    "conversationId": {"type": ["string", "null"], "maxLength": 256},
    "language":       {"type": ["string", "null"], "maxLength": 16}
  }
}`

// KnowledgeBaseSchema describes data.json. Unknown fields are allowed so
// the content team can add data before the matcher uses it.
const KnowledgeBaseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["data"],
  "definitions": {
    "text": {"type": ["string", "null"]},
    "offering": {
      "type": "object",
      "properties": {
        "nom":            {"$ref": "#/definitions/text"},
        "nom_en":         {"$ref": "#/definitions/text"},
        "description":    {"$ref": "#/definitions/text"},
        "description_en": {"$ref": "#/definitions/text"},
        "categorie":      {"$ref": "#/definitions/text"}
      }
    }
  },
  "properties": {
    "data": {
      "type": "object",
      "properties": {
        "nom_entreprise": {"$ref": "#/definitions/text"},
        "adresse":        {"$ref": "#/definitions/text"},
        "apropos":        {"$ref": "#/definitions/text"},
        "apercu":         {"$ref": "#/definitions/text"},
        "services":       {"type": "array", "items": {"$ref": "#/definitions/offering"}},
        "expertise_principale": {"type": "array", "items": {"$ref": "#/definitions/offering"}},
        "direction": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "role": {"$ref": "#/definitions/text"},
              "nom":  {"$ref": "#/definitions/text"}
            }
          }
        },
        "realisations_et_recompenses": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "titre": {"$ref": "#/definitions/text"},
              "annee": {"type": ["integer", "null"], "minimum": 1900, "maximum": 2100},
              "lieu":  {"$ref": "#/definitions/text"}
            }
          }
        },
        "projets": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "id":             {"$ref": "#/definitions/text"},
              "nom":            {"$ref": "#/definitions/text"},
              "secteur":        {"$ref": "#/definitions/text"},
              "type":           {"$ref": "#/definitions/text"},
              "type_en":        {"$ref": "#/definitions/text"},
              "description":    {"$ref": "#/definitions/text"},
              "description_en": {"$ref": "#/definitions/text"},
              "url":            {"$ref": "#/definitions/text"}
            }
          }
        },
        "expertise": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "id":      {"$ref": "#/definitions/text"},
              "nom":     {"$ref": "#/definitions/text"},
              "details": {"type": "array", "items": {"$ref": "#/definitions/offering"}}
            }
          }
        },
        "subjects": {
          "type": "object",
          "additionalProperties": {
            "type": "object",
            "properties": {
              "aliases":   {"type": "array", "items": {"type": "string"}},
              "answer_en": {"$ref": "#/definitions/text"},
              "answer_fr": {"$ref": "#/definitions/text"}
            }
          }
        }
      }
    }
  }
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins every error as "field: message", sorted by field.
func (r *ValidationResult) Summary() string {
	if r == nil || len(r.Errors) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// Validator holds a compiled schema. It is safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

func NewValidator(schemaJSON string) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// MustValidator panics on an invalid schema; for package-level schemas.
func MustValidator(schemaJSON string) *Validator {
	v, err := NewValidator(schemaJSON)
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateBytes validates a raw JSON document.
func (v *Validator) ValidateBytes(doc []byte) (*ValidationResult, error) {
	return v.validate(gojsonschema.NewBytesLoader(doc))
}

// ValidateInput validates an already decoded value, such as Zeebe job
// variables.
func (v *Validator) ValidateInput(input interface{}) (*ValidationResult, error) {
	return v.validate(gojsonschema.NewGoLoader(input))
}

func (v *Validator) validate(doc gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := v.schema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "(root)" {
			if prop, ok := desc.Details()["property"].(string); ok {
				field = prop
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}
