package validation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

var ErrInvalidPayload = errors.New("invalid payload")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error collects every schema violation of one payload.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidPayload.Error()
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidPayload, e.Fields[0].Field, e.Fields[0].Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalidPayload
}

type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// MustCompile panics when the schema itself is malformed.
func MustCompile(name, src string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile %s schema: %v", name, err))
	}
	return &Schema{name: name, schema: s}
}

// Validate checks a raw JSON body. Invalid JSON is reported on the "body" field.
func (s *Schema) Validate(body []byte) error {
	if len(body) == 0 {
		return &Error{Fields: []FieldError{{Field: "body", Message: "is required"}}}
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &Error{Fields: []FieldError{{Field: "body", Message: "must be valid JSON"}}}
	}
	if result.Valid() {
		return nil
	}

	fields := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "(root)" {
			if p, ok := desc.Details()["property"].(string); ok && p != "" {
				field = p
			} else {
				field = "body"
			}
		}
		fields = append(fields, FieldError{Field: field, Message: desc.Description()})
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return &Error{Fields: fields}
}
