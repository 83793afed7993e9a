package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// ValidateJSON checks a raw snapshot against the embedded schema.
func ValidateJSON(raw []byte) error {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// Decode validates raw JSON against the schema and decodes it into a normalized aggregate.
func Decode(raw []byte) (ResumeData, error) {
	if err := ValidateJSON(raw); err != nil {
		return ResumeData{}, err
	}
	var data ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return ResumeData{}, fmt.Errorf("decode resume: %w", err)
	}
	data = data.Normalize()
	if err := data.Validate(); err != nil {
		return ResumeData{}, err
	}
	return data, nil
}
