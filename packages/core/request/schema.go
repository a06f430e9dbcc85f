package request

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// definitionSchema is the JSON schema every definition file must satisfy.
// Extra top-level fields are allowed for forward compatibility.
const definitionSchema = `{
	"type": "object",
	"required": ["uri", "method"],
	"properties": {
		"uri": {"type": "string"},
		"method": {"type": "string"},
		"headers": {
			"type": "object",
			"additionalProperties": {"type": ["string", "null"]}
		},
		"params": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		},
		"body": {}
	}
}`

// ValidateFile checks a definition file against the definition schema and
// returns a description of every violation. A nil slice means the file is
// valid.
func ValidateFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	schemaLoader := gojsonschema.NewStringLoader(definitionSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	if result.Valid() {
		return nil, nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return problems, nil
}
