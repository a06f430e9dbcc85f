package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Ext is the file extension that marks a request definition file.
const Ext = ".kuiper"

// Headers maps header names to optional values. A nil value means the
// header is declared but unset.
type Headers map[string]*string

// Definition is one parsed request definition, before or after header
// inheritance and interpolation. The resolver returns a fresh value per
// resolution and never mutates it afterwards.
type Definition struct {
	Name    string            `json:"-"`
	URI     string            `json:"uri"`
	Headers Headers           `json:"headers"`
	Params  map[string]string `json:"params"`
	Method  string            `json:"method"`
	Body    any               `json:"body,omitempty"`
}

// ParseFile reads and decodes a definition file. A missing file maps to
// ErrNotFound so callers can fall back to search or render a clean
// "not found" message; malformed content maps to MalformedError.
func ParseFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	def := &Definition{}
	if err := json.Unmarshal(data, def); err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	def.Name = path
	if def.Headers == nil {
		def.Headers = make(Headers)
	}
	if def.Params == nil {
		def.Params = make(map[string]string)
	}
	return def, nil
}

// ParseHeaderFile decodes a per-directory header file, a flat mapping of
// header name to string or null. An absent file is not an error and yields
// a nil map; any other read or parse failure is fatal to the resolution.
func ParseHeaderFile(path string) (Headers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var headers Headers
	if err := json.Unmarshal(data, &headers); err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	return headers, nil
}
