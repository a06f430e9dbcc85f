package interp

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	openMarker  = "{{"
	closeMarker = "}}"
)

// Lookup resolves env: placeholder names. It is consulted read-only during
// interpolation; implementations must be safe for concurrent reads.
type Lookup interface {
	Lookup(name string) (string, bool)
}

// LookupFunc adapts a plain function to the Lookup interface.
type LookupFunc func(name string) (string, bool)

func (f LookupFunc) Lookup(name string) (string, bool) { return f(name) }

// String interpolates every placeholder in input and returns the result.
// Offsets are always computed against the input, never against partially
// replaced text, so a substituted value cannot shift or re-trigger later
// matches. The first failing placeholder aborts the whole pass.
func String(input string, lookup Lookup) (string, error) {
	if !strings.Contains(input, openMarker) {
		return input, nil
	}

	var out strings.Builder
	pos := 0
	for {
		start := strings.Index(input[pos:], openMarker)
		if start < 0 {
			out.WriteString(input[pos:])
			return out.String(), nil
		}
		start += pos

		length := strings.Index(input[start+len(openMarker):], closeMarker)
		if length < 0 {
			return "", ErrInvalidFormat
		}
		end := start + len(openMarker) + length

		value, err := evaluate(input[start+len(openMarker):end], lookup)
		if err != nil {
			return "", err
		}

		out.WriteString(input[pos:start])
		out.WriteString(value)
		pos = end + len(closeMarker)
	}
}

func evaluate(placeholder string, lookup Lookup) (string, error) {
	kind, name, found := strings.Cut(placeholder, ":")
	if !found {
		return "", ErrInvalidFormat
	}

	switch kind {
	case "env":
		value, ok := lookup.Lookup(name)
		if !ok {
			return "", &MissingEnvVarError{Name: name}
		}
		return value, nil
	case "expr":
		return expr(name)
	default:
		return "", ErrInvalidFormat
	}
}

// expr evaluates a built-in expression. Every evaluation is fresh: two
// uuid placeholders in one string yield two different values.
func expr(name string) (string, error) {
	switch name {
	case "uuid":
		return uuid.NewString(), nil
	case "now":
		return time.Now().UTC().Format(time.RFC3339), nil
	default:
		return "", &InvalidExprError{Name: name}
	}
}
