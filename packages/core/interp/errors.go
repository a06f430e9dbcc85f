package interp

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat reports a malformed placeholder: an unterminated {{, a
// missing kind:name separator, or an unknown kind.
var ErrInvalidFormat = errors.New("invalid placeholder format")

// MissingEnvVarError reports an env: placeholder whose variable is not set.
// It is recoverable by the user, unlike a syntax error.
type MissingEnvVarError struct {
	Name string
}

func (e *MissingEnvVarError) Error() string {
	return fmt.Sprintf("missing environment variable %q", e.Name)
}

// InvalidExprError reports an expr: placeholder naming an unknown
// expression.
type InvalidExprError struct {
	Name string
}

func (e *InvalidExprError) Error() string {
	return fmt.Sprintf("invalid expression %q", e.Name)
}
