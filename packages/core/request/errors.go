package request

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports that no definition matched: the exact path did not
// exist, or a search produced zero candidates.
var ErrNotFound = errors.New("request not found")

// AmbiguousError reports a search term that matched more than one
// definition. Callers must render the candidate list and abort rather than
// pick one.
type AmbiguousError struct {
	Term    string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q matches %d requests:\n  %s",
		e.Term, len(e.Matches), strings.Join(e.Matches, "\n  "))
}

// MalformedError reports a definition or header file whose content could
// not be parsed.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed definition %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// BodyError reports a body that stopped being valid JSON after
// interpolation: placeholder substitution inside a string can in principle
// produce invalid structure.
type BodyError struct {
	Path string
	Err  error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body of %s is not valid JSON after interpolation: %v", e.Path, e.Err)
}

func (e *BodyError) Unwrap() error { return e.Err }
