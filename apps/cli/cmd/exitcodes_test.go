package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kuiper-sh/kuiper/packages/core/request"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitSuccess},
		{"generic error", errors.New("boom"), ExitError},
		{"not found", fmt.Errorf("x: %w", request.ErrNotFound), ExitNotFound},
		{"ambiguous", &request.AmbiguousError{Term: "get", Matches: []string{"a", "b"}}, ExitAmbiguous},
		{"usage", &usageError{err: errors.New("unknown flag: --nope")}, ExitUsageError},
		{"wrapped usage", fmt.Errorf("run: %w", &usageError{err: errors.New("bad value")}), ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
