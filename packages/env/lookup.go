// Package env provides environment lookups for interpolation and .env file
// loading for the CLI layer.
package env

import (
	"os"

	"github.com/kuiper-sh/kuiper/packages/core/interp"
)

// OS returns a lookup backed by the process environment.
func OS() interp.Lookup {
	return interp.LookupFunc(os.LookupEnv)
}

// Static returns a lookup backed by a fixed map. It keeps tests independent
// of the real process environment.
func Static(vars map[string]string) interp.Lookup {
	return interp.LookupFunc(func(name string) (string, bool) {
		value, ok := vars[name]
		return value, ok
	})
}
