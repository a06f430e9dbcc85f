package config

import "time"

const (
	// DefaultRoot is the directory request names are resolved against.
	DefaultRoot = "."

	// DefaultHeaderFile is the per-directory header file name.
	DefaultHeaderFile = "headers.json"

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRedirects is the maximum number of redirects to follow.
	DefaultMaxRedirects = 10
)
