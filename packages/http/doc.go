// Package http sends resolved requests. It wraps the standard library's
// http package with:
//   - Configurable timeouts and redirect handling
//   - Optional proxy and TLS verification toggles
//   - Default headers applied when a request does not set them
//   - Query param serialization and JSON body encoding
//
// The resolver hands this package a fully interpolated definition; nothing
// here mutates it.
package http
