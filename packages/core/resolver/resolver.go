// Package resolver turns located definition files into fully interpolated
// requests: it loads the target file, merges headers inherited from every
// ancestor directory between the root and the file, and interpolates all
// placeholders.
package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kuiper-sh/kuiper/packages/core/interp"
	"github.com/kuiper-sh/kuiper/packages/core/locator"
	"github.com/kuiper-sh/kuiper/packages/core/request"
)

// DefaultHeaderFile is the per-directory header file name.
const DefaultHeaderFile = "headers.json"

// Resolver resolves definition files relative to a root directory. It holds
// no mutable state across calls, so concurrent resolutions are safe as long
// as the lookup is read-only.
type Resolver struct {
	root              string
	headerFile        string
	interpolateParams bool
	lookup            interp.Lookup
	log               *zap.SugaredLogger
}

type Option func(*Resolver)

// WithHeaderFile overrides the per-directory header file name.
func WithHeaderFile(name string) Option {
	return func(r *Resolver) {
		r.headerFile = name
	}
}

// WithInterpolateParams controls whether query param values are
// interpolated. On by default.
func WithInterpolateParams(on bool) Option {
	return func(r *Resolver) {
		r.interpolateParams = on
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

func New(root string, lookup interp.Lookup, opts ...Option) *Resolver {
	r := &Resolver{
		root:              root,
		headerFile:        DefaultHeaderFile,
		interpolateParams: true,
		lookup:            lookup,
		log:               zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Find resolves a path or search term to a single request. An exact path
// hit wins; otherwise the term is searched for under the root. Zero search
// matches surface as request.ErrNotFound, more than one as
// request.AmbiguousError with the full candidate list.
func (r *Resolver) Find(nameOrPath string) (*request.Definition, error) {
	loc := locator.New(r.root)

	path, err := loc.LocateExact(nameOrPath)
	if err != nil {
		if !errors.Is(err, request.ErrNotFound) {
			return nil, err
		}
		r.log.Debugw("exact lookup missed, falling back to search", "term", nameOrPath)

		matches, err := loc.Search(nameOrPath)
		if err != nil {
			return nil, err
		}
		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("%q: %w", nameOrPath, request.ErrNotFound)
		case 1:
			path = matches[0]
		default:
			return nil, &request.AmbiguousError{Term: nameOrPath, Matches: matches}
		}
	}

	return r.Resolve(path)
}

// Resolve runs the full pipeline on one definition file: parse, inherit
// ancestor headers, interpolate. The first failure anywhere aborts; partial
// results are never returned.
func (r *Resolver) Resolve(path string) (*request.Definition, error) {
	def, err := request.ParseFile(path)
	if err != nil {
		return nil, err
	}

	layers, err := r.headerLayers(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	inherit(def, foldLayers(layers))

	if err := r.interpolate(def); err != nil {
		return nil, err
	}

	r.log.Debugw("resolved request", "path", path, "method", def.Method, "uri", def.URI)
	return def, nil
}

// headerLayers collects the optional header file of every directory between
// the root (inclusive) and dir (inclusive), outermost first. A directory
// without a header file contributes nothing; an unreadable or malformed one
// fails the resolution.
func (r *Resolver) headerLayers(dir string) ([]request.Headers, error) {
	chain, err := r.ancestors(dir)
	if err != nil {
		return nil, err
	}

	var layers []request.Headers
	for _, d := range chain {
		headers, err := request.ParseHeaderFile(filepath.Join(d, r.headerFile))
		if err != nil {
			return nil, err
		}
		if headers != nil {
			layers = append(layers, headers)
		}
	}
	return layers, nil
}

// ancestors returns the directory chain from the root down to dir,
// outermost first. A definition outside the root inherits only from its own
// directory.
func (r *Resolver) ancestors(dir string) ([]string, error) {
	root, err := filepath.Abs(r.root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", r.root, err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return []string{abs}, nil
	}

	chain := []string{abs}
	for abs != root {
		abs = filepath.Dir(abs)
		chain = append([]string{abs}, chain...)
	}
	return chain, nil
}

// foldLayers flattens scope layers collected outermost-first into a single
// header set. Later layers overwrite earlier ones, which gives the closest
// directory precedence.
func foldLayers(layers []request.Headers) request.Headers {
	merged := make(request.Headers)
	for _, layer := range layers {
		for name, value := range layer {
			merged[name] = value
		}
	}
	return merged
}

// inherit adds every merged directory header the definition does not
// declare itself. Headers declared on the definition always win, including
// ones declared null.
func inherit(def *request.Definition, merged request.Headers) {
	for name, value := range merged {
		if _, ok := def.Headers[name]; !ok {
			def.Headers[name] = value
		}
	}
}

// interpolate rewrites the URI, every present header value, every param
// value (when enabled) and the body, in that order.
func (r *Resolver) interpolate(def *request.Definition) error {
	var err error
	if def.URI, err = interp.String(def.URI, r.lookup); err != nil {
		return err
	}

	for name, value := range def.Headers {
		if value == nil {
			continue
		}
		resolved, err := interp.String(*value, r.lookup)
		if err != nil {
			return err
		}
		def.Headers[name] = &resolved
	}

	if r.interpolateParams {
		for name, value := range def.Params {
			if def.Params[name], err = interp.String(value, r.lookup); err != nil {
				return err
			}
		}
	}

	return r.interpolateBody(def)
}

// interpolateBody round-trips the body through its JSON text form: marshal,
// interpolate the text, parse it back. A body that no longer parses after
// interpolation is a request.BodyError.
func (r *Resolver) interpolateBody(def *request.Definition) error {
	if def.Body == nil {
		return nil
	}

	raw, err := json.Marshal(def.Body)
	if err != nil {
		return &request.BodyError{Path: def.Name, Err: err}
	}
	text, err := interp.String(string(raw), r.lookup)
	if err != nil {
		return err
	}

	var body any
	if err := json.Unmarshal([]byte(text), &body); err != nil {
		return &request.BodyError{Path: def.Name, Err: err}
	}
	def.Body = body
	return nil
}
