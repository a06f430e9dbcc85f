// Package output renders resolved requests, responses and errors on the
// console.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"

	"github.com/kuiper-sh/kuiper/packages/core/request"
	kuiperhttp "github.com/kuiper-sh/kuiper/packages/http"
)

type ConsoleFormatter struct {
	writer  io.Writer
	errOut  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
		f.errOut = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatRequest prints a resolved request without sending it.
func (f *ConsoleFormatter) FormatRequest(def *request.Definition) {
	method := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)

	fmt.Fprintf(f.writer, "%s %s\n", method.Sprint(def.Method), kuiperhttp.BuildURL(def))

	for _, name := range sortedHeaderNames(def.Headers) {
		value := def.Headers[name]
		if value == nil {
			fmt.Fprintf(f.writer, "%s: %s\n", name, dim.Sprint("(unset)"))
			continue
		}
		fmt.Fprintf(f.writer, "%s: %s\n", name, *value)
	}

	if def.Body != nil {
		pretty, err := json.MarshalIndent(def.Body, "", "  ")
		if err == nil {
			fmt.Fprintf(f.writer, "\n%s\n", pretty)
		}
	}
}

// FormatResponse prints a response. When filter names a gjson path, only
// the matching part of a JSON body is printed.
func (f *ConsoleFormatter) FormatResponse(resp *kuiperhttp.Response, filter string) {
	status := color.New(color.FgGreen, color.Bold)
	if resp.StatusCode >= 500 {
		status = color.New(color.FgRed, color.Bold)
	} else if resp.StatusCode >= 400 {
		status = color.New(color.FgYellow, color.Bold)
	} else if resp.StatusCode >= 300 {
		status = color.New(color.FgYellow)
	}

	fmt.Fprintf(f.writer, "%s %s\n", status.Sprint(resp.Status), color.New(color.Faint).Sprintf("(%s)", resp.Duration.Round(time.Microsecond)))

	if f.verbose {
		for _, name := range sortedKeys(resp.Headers) {
			fmt.Fprintf(f.writer, "%s: %s\n", name, resp.Headers[name])
		}
		fmt.Fprintln(f.writer)
	}

	if len(resp.Body) == 0 {
		return
	}

	if filter != "" && gjson.ValidBytes(resp.Body) {
		result := gjson.GetBytes(resp.Body, filter)
		fmt.Fprintln(f.writer, result.String())
		return
	}

	if resp.IsJSON() {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, resp.Body, "", "  "); err == nil {
			fmt.Fprintln(f.writer, pretty.String())
			return
		}
	}
	fmt.Fprintln(f.writer, resp.BodyString())
}

// FormatError prints an error. Ambiguous searches get their candidate list
// rendered one per line.
func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed, color.Bold)
	fmt.Fprintf(f.errOut, "%s %v\n", red.Sprint("error:"), err)
}

func sortedHeaderNames(headers request.Headers) []string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
