package request

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	path := writeTemp(t, "req.kuiper", `{
		"uri": "http://localhost/api",
		"method": "POST",
		"headers": {"accept": "application/json", "x-trace": null},
		"params": {"page": "1"},
		"body": {"name": "x"},
		"futureField": true
	}`)

	def, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if def.Name != path {
		t.Errorf("Name = %q, want %q", def.Name, path)
	}
	if def.URI != "http://localhost/api" {
		t.Errorf("URI = %q", def.URI)
	}
	if def.Method != "POST" {
		t.Errorf("Method = %q", def.Method)
	}
	if v := def.Headers["accept"]; v == nil || *v != "application/json" {
		t.Errorf("accept header = %v", v)
	}
	if v, ok := def.Headers["x-trace"]; !ok || v != nil {
		t.Errorf("x-trace header should be present and nil, got %v (present %v)", v, ok)
	}
	if def.Params["page"] != "1" {
		t.Errorf("params = %v", def.Params)
	}
	if def.Body == nil {
		t.Error("body should be set")
	}
}

func TestParseFileDefaultsMaps(t *testing.T) {
	path := writeTemp(t, "req.kuiper", `{"uri":"http://x","method":"GET"}`)

	def, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if def.Headers == nil || def.Params == nil {
		t.Error("headers and params must never be nil after parsing")
	}
	if def.Body != nil {
		t.Error("absent body must stay nil")
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.kuiper"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestParseFileMalformed(t *testing.T) {
	path := writeTemp(t, "req.kuiper", `{"uri": `)

	_, err := ParseFile(path)
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedError, got %v", err)
	}
	if malformed.Path != path {
		t.Errorf("Path = %q, want %q", malformed.Path, path)
	}
}

func TestParseHeaderFile(t *testing.T) {
	path := writeTemp(t, "headers.json", `{"a":"1","b":null}`)

	headers, err := ParseHeaderFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if v := headers["a"]; v == nil || *v != "1" {
		t.Errorf("a = %v", v)
	}
	if v, ok := headers["b"]; !ok || v != nil {
		t.Errorf("b should be present and nil")
	}
}

func TestParseHeaderFileAbsent(t *testing.T) {
	headers, err := ParseHeaderFile(filepath.Join(t.TempDir(), "headers.json"))
	if err != nil {
		t.Fatalf("absent header file must not error, got %v", err)
	}
	if headers != nil {
		t.Errorf("absent header file must yield nil, got %v", headers)
	}
}

func TestParseHeaderFileMalformed(t *testing.T) {
	path := writeTemp(t, "headers.json", `["not","a","mapping"]`)

	_, err := ParseHeaderFile(path)
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedError, got %v", err)
	}
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{
			name:    "valid definition",
			content: `{"uri":"http://x","method":"GET","headers":{"a":"1","b":null}}`,
			valid:   true,
		},
		{
			name:    "extra fields allowed",
			content: `{"uri":"http://x","method":"GET","whatever":123}`,
			valid:   true,
		},
		{
			name:    "missing method",
			content: `{"uri":"http://x"}`,
			valid:   false,
		},
		{
			name:    "numeric header value",
			content: `{"uri":"http://x","method":"GET","headers":{"a":1}}`,
			valid:   false,
		},
		{
			name:    "numeric param value",
			content: `{"uri":"http://x","method":"GET","params":{"a":1}}`,
			valid:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "req.kuiper", tt.content)
			problems, err := ValidateFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if tt.valid && len(problems) > 0 {
				t.Errorf("expected valid, got problems %v", problems)
			}
			if !tt.valid && len(problems) == 0 {
				t.Error("expected problems, got none")
			}
		})
	}
}
