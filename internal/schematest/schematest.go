// Package schematest holds helpers shared by the exporter tests.
package schematest

import (
	"encoding/json"
	"io/fs"
	"strconv"
	"strings"
	"testing"

	"github.com/nsf/jsondiff"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/internal/schema"
	"github.com/covesa/s2dm/spec"
)

// Bundle returns the bundled directive, type and scalar definitions.
func Bundle(t testing.TB) string {
	t.Helper()
	var b strings.Builder
	for _, name := range spec.Files {
		data, err := fs.ReadFile(spec.FS, name)
		if err != nil {
			t.Fatalf("read bundled %s: %v", name, err)
		}
		b.Write(data)
		b.WriteString("\n")
	}
	return b.String()
}

// Parse parses sdl after the bundled definitions and binds a query root.
func Parse(t testing.TB, sdl string) *ast.Schema {
	t.Helper()
	s, err := schema.Parse(Bundle(t) + sdl)
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	return schema.EnsureQuery(s, nil)
}

// Test is an exporter test case comparing JSON output.
type Test struct {
	Description string
	SDL         string
	Export      func(s *ast.Schema) ([]byte, error)
	Expected    string
}

// RunTests runs the given cases as subtests.
func RunTests(t *testing.T, tests []*Test) {
	t.Helper()
	for i, test := range tests {
		name := test.Description
		if name == "" {
			name = strconv.Itoa(i + 1)
		}
		t.Run(name, func(t *testing.T) {
			t.Helper()
			RunTest(t, test)
		})
	}
}

// RunTest runs a single case.
func RunTest(t *testing.T, test *Test) {
	t.Helper()
	got, err := test.Export(Parse(t, test.SDL))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	JSONEq(t, test.Expected, got)
}

// JSONEq fails t when got is not the JSON document want, logging a diff.
func JSONEq(t testing.TB, want string, got []byte) {
	t.Helper()
	opts := jsondiff.Options{
		Added:   jsondiff.Tag{Begin: "+++", End: "+++"},
		Removed: jsondiff.Tag{Begin: "---", End: "---"},
		Changed: jsondiff.Tag{Begin: "|||", End: "|||"},
		Indent:  "    ",
	}
	diff, output := jsondiff.Compare([]byte(want), got, &opts)
	if diff != jsondiff.FullMatch {
		t.Log("Did not get expected result:\n", output)
		t.Log("Got:", string(got))
		t.Fail()
	}
}

// Decode unmarshals a JSON document into a generic value.
func Decode(t testing.TB, data []byte) interface{} {
	t.Helper()
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	return v
}
