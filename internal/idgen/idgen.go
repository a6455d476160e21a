// Package idgen derives stable concept identifiers from the properties that
// define a concept: name, data type, unit, allowed values and range.
package idgen

import (
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/internal/field"
)

// Spec is the identity of a concept. Two concepts with equal specs get the
// same id.
type Spec struct {
	Name     string
	DataType string
	Unit     string
	Allowed  []string
	// Min and Max are the @range bounds in canonical number form, empty when
	// unset.
	Min string
	Max string
}

// Input is the text that is hashed. Unless strict it is lower-cased, so ids
// do not change with the case of names.
func (s Spec) Input(strict bool) string {
	in := fmt.Sprintf("%s: unit: %s, datatype: %s, allowed: %smin: %smax: %s",
		s.Name, s.Unit, s.DataType, allowed(s.Allowed), s.Min, s.Max)
	if strict {
		return in
	}
	return strings.ToLower(in)
}

func allowed(values []string) string {
	if len(values) == 0 {
		return ""
	}
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	quoted := make([]string, len(sorted))
	for i, v := range sorted {
		quoted[i] = "'" + v + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// ID is the 32 bit FNV-1 hash of the input as 0x-prefixed upper-case hex.
func (s Spec) ID(strict bool) string {
	h := fnv.New32()
	h.Write([]byte(s.Input(strict)))
	return fmt.Sprintf("0x%08X", h.Sum32())
}

// FromEnum builds the Spec of an enum concept.
func FromEnum(e *ast.EnumTypeDefinition) Spec {
	return Spec{Name: e.Name, DataType: "string", Allowed: e.Values()}
}

// FromField builds the Spec of the field concept parent.f. The unit is the
// default of the field's unit argument, translated through units when it
// names a known unit.
func FromField(parent string, f *ast.FieldDefinition, units Units) Spec {
	spec := Spec{
		Name:     parent + "." + f.Name,
		DataType: DataType(f.Type),
	}
	if enum, ok := ast.Unwrap(f.Type).(*ast.EnumTypeDefinition); ok {
		spec.Allowed = enum.Values()
	}
	if unit, ok := field.ArgumentDefault(f, "unit"); ok {
		if symbol, ok := units[unit]; ok {
			unit = symbol
		}
		spec.Unit = unit
	}
	min, max := field.Range(f)
	spec.Min = Number(min)
	spec.Max = Number(max)
	return spec
}

// Number renders a bound so that spellings of the same value hash alike: Int
// literals in decimal, Float literals in shortest form with a fractional part
// (250.50 and 250.5 give 250.5, 1e3 gives 1000.0). A nil bound is "".
func Number(b *field.Bound) string {
	if b == nil {
		return ""
	}
	if b.Integer {
		if n, err := strconv.ParseInt(b.Text, 10, 64); err == nil {
			return strconv.FormatInt(n, 10)
		}
		return b.Text
	}
	v := b.Value
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return b.Text
	}
	if abs := math.Abs(v); v != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

// DataType is the lower-cased scalar name (string for enums) with one []
// suffix per list level, e.g. float[]. Other named types yield "".
func DataType(t ast.Type) string {
	var name string
	switch inner := ast.Unwrap(t).(type) {
	case *ast.ScalarTypeDefinition:
		name = strings.ToLower(inner.Name)
	case *ast.EnumTypeDefinition:
		name = "string"
	}
	return name + strings.Repeat("[]", ast.ListDepth(t))
}

// IsLeaf reports whether f holds scalar or enum values.
func IsLeaf(f *ast.FieldDefinition) bool {
	switch ast.Unwrap(f.Type).(type) {
	case *ast.ScalarTypeDefinition, *ast.EnumTypeDefinition:
		return true
	}
	return false
}

// Units maps a unit enum value (KILOMETER_PER_HOUR) to its symbol (km/h).
type Units map[string]string

type unitEntry struct {
	Unit string `yaml:"unit"`
}

// LoadUnits reads a units file: a mapping from symbol to an entry whose unit
// key holds the spelled out name. The lookup key is that name in
// SCREAMING_SNAKE_CASE.
func LoadUnits(path string) (Units, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseUnits(data)
}

// ParseUnits is LoadUnits on file contents.
func ParseUnits(data []byte) (Units, error) {
	var entries map[string]unitEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse units: %w", err)
	}
	units := make(Units, len(entries))
	for symbol, e := range entries {
		units[screamingSnake(e.Unit)] = symbol
	}
	return units, nil
}

func screamingSnake(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !(r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return strings.Join(words, "_")
}
