package inspect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/internal/schema"
)

// DefaultThreshold is the lowest rating Similar reports.
const DefaultThreshold = 0.4

type Similarity struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// Rating is one minus the Levenshtein distance of a and b relative to the
// longer of the two.
func Rating(a, b string) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(n)
}

// Similar rates the name of every user type against the other types of the
// same kind and keeps ratings of at least threshold, best first. A non-empty
// keyword restricts the report to that type.
func Similar(s *ast.Schema, keyword string, threshold float64) (map[string][]Similarity, error) {
	byKind := make(map[string][]string)
	var names []string
	for _, t := range s.SortedTypes() {
		if !candidate(s, t) {
			continue
		}
		byKind[t.Kind()] = append(byKind[t.Kind()], t.TypeName())
		names = append(names, t.TypeName())
	}

	if keyword != "" {
		t, ok := s.Types[keyword]
		if !ok || !candidate(s, t) {
			return nil, fmt.Errorf("Type '%s' doesn't exist", keyword)
		}
		names = []string{keyword}
	}

	out := make(map[string][]Similarity, len(names))
	for _, name := range names {
		var found []Similarity
		for _, other := range byKind[s.Types[name].Kind()] {
			if other == name {
				continue
			}
			if r := Rating(name, other); r >= threshold {
				found = append(found, Similarity{Name: other, Rating: r})
			}
		}
		sort.SliceStable(found, func(i, j int) bool {
			if found[i].Rating != found[j].Rating {
				return found[i].Rating > found[j].Rating
			}
			return found[i].Name < found[j].Name
		})
		if found != nil || keyword != "" {
			out[name] = found
		}
	}
	return out, nil
}

func candidate(s *ast.Schema, t ast.NamedType) bool {
	name := t.TypeName()
	if schema.IsReservedName(name) || schema.IsRootName(s, name) || schema.IsSynthesizedQuery(t) {
		return false
	}
	_, scalar := t.(*ast.ScalarTypeDefinition)
	return !scalar || !ast.IsBuiltinScalar(name)
}

// FormatSimilar renders the report of Similar one type per block.
func FormatSimilar(report map[string][]Similarity) string {
	names := make([]string, 0, len(report))
	for name := range report {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s\n", name)
		if len(report[name]) == 0 {
			b.WriteString("  no similar types\n")
		}
		for _, sim := range report[name] {
			fmt.Fprintf(&b, "  %s %.1f%%\n", sim.Name, sim.Rating*100)
		}
	}
	return b.String()
}
