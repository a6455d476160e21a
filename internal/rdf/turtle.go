package rdf

import (
	"sort"
	"strings"
)

// Turtle renders the graph with prefixed names. Subjects are sorted, rdf:type
// is written first as "a" and the other predicates follow sorted. A blank node
// used as the object of exactly one triple is written inline as [ ... ].
func (g *Graph) Turtle() string {
	w := &turtleWriter{g: g, bySubject: make(map[string][]Triple), refs: make(map[Blank]int)}
	var subjects []Term
	for _, t := range g.triples {
		key := t.Subject.nt()
		if _, ok := w.bySubject[key]; !ok {
			subjects = append(subjects, t.Subject)
		}
		w.bySubject[key] = append(w.bySubject[key], t)
		w.countRefs(t.Object)
	}

	var b strings.Builder
	prefixes := make([]string, 0, len(g.prefixes))
	for p := range g.prefixes {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	for _, p := range prefixes {
		b.WriteString("@prefix " + p + ": <" + g.prefixes[p] + "> .\n")
	}

	var blocks []string
	for _, s := range subjects {
		if blank, ok := s.(Blank); ok && w.refs[blank] == 1 {
			continue
		}
		blocks = append(blocks, w.term(s)+" "+w.predicateObjects(s, "    ")+" .")
	}
	sort.Strings(blocks)
	for _, block := range blocks {
		b.WriteString("\n" + block + "\n")
	}
	return b.String()
}

type turtleWriter struct {
	g         *Graph
	bySubject map[string][]Triple
	refs      map[Blank]int
}

func (w *turtleWriter) countRefs(o Term) {
	switch o := o.(type) {
	case Blank:
		w.refs[o]++
	case List:
		for _, item := range o {
			w.countRefs(item)
		}
	}
}

func (w *turtleWriter) predicateObjects(s Term, indent string) string {
	objects := make(map[IRI][]string)
	var predicates []IRI
	for _, t := range w.bySubject[s.nt()] {
		if _, ok := objects[t.Predicate]; !ok {
			predicates = append(predicates, t.Predicate)
		}
		objects[t.Predicate] = append(objects[t.Predicate], w.object(t.Object, indent))
	}
	sort.Slice(predicates, func(i, j int) bool {
		if (predicates[i] == Type) != (predicates[j] == Type) {
			return predicates[i] == Type
		}
		return w.term(predicates[i]) < w.term(predicates[j])
	})

	parts := make([]string, len(predicates))
	for i, p := range predicates {
		objs := objects[p]
		sort.Strings(objs)
		name := w.term(p)
		if p == Type {
			name = "a"
		}
		parts[i] = name + " " + strings.Join(objs, ",\n"+indent+"    ")
	}
	return strings.Join(parts, " ;\n"+indent)
}

func (w *turtleWriter) object(o Term, indent string) string {
	switch o := o.(type) {
	case Blank:
		if w.refs[o] == 1 {
			if _, ok := w.bySubject[o.nt()]; ok {
				return "[ " + w.predicateObjects(o, indent+"    ") + " ]"
			}
			return "[]"
		}
	case List:
		items := make([]string, len(o))
		for i, item := range o {
			items[i] = w.object(item, indent)
		}
		return "( " + strings.Join(items, " ") + " )"
	}
	return w.term(o)
}

func (w *turtleWriter) term(t Term) string {
	switch t := t.(type) {
	case IRI:
		return w.g.compact(t)
	case Literal:
		return w.literal(t)
	}
	return t.nt()
}

func (w *turtleWriter) literal(l Literal) string {
	switch {
	case l.Lang != "":
		return `"` + escape(l.Lexical) + `"@` + l.Lang
	case l.Datatype == "" || l.Datatype == XSD+"string":
		return `"` + escape(l.Lexical) + `"`
	case l.Datatype == XSD+"integer" && isInteger(l.Lexical):
		return l.Lexical
	case l.Datatype == XSD+"boolean" && (l.Lexical == "true" || l.Lexical == "false"):
		return l.Lexical
	}
	return `"` + escape(l.Lexical) + `"^^` + w.g.compact(l.Datatype)
}

func isInteger(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// compact writes i as prefix:local when a bound namespace prefixes it and the
// rest is a valid local name, otherwise as <i>.
func (g *Graph) compact(i IRI) string {
	best := ""
	for p, ns := range g.prefixes {
		local, ok := strings.CutPrefix(string(i), ns)
		if !ok || !validLocal(local) {
			continue
		}
		if best == "" || len(ns) > len(g.prefixes[best]) || (len(ns) == len(g.prefixes[best]) && p < best) {
			best = p
		}
	}
	if best == "" {
		return "<" + string(i) + ">"
	}
	return best + ":" + strings.TrimPrefix(string(i), g.prefixes[best])
}

func validLocal(s string) bool {
	if s == "" {
		return true
	}
	if s[0] == '-' || s[0] == '.' || s[len(s)-1] == '.' {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}
