// Package rdf is a small in-memory RDF graph with Turtle and N-Triples
// serializers, enough for the SKOS and SHACL exporters.
package rdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Common namespaces.
const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"
	SKOS = "http://www.w3.org/2004/02/skos/core#"
	SH   = "http://www.w3.org/ns/shacl#"
)

// Type is rdf:type.
const Type = IRI(RDF + "type")

// Term is a node of the graph: an IRI, a literal, a blank node or a list.
type Term interface {
	nt() string
}

// IRI is an absolute IRI.
type IRI string

// Blank is a blank node label.
type Blank string

// Literal is a string with an optional language tag or datatype.
type Literal struct {
	Lexical  string
	Lang     string
	Datatype IRI
}

// List is an RDF collection. It is only valid as an object.
type List []Term

func (i IRI) nt() string   { return "<" + string(i) + ">" }
func (b Blank) nt() string { return "_:" + string(b) }
func (l Literal) nt() string {
	s := `"` + escape(l.Lexical) + `"`
	switch {
	case l.Lang != "":
		s += "@" + l.Lang
	case l.Datatype != "":
		s += "^^" + l.Datatype.nt()
	}
	return s
}
func (l List) nt() string {
	parts := make([]string, len(l))
	for i, t := range l {
		parts[i] = t.nt()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// String is a plain string literal.
func String(s string) Literal { return Literal{Lexical: s} }

// LangString is a language tagged literal.
func LangString(s, lang string) Literal { return Literal{Lexical: s, Lang: lang} }

// Integer is an xsd:integer literal.
func Integer(n int) Literal {
	return Literal{Lexical: strconv.Itoa(n), Datatype: XSD + "integer"}
}

// Typed is a literal of datatype dt.
func Typed(lexical string, dt IRI) Literal { return Literal{Lexical: lexical, Datatype: dt} }

// Namespace builds IRIs under a base.
type Namespace string

// Term returns the IRI of local in ns.
func (ns Namespace) Term(local string) IRI { return IRI(string(ns) + local) }

// Triple is one statement.
type Triple struct {
	Subject   Term
	Predicate IRI
	Object    Term
}

// Graph is a set of triples with prefix bindings. The zero value is not
// usable; call NewGraph.
type Graph struct {
	prefixes map[string]string
	triples  []Triple
	seen     map[string]bool
	blanks   int
}

func NewGraph() *Graph {
	return &Graph{
		prefixes: map[string]string{"rdf": RDF, "rdfs": RDFS, "xsd": XSD},
		seen:     make(map[string]bool),
	}
}

// Bind maps prefix to namespace for serialization.
func (g *Graph) Bind(prefix string, ns string) {
	g.prefixes[prefix] = ns
}

// NewBlank returns a fresh blank node.
func (g *Graph) NewBlank() Blank {
	g.blanks++
	return Blank("b" + strconv.Itoa(g.blanks))
}

// Add inserts a triple; duplicates are ignored.
func (g *Graph) Add(s Term, p IRI, o Term) {
	t := Triple{s, p, o}
	key := t.Subject.nt() + " " + t.Predicate.nt() + " " + t.Object.nt()
	if g.seen[key] {
		return
	}
	g.seen[key] = true
	g.triples = append(g.triples, t)
}

// Len is the number of triples.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns the triples in insertion order.
func (g *Graph) Triples() []Triple {
	return append([]Triple(nil), g.triples...)
}

// Has reports whether the triple is in the graph.
func (g *Graph) Has(s Term, p IRI, o Term) bool {
	return g.seen[s.nt()+" "+p.nt()+" "+o.nt()]
}

// Objects returns the objects of s p in insertion order.
func (g *Graph) Objects(s Term, p IRI) []Term {
	var out []Term
	for _, t := range g.triples {
		if t.Predicate == p && t.Subject.nt() == s.nt() {
			out = append(out, t.Object)
		}
	}
	return out
}

// Subjects returns the subjects of p o in insertion order.
func (g *Graph) Subjects(p IRI, o Term) []Term {
	var out []Term
	for _, t := range g.triples {
		if t.Predicate == p && t.Object.nt() == o.nt() {
			out = append(out, t.Subject)
		}
	}
	return out
}

// Serialize renders the graph in format: "ttl"/"turtle" or "nt"/"ntriples".
func (g *Graph) Serialize(format string) (string, error) {
	switch strings.ToLower(format) {
	case "ttl", "turtle":
		return g.Turtle(), nil
	case "nt", "ntriples":
		return g.NTriples(), nil
	}
	return "", fmt.Errorf("unsupported serialization format %q", format)
}

// NTriples renders one statement per line, sorted. Lists are expanded to
// rdf:first/rdf:rest chains.
func (g *Graph) NTriples() string {
	var lines []string
	lists := 0
	var emit func(s Term, p IRI, o Term)
	emit = func(s Term, p IRI, o Term) {
		l, ok := o.(List)
		if !ok {
			lines = append(lines, s.nt()+" "+p.nt()+" "+o.nt()+" .")
			return
		}
		var head Term = IRI(RDF + "nil")
		if len(l) > 0 {
			lists++
			head = Blank("l" + strconv.Itoa(lists))
		}
		lines = append(lines, s.nt()+" "+p.nt()+" "+head.nt()+" .")
		node := head
		for i, item := range l {
			emit(node, RDF+"first", item)
			var rest Term = IRI(RDF + "nil")
			if i < len(l)-1 {
				lists++
				rest = Blank("l" + strconv.Itoa(lists))
			}
			lines = append(lines, node.nt()+" "+IRI(RDF+"rest").nt()+" "+rest.nt()+" .")
			node = rest
		}
	}
	for _, t := range g.triples {
		emit(t.Subject, t.Predicate, t.Object)
	}
	sort.Strings(lines)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return r.Replace(s)
}
