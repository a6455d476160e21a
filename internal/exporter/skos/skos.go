// Package skos generates a SKOS skeleton for the concepts of a schema:
// objects, leaf fields and enum values become skos:Concept resources grouped
// into collections.
package skos

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/internal/exporter/concept"
	"github.com/covesa/s2dm/internal/rdf"
	"github.com/covesa/s2dm/log"
)

// S2DM is the namespace of the s2dm ontology.
const S2DM = rdf.Namespace("https://covesa.global/models/s2dm#")

// Concept types of the s2dm ontology.
const (
	ObjectType = "ObjectType"
	Field      = "Field"
	EnumValue  = "EnumValue"
)

const (
	ObjectConcepts = "ObjectConcepts"
	FieldConcepts  = "FieldConcepts"
)

var (
	skosConcept    = rdf.IRI(rdf.SKOS + "Concept")
	skosCollection = rdf.IRI(rdf.SKOS + "Collection")
	prefLabel      = rdf.IRI(rdf.SKOS + "prefLabel")
	definition     = rdf.IRI(rdf.SKOS + "definition")
	note           = rdf.IRI(rdf.SKOS + "note")
	member         = rdf.IRI(rdf.SKOS + "member")
)

// Options name the concept namespace and the label language.
type Options struct {
	Namespace string
	Prefix    string
	Language  string
	Logger    *slog.Logger
}

// ValidateLanguage checks that tag is a well-formed BCP 47 language tag.
func ValidateLanguage(tag string) error {
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("invalid language tag %q: %w", tag, err)
	}
	return nil
}

type builder struct {
	g    *rdf.Graph
	ns   rdf.Namespace
	lang string
}

// Graph builds the SKOS graph of s.
func Graph(s *ast.Schema, opts Options) (*rdf.Graph, error) {
	if err := ValidateLanguage(opts.Language); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	b := &builder{g: rdf.NewGraph(), ns: rdf.Namespace(opts.Namespace), lang: opts.Language}
	b.g.Bind("skos", rdf.SKOS)
	b.g.Bind("s2dm", string(S2DM))
	b.g.Bind(opts.Prefix, opts.Namespace)

	objects := b.collection(ObjectConcepts, "Object Concepts")
	fields := b.collection(FieldConcepts, "Field Concepts")

	c := concept.Collect(s)
	for _, o := range c.Objects {
		b.g.Add(objects, member, b.concept(o.Name, ObjectType, o.Desc))
	}
	for _, f := range c.Fields {
		b.g.Add(fields, member, b.concept(f.Name(), Field, f.Definition.Desc))
	}
	for _, e := range c.Enums {
		enum := b.collection(e.Name, e.Name)
		if strings.TrimSpace(e.Desc) != "" {
			b.g.Add(enum, definition, rdf.String(e.Desc))
		}
		for _, v := range e.EnumValuesDefinition {
			ref := b.concept(e.Name+"."+v.EnumValue, EnumValue, v.Desc)
			b.g.Add(enum, member, ref)
			b.g.Add(fields, member, ref)
		}
	}
	logger.Info("generated SKOS skeleton", "objects", len(c.Objects), "fields", len(c.Fields), "enums", len(c.Enums))
	return b.g, nil
}

func (b *builder) collection(name, label string) rdf.IRI {
	ref := b.ns.Term(name)
	b.g.Add(ref, rdf.Type, skosCollection)
	b.g.Add(ref, prefLabel, rdf.LangString(label, b.lang))
	return ref
}

func (b *builder) concept(name, kind, desc string) rdf.IRI {
	ref := b.ns.Term(name)
	b.g.Add(ref, rdf.Type, skosConcept)
	b.g.Add(ref, rdf.Type, S2DM.Term(kind))
	b.g.Add(ref, prefLabel, rdf.LangString(name, b.lang))
	if strings.TrimSpace(desc) != "" {
		b.g.Add(ref, definition, rdf.String(desc))
		b.g.Add(ref, note, rdf.String(fmt.Sprintf(
			"Content of SKOS definition was inherited from the description of the GraphQL SDL element %s whose URI is %s.", name, name)))
	}
	return ref
}

// Validate lists the concepts of g that lack a skos:prefLabel.
func Validate(g *rdf.Graph) []string {
	var problems []string
	for _, c := range g.Subjects(rdf.Type, skosConcept) {
		if len(g.Objects(c, prefLabel)) == 0 {
			problems = append(problems, fmt.Sprintf("Concept %s missing required skos:prefLabel", term(c)))
		}
	}
	return problems
}

func term(t rdf.Term) string {
	if iri, ok := t.(rdf.IRI); ok {
		return string(iri)
	}
	return fmt.Sprint(t)
}

// Export renders the validated skeleton of s as Turtle.
func Export(s *ast.Schema, opts Options) (string, error) {
	g, err := Graph(s, opts)
	if err != nil {
		return "", err
	}
	if problems := Validate(g); len(problems) > 0 {
		return "", fmt.Errorf("generated SKOS has validation errors:\n%s", strings.Join(problems, "\n"))
	}
	return g.Turtle(), nil
}
