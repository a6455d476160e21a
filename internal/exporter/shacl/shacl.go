// Package shacl translates the object types of a schema into SHACL node
// shapes.
package shacl

import (
	"log/slog"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/config"
	"github.com/covesa/s2dm/internal/field"
	"github.com/covesa/s2dm/internal/instancetag"
	"github.com/covesa/s2dm/internal/naming"
	"github.com/covesa/s2dm/internal/rdf"
	"github.com/covesa/s2dm/internal/schema"
	"github.com/covesa/s2dm/log"
)

const sh = rdf.Namespace(rdf.SH)

var (
	nodeShape     = sh.Term("NodeShape")
	shName        = sh.Term("name")
	shDescription = sh.Term("description")
	targetClass   = sh.Term("targetClass")
	property      = sh.Term("property")
	path          = sh.Term("path")
	nodeKind      = sh.Term("nodeKind")
	datatype      = sh.Term("datatype")
	shIn          = sh.Term("in")
	shNode        = sh.Term("node")
	shClass       = sh.Term("class")
	minCount      = sh.Term("minCount")
	maxCount      = sh.Term("maxCount")
	minInclusive  = sh.Term("minInclusive")
	maxInclusive  = sh.Term("maxInclusive")
	rdfsComment   = rdf.IRI(rdf.RDFS + "comment")
)

var supported = map[field.Case]bool{
	field.Default:    true,
	field.NonNull:    true,
	field.Set:        true,
	field.SetNonNull: true,
}

// xsdTypes maps scalars to XSD datatypes. Other scalars are xsd:string.
var xsdTypes = map[string]string{
	"Int":     "integer",
	"Float":   "float",
	"String":  "string",
	"Boolean": "boolean",
	"ID":      "string",
	"Int8":    "byte",
	"UInt8":   "unsignedByte",
	"Int16":   "short",
	"UInt16":  "unsignedShort",
	"UInt32":  "unsignedInt",
	"Int64":   "long",
	"UInt64":  "unsignedLong",
}

// Options name the shapes and model namespaces. Naming only drives the
// spelling of expanded instances; apply it to the schema beforehand.
type Options struct {
	ShapesNamespace string
	ShapesPrefix    string
	ModelNamespace  string
	ModelPrefix     string
	Naming          config.Naming
	Logger          *slog.Logger
}

type translator struct {
	g      *rdf.Graph
	shapes rdf.Namespace
	model  rdf.Namespace
	expand func(string) string
	logger *slog.Logger
}

// Translate builds a node shape for every object of s except the root
// operation types and instance tag objects.
func Translate(s *ast.Schema, opts Options) *rdf.Graph {
	t := &translator{
		g:      rdf.NewGraph(),
		shapes: rdf.Namespace(opts.ShapesNamespace),
		model:  rdf.Namespace(opts.ModelNamespace),
		expand: naming.InstanceTag(opts.Naming),
		logger: opts.Logger,
	}
	if t.logger == nil {
		t.logger = log.Discard()
	}
	t.g.Bind("sh", rdf.SH)
	t.g.Bind(opts.ShapesPrefix, opts.ShapesNamespace)
	t.g.Bind(opts.ModelPrefix, opts.ModelNamespace)

	for _, nt := range s.SortedTypes() {
		obj, ok := nt.(*ast.ObjectTypeDefinition)
		if !ok || schema.IsReservedName(obj.Name) || schema.IsRootName(s, obj.Name) {
			continue
		}
		if instancetag.IsTag(obj) {
			t.logger.Debug("skipping instance tag object", "type", obj.Name)
			continue
		}
		t.object(obj)
	}
	return t.g
}

// Export renders the shapes of s in format (ttl or nt).
func Export(s *ast.Schema, opts Options, format string) (string, error) {
	return Translate(s, opts).Serialize(format)
}

func (t *translator) object(obj *ast.ObjectTypeDefinition) {
	t.logger.Info("processing object type", "type", obj.Name)
	shape := t.shapes.Term(obj.Name)
	t.g.Add(shape, rdf.Type, nodeShape)
	t.g.Add(shape, shName, rdf.String(obj.Name))
	t.g.Add(shape, targetClass, t.model.Term(obj.Name))
	if obj.Desc != "" {
		t.g.Add(shape, shDescription, rdf.String(obj.Desc))
	}
	for _, f := range obj.Fields {
		t.field(shape, f)
	}
}

func (t *translator) field(shape rdf.IRI, f *ast.FieldDefinition) {
	c := field.ExtendedCaseOf(f)
	if !supported[c] {
		t.logger.Warn("field case is not supported by the SHACL exporter, skipping field",
			"field", f.Name, "case", c.String())
		return
	}
	if f.Name == instancetag.Field {
		return
	}
	card := field.CardinalityOf(f)

	switch target := ast.Unwrap(f.Type).(type) {
	case *ast.ScalarTypeDefinition:
		dt := rdf.IRI(rdf.XSD + "string")
		if x, ok := xsdTypes[target.Name]; ok {
			dt = rdf.IRI(rdf.XSD + x)
		}
		t.literal(shape, f, card, dt, nil)

	case *ast.EnumTypeDefinition:
		values := make(rdf.List, 0, len(target.EnumValuesDefinition))
		for _, v := range target.Values() {
			values = append(values, rdf.String(v))
		}
		t.literal(shape, f, card, rdf.IRI(rdf.XSD+"string"), values)

	case *ast.ObjectTypeDefinition:
		if c == field.Set || c == field.SetNonNull {
			if tag := instancetag.TagOf(target); tag != nil {
				for _, instance := range instancetag.Expand(tag, t.expand) {
					t.iri(shape, f, target.Name+"."+instance, target.Name, card)
				}
				return
			}
		}
		t.iri(shape, f, f.Name, target.Name, card)

	default:
		t.logger.Warn("unsupported field type, skipping field", "field", f.Name, "type", f.Type.String())
	}
}

func (t *translator) literal(shape rdf.IRI, f *ast.FieldDefinition, card field.Cardinality, dt rdf.IRI, in rdf.List) {
	p := t.g.NewBlank()
	t.g.Add(shape, property, p)
	t.g.Add(p, shName, rdf.String(f.Name))
	t.g.Add(p, path, t.model.Term(f.Name))
	t.g.Add(p, nodeKind, sh.Term("Literal"))
	t.g.Add(p, datatype, dt)
	t.cardinality(p, card)
	if in != nil {
		t.g.Add(p, shIn, in)
	}
	min, max := field.Range(f)
	if min != nil {
		t.g.Add(p, minInclusive, rdf.Typed(min.Text, dt))
	}
	if max != nil {
		t.g.Add(p, maxInclusive, rdf.Typed(max.Text, dt))
	}
	t.annotate(p, f)
}

func (t *translator) iri(shape rdf.IRI, f *ast.FieldDefinition, name, target string, card field.Cardinality) {
	p := t.g.NewBlank()
	t.g.Add(shape, property, p)
	t.g.Add(p, shName, rdf.String(name))
	t.g.Add(p, path, t.model.Term("has"+target))
	t.g.Add(p, nodeKind, sh.Term("IRI"))
	t.g.Add(p, shNode, t.shapes.Term(target))
	t.g.Add(p, shClass, t.model.Term(target))
	t.cardinality(p, card)
	t.annotate(p, f)
}

func (t *translator) cardinality(p rdf.Blank, c field.Cardinality) {
	if c.Min > 0 {
		t.g.Add(p, minCount, rdf.Integer(c.Min))
	}
	if c.Max > 0 {
		t.g.Add(p, maxCount, rdf.Integer(c.Max))
	}
}

func (t *translator) annotate(p rdf.Blank, f *ast.FieldDefinition) {
	if f.Desc != "" {
		t.g.Add(p, shDescription, rdf.String(f.Desc))
	}
	if comment := field.MetadataOf(f.Directives).Comment; comment != "" {
		t.g.Add(p, rdfsComment, rdf.String(comment))
	}
}
