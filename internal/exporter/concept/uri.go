package concept

import (
	"github.com/covesa/s2dm/internal/rdf"
)

// Concept node types of the URI document.
const (
	ObjectConcept = "ObjectConcept"
	FieldConcept  = "FieldConcept"
	EnumConcept   = "EnumConcept"
)

// Node is one concept of the URI document.
type Node struct {
	ID              string   `json:"@id"`
	Type            string   `json:"@type"`
	HasField        []string `json:"hasField,omitempty"`
	HasNestedObject []string `json:"hasNestedObject,omitempty"`

	// Name is the concept name without the prefix.
	Name string `json:"-"`
}

// URIModel is the JSON-LD concept URI document.
type URIModel struct {
	Context map[string]interface{} `json:"@context"`
	Graph   []Node                 `json:"@graph"`
}

// NewURIModel builds the document for c with concept ids prefix:Name in
// namespace.
func NewURIModel(c *Concepts, namespace, prefix string) *URIModel {
	m := &URIModel{
		Context: map[string]interface{}{
			prefix: namespace,
			"skos": rdf.SKOS,
			"xsd":  rdf.XSD,
			"hasField": map[string]string{
				"@id":   prefix + ":hasField",
				"@type": "@id",
			},
			"hasNestedObject": map[string]string{
				"@id":   prefix + ":hasNestedObject",
				"@type": "@id",
			},
		},
	}
	uri := func(name string) string { return prefix + ":" + name }

	for _, o := range c.Objects {
		n := Node{ID: uri(o.Name), Type: ObjectConcept, Name: o.Name}
		for _, f := range c.FieldsOf(o.Name) {
			n.HasField = append(n.HasField, uri(f.Name()))
		}
		for _, nested := range c.Nested {
			if nested.Object == o.Name {
				n.HasNestedObject = append(n.HasNestedObject, uri(nested.Target))
			}
		}
		m.Graph = append(m.Graph, n)
	}
	for _, f := range c.Fields {
		m.Graph = append(m.Graph, Node{ID: uri(f.Name()), Type: FieldConcept, Name: f.Name()})
	}
	for _, e := range c.Enums {
		m.Graph = append(m.Graph, Node{ID: uri(e.Name), Type: EnumConcept, Name: e.Name})
	}
	return m
}

// Get returns the node of the concept named name.
func (m *URIModel) Get(name string) (Node, bool) {
	for _, n := range m.Graph {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}
