// Package constraint checks that the S2DM directives are used as intended.
package constraint

import (
	"fmt"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/field"
	"github.com/covesa/s2dm/internal/instancetag"
	"github.com/covesa/s2dm/internal/schema"
)

const noDuplicatesDirective = "noDuplicates"

type checker struct {
	schema *ast.Schema
	errs   []*errors.QueryError
}

func (c *checker) addErr(loc errors.Location, rule string, format string, a ...interface{}) {
	qe := &errors.QueryError{
		Message: fmt.Sprintf(format, a...),
		Rule:    rule,
	}
	if !loc.IsZero() {
		qe.Locations = []errors.Location{loc}
	}
	c.errs = append(c.errs, qe)
}

// Check runs every rule over the objects and interfaces of s, in source
// order. An empty result means every constraint holds.
func Check(s *ast.Schema) []*errors.QueryError {
	c := &checker{schema: s}
	for _, t := range s.SortedTypes() {
		if schema.IsReservedName(t.TypeName()) {
			continue
		}
		var fields ast.FieldsDefinition
		switch t := t.(type) {
		case *ast.ObjectTypeDefinition:
			fields = t.Fields
			if instancetag.IsTag(t) {
				c.validateTag(t)
			}
		case *ast.InterfaceTypeDefinition:
			fields = t.Fields
		default:
			continue
		}
		for _, f := range fields {
			c.validateField(t.TypeName(), f)
		}
	}
	return c.errs
}

func (c *checker) validateField(typeName string, f *ast.FieldDefinition) {
	path := typeName + "." + f.Name

	if min, max := field.Range(f); min != nil && max != nil && min.Value > max.Value {
		c.addErr(f.Loc, "RangeBounds", "%s: @range min %s is greater than max %s", path, min.Text, max.Text)
	}

	if args := field.Arguments(f.Directives, field.CardinalityDirective); args != nil {
		min, hasMin := args["min"].(int64)
		max, hasMax := args["max"].(int64)
		switch {
		case hasMin && min < 0:
			c.addErr(f.Loc, "CardinalityBounds", "%s: @cardinality min %d is negative", path, min)
		case hasMax && max < 0:
			c.addErr(f.Loc, "CardinalityBounds", "%s: @cardinality max %d is negative", path, max)
		case hasMin && hasMax && min > max:
			c.addErr(f.Loc, "CardinalityBounds", "%s: @cardinality min %d is greater than max %d", path, min, max)
		}
	}

	if f.Directives.Has(noDuplicatesDirective) && !field.CaseOf(f.Type).IsList() {
		c.addErr(f.Loc, "NoDuplicatesOnList", "%s: @noDuplicates applies to list fields, found %s", path, f.Type)
	}

	target, _ := ast.Unwrap(f.Type).(ast.NamedType)
	isTag := target != nil && instancetag.IsTag(target)
	switch {
	case f.Name == instancetag.Field && !isTag:
		c.addErr(f.Loc, "InstanceTagField", "%s: field 'instanceTag' must reference an object marked @instanceTag, found %s", path, f.Type)
	case f.Name != instancetag.Field && isTag:
		c.addErr(f.Loc, "InstanceTagReference", "%s: @instanceTag object '%s' may only be referenced by a field named 'instanceTag'", path, target.TypeName())
	}
}

func (c *checker) validateTag(tag *ast.ObjectTypeDefinition) {
	for _, f := range tag.Fields {
		if _, ok := ast.Unwrap(f.Type).(*ast.EnumTypeDefinition); !ok {
			c.addErr(f.Loc, "InstanceTagEnumFields", "%s.%s: fields of @instanceTag object '%s' must be enums, found %s", tag.Name, f.Name, tag.Name, f.Type)
		}
	}
}
