package schema

import "github.com/covesa/s2dm/ast"

// Meta holds the built-in scalars and directives every schema starts from.
var Meta *ast.Schema

func init() {
	Meta = &ast.Schema{
		SchemaDefinition: ast.SchemaDefinition{
			RootOperationTypes: make(map[string]ast.NamedType),
			EntryPointNames:    make(map[string]string),
		},
		Types:      make(map[string]ast.NamedType),
		Directives: make(map[string]*ast.DirectiveDefinition),
	}
	if err := parse(Meta, metaSrc, false); err != nil {
		panic(err)
	}
}

// IsBuiltinDirective reports whether name is declared by every schema.
func IsBuiltinDirective(name string) bool {
	_, ok := Meta.Directives[name]
	return ok
}

var metaSrc = `
	"The ` + "`Int`" + ` scalar type represents non-fractional signed whole numeric values. Int can represent values between -(2^31) and 2^31 - 1."
	scalar Int

	"The ` + "`Float`" + ` scalar type represents signed double-precision fractional values as specified by [IEEE 754](http://en.wikipedia.org/wiki/IEEE_floating_point)."
	scalar Float

	"The ` + "`String`" + ` scalar type represents textual data, represented as UTF-8 character sequences."
	scalar String

	"The ` + "`Boolean`" + ` scalar type represents ` + "`true` or `false`" + `."
	scalar Boolean

	"The ` + "`ID`" + ` scalar type represents a unique identifier, often used to refetch an object or as key for a cache."
	scalar ID

	"Directs the executor to include this field or fragment only when the ` + "`if`" + ` argument is true."
	directive @include(
		"Included when true."
		if: Boolean!
	) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT

	"Directs the executor to skip this field or fragment when the ` + "`if`" + ` argument is true."
	directive @skip(
		"Skipped when true."
		if: Boolean!
	) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT

	"Marks an element of a GraphQL schema as no longer supported."
	directive @deprecated(
		"""
		Explains why this element was deprecated, usually also including a
		suggestion for how to access supported similar data. Formatted in
		[Markdown](https://daringfireball.net/projects/markdown/).
		"""
		reason: String = "No longer supported"
	) on FIELD_DEFINITION | ARGUMENT_DEFINITION | INPUT_FIELD_DEFINITION | ENUM_VALUE

	"Provides a scalar specification URL for specifying the behavior of custom scalar types."
	directive @specifiedBy(
		"The URL that specifies the behavior of this scalar."
		url: String!
	) on SCALAR

	"Exactly one field of the input object must be provided and non-null."
	directive @oneOf on INPUT_OBJECT
`
