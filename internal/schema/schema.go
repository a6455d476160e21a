// Package schema builds an ast.Schema from SDL text.
package schema

import (
	"fmt"
	"log/slog"
	"strings"
	"text/scanner"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/common"
)

// Option configures Parse.
type Option func(*options)

type options struct {
	lenient bool
}

// Lenient keeps unknown type references as unresolved *ast.TypeName nodes
// instead of failing. Filtered schemas can legitimately point outside their
// own type set and are re-parsed this way.
func Lenient() Option {
	return func(o *options) { o.lenient = true }
}

// New returns a schema that only holds the built-in scalars and directives.
func New() *ast.Schema {
	s := &ast.Schema{
		SchemaDefinition: ast.SchemaDefinition{
			RootOperationTypes: make(map[string]ast.NamedType),
			EntryPointNames:    make(map[string]string),
		},
		Types:      make(map[string]ast.NamedType),
		Directives: make(map[string]*ast.DirectiveDefinition),
	}
	for n, t := range Meta.Types {
		if scalar, ok := t.(*ast.ScalarTypeDefinition); ok {
			cp := *scalar
			s.Types[n] = &cp
			continue
		}
		s.Types[n] = t
	}
	for n, d := range Meta.Directives {
		cp := *d
		s.Directives[n] = &cp
	}
	return s
}

// Parse parses sdl into a schema graph. Failures are returned as
// *errors.ParseError.
func Parse(sdl string, opts ...Option) (*ast.Schema, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	s := New()
	if qe := parse(s, sdl, o.lenient); qe != nil {
		return nil, &errors.ParseError{Err: qe}
	}
	return s, nil
}

func parse(s *ast.Schema, schemaString string, lenient bool) *errors.QueryError {
	l := common.NewLexer(schemaString)
	var err *errors.QueryError
	syntaxErr := l.CatchSyntaxError(func() { err = parseSchema(s, l) })
	if syntaxErr != nil {
		return syntaxErr
	}
	if err != nil {
		return err
	}
	s.SchemaString = schemaString

	if err := mergeExtensions(s); err != nil {
		return err
	}

	for _, t := range s.Types {
		if err := resolveNamedType(s, t, lenient); err != nil {
			return err
		}
	}
	for _, d := range s.Directives {
		for _, arg := range d.Arguments {
			t, err := common.ResolveType(arg.Type, s.Resolve, lenient)
			if err != nil {
				return err
			}
			arg.Type = t
		}
	}
	if s == Meta {
		return nil
	}

	if err := resolveRootOperations(s); err != nil {
		return err
	}
	if err := resolveDirectives(s, s.SchemaDefinition.Directives, "SCHEMA"); err != nil {
		return err
	}

	for _, obj := range s.Objects {
		obj.Interfaces = make([]*ast.InterfaceTypeDefinition, 0, len(obj.InterfaceNames))
		for _, intfName := range obj.InterfaceNames {
			intf, err := resolveInterface(s, intfName, obj.Loc, lenient)
			if err != nil {
				return err
			}
			if intf == nil {
				continue
			}
			obj.Interfaces = append(obj.Interfaces, intf)
			intf.PossibleTypes = append(intf.PossibleTypes, obj)
		}
	}

	for _, union := range s.Unions {
		union.UnionMemberTypes = make([]*ast.ObjectTypeDefinition, 0, len(union.TypeNames))
		for _, name := range union.TypeNames {
			t, ok := s.Types[name]
			if !ok {
				if lenient {
					continue
				}
				return &errors.QueryError{
					Message:   fmt.Sprintf("object type %q not found", name),
					Locations: []errors.Location{union.Loc},
				}
			}
			obj, ok := t.(*ast.ObjectTypeDefinition)
			if !ok {
				return &errors.QueryError{
					Message:   fmt.Sprintf("type %q is not an object", name),
					Locations: []errors.Location{union.Loc},
				}
			}
			union.UnionMemberTypes = append(union.UnionMemberTypes, obj)
		}
	}

	return nil
}

func resolveInterface(s *ast.Schema, name string, loc errors.Location, lenient bool) (*ast.InterfaceTypeDefinition, *errors.QueryError) {
	t, ok := s.Types[name]
	if !ok {
		if lenient {
			return nil, nil
		}
		return nil, &errors.QueryError{
			Message:   fmt.Sprintf("interface %q not found", name),
			Locations: []errors.Location{loc},
		}
	}
	intf, ok := t.(*ast.InterfaceTypeDefinition)
	if !ok {
		return nil, &errors.QueryError{
			Message:   fmt.Sprintf("type %q is not an interface", name),
			Locations: []errors.Location{loc},
		}
	}
	return intf, nil
}

func resolveRootOperations(s *ast.Schema) *errors.QueryError {
	if !s.Present {
		for op, name := range map[string]string{"query": "Query", "mutation": "Mutation", "subscription": "Subscription"} {
			if _, ok := s.Types[name]; ok {
				s.EntryPointNames[op] = name
			}
		}
	}

	for op, name := range s.EntryPointNames {
		t, ok := s.Types[name]
		if !ok {
			return &errors.QueryError{
				Message:   fmt.Sprintf("root operation %q type %q not found", op, name),
				Locations: []errors.Location{s.SchemaDefinition.Loc},
			}
		}
		if _, ok := t.(*ast.ObjectTypeDefinition); !ok {
			return &errors.QueryError{
				Message:   fmt.Sprintf("root operation %q type %q is not an object", op, name),
				Locations: []errors.Location{t.Location()},
			}
		}
		s.RootOperationTypes[op] = t
	}
	return nil
}

func mergeExtensions(s *ast.Schema) *errors.QueryError {
	for _, ext := range s.Extensions {
		if ext.Type == nil {
			s.SchemaDefinition.Directives = append(s.SchemaDefinition.Directives, ext.Directives...)
			continue
		}

		name := ext.Type.TypeName()
		t, ok := s.Types[name]
		if !ok {
			return &errors.QueryError{
				Message:   fmt.Sprintf("trying to extend unknown type %q", name),
				Locations: []errors.Location{ext.Loc},
			}
		}
		if ast.IsBuiltinScalar(name) {
			return &errors.QueryError{
				Message:   fmt.Sprintf("built-in type %q cannot be extended", name),
				Locations: []errors.Location{ext.Loc},
			}
		}
		if t.Kind() != ext.Type.Kind() {
			return &errors.QueryError{
				Message:   fmt.Sprintf("trying to extend %s %q with %s", t.Kind(), name, ext.Type.Kind()),
				Locations: []errors.Location{t.Location(), ext.Loc},
			}
		}

		switch t := t.(type) {
		case *ast.ObjectTypeDefinition:
			e := ext.Type.(*ast.ObjectTypeDefinition)
			t.InterfaceNames = append(t.InterfaceNames, e.InterfaceNames...)
			t.Fields = append(t.Fields, e.Fields...)
			t.Directives = append(t.Directives, e.Directives...)
		case *ast.InterfaceTypeDefinition:
			e := ext.Type.(*ast.InterfaceTypeDefinition)
			t.InterfaceNames = append(t.InterfaceNames, e.InterfaceNames...)
			t.Fields = append(t.Fields, e.Fields...)
			t.Directives = append(t.Directives, e.Directives...)
		case *ast.Union:
			e := ext.Type.(*ast.Union)
			t.TypeNames = append(t.TypeNames, e.TypeNames...)
			t.Directives = append(t.Directives, e.Directives...)
		case *ast.EnumTypeDefinition:
			e := ext.Type.(*ast.EnumTypeDefinition)
			t.EnumValuesDefinition = append(t.EnumValuesDefinition, e.EnumValuesDefinition...)
			t.Directives = append(t.Directives, e.Directives...)
		case *ast.InputObject:
			e := ext.Type.(*ast.InputObject)
			t.Values = append(t.Values, e.Values...)
			t.Directives = append(t.Directives, e.Directives...)
		case *ast.ScalarTypeDefinition:
			e := ext.Type.(*ast.ScalarTypeDefinition)
			t.Directives = append(t.Directives, e.Directives...)
		}
		ext.Directives = ast.DirectivesOf(ext.Type)
	}
	return nil
}

func resolveNamedType(s *ast.Schema, t ast.NamedType, lenient bool) *errors.QueryError {
	switch t := t.(type) {
	case *ast.ObjectTypeDefinition:
		if err := resolveFields(s, t.Name, t.Fields, lenient); err != nil {
			return err
		}
		return resolveDirectives(s, t.Directives, "OBJECT")
	case *ast.InterfaceTypeDefinition:
		if err := resolveFields(s, t.Name, t.Fields, lenient); err != nil {
			return err
		}
		return resolveDirectives(s, t.Directives, "INTERFACE")
	case *ast.InputObject:
		if err := resolveInputObject(s, t.Values, "INPUT_FIELD_DEFINITION", lenient); err != nil {
			return err
		}
		return resolveDirectives(s, t.Directives, "INPUT_OBJECT")
	case *ast.Union:
		return resolveDirectives(s, t.Directives, "UNION")
	case *ast.ScalarTypeDefinition:
		return resolveDirectives(s, t.Directives, "SCALAR")
	case *ast.EnumTypeDefinition:
		seen := make(map[string]*ast.EnumValueDefinition, len(t.EnumValuesDefinition))
		for _, value := range t.EnumValuesDefinition {
			if prev, ok := seen[value.EnumValue]; ok {
				return &errors.QueryError{
					Message:   fmt.Sprintf("enum value %q defined more than once in %q", value.EnumValue, t.Name),
					Locations: []errors.Location{prev.Loc, value.Loc},
				}
			}
			seen[value.EnumValue] = value
			if err := resolveDirectives(s, value.Directives, "ENUM_VALUE"); err != nil {
				return err
			}
		}
		return resolveDirectives(s, t.Directives, "ENUM")
	}
	return nil
}

func resolveFields(s *ast.Schema, typeName string, fields ast.FieldsDefinition, lenient bool) *errors.QueryError {
	seen := make(map[string]*ast.FieldDefinition, len(fields))
	for _, f := range fields {
		if prev, ok := seen[f.Name]; ok {
			return &errors.QueryError{
				Message:   fmt.Sprintf("field %q defined more than once in %q", f.Name, typeName),
				Locations: []errors.Location{prev.Loc, f.Loc},
			}
		}
		seen[f.Name] = f
		if err := resolveField(s, f, lenient); err != nil {
			return err
		}
	}
	return nil
}

func resolveField(s *ast.Schema, f *ast.FieldDefinition, lenient bool) *errors.QueryError {
	t, err := common.ResolveType(f.Type, s.Resolve, lenient)
	if err != nil {
		return err
	}
	f.Type = t
	if err := resolveDirectives(s, f.Directives, "FIELD_DEFINITION"); err != nil {
		return err
	}
	return resolveInputObject(s, f.Arguments, "ARGUMENT_DEFINITION", lenient)
}

// resolveDirectives checks each application against its declaration. Missing
// arguments are not filled in with their defaults, so applications print as
// they were written.
func resolveDirectives(s *ast.Schema, directives ast.DirectiveList, location string) *errors.QueryError {
	if s == Meta {
		return nil
	}
	seen := make(map[string]bool, len(directives))
	for _, d := range directives {
		dirName := d.Name.Name
		dd, ok := s.Directives[dirName]
		if !ok {
			return &errors.QueryError{
				Message:   fmt.Sprintf("directive %q not found", dirName),
				Locations: []errors.Location{d.Name.Loc},
				Rule:      "KnownDirectives",
			}
		}
		if !allowedOn(dd, location) {
			return &errors.QueryError{
				Message:   fmt.Sprintf("Directive %q may not be used on %s.", dirName, location),
				Locations: []errors.Location{d.Name.Loc},
				Rule:      "KnownDirectives",
			}
		}
		if seen[dirName] && !dd.Repeatable {
			return &errors.QueryError{
				Message:   fmt.Sprintf("The directive %q can only be used once at this location.", dirName),
				Locations: []errors.Location{d.Name.Loc},
				Rule:      "UniqueDirectivesPerLocation",
			}
		}
		seen[dirName] = true

		for _, arg := range d.Arguments {
			if dd.Arguments.Get(arg.Name.Name) == nil {
				return &errors.QueryError{
					Message:   fmt.Sprintf("invalid argument %q for directive %q", arg.Name.Name, dirName),
					Locations: []errors.Location{arg.Name.Loc},
					Rule:      "KnownArgumentNames",
				}
			}
		}
		for _, arg := range dd.Arguments {
			if _, ok := arg.Type.(*ast.NonNull); !ok || arg.Default != nil {
				continue
			}
			if _, ok := d.Arguments.Get(arg.Name.Name); !ok {
				return &errors.QueryError{
					Message:   fmt.Sprintf("Directive %q argument %q of type %s is required, but it was not provided.", dirName, arg.Name.Name, arg.Type),
					Locations: []errors.Location{d.Name.Loc},
					Rule:      "ProvidedRequiredArguments",
				}
			}
		}
	}
	return nil
}

func allowedOn(dd *ast.DirectiveDefinition, location string) bool {
	for _, loc := range dd.Locations {
		if loc == location {
			return true
		}
	}
	return false
}

func resolveInputObject(s *ast.Schema, values ast.ArgumentsDefinition, location string, lenient bool) *errors.QueryError {
	for _, v := range values {
		t, err := common.ResolveType(v.Type, s.Resolve, lenient)
		if err != nil {
			return err
		}
		v.Type = t
		if err := resolveDirectives(s, v.Directives, location); err != nil {
			return err
		}
	}
	return nil
}

func parseSchema(s *ast.Schema, l *common.Lexer) *errors.QueryError {
	l.ConsumeWhitespace()

	for l.Peek() != scanner.EOF {
		desc := l.DescComment()
		switch x := l.ConsumeIdent(); x {
		case "schema":
			if s.Present {
				return &errors.QueryError{
					Message:   "schema definition provided more than once",
					Locations: []errors.Location{s.SchemaDefinition.Loc, l.Location()},
				}
			}
			s.Present = true
			s.SchemaDefinition.Loc = l.Location()
			s.SchemaDefinition.Desc = desc
			s.SchemaDefinition.Directives = common.ParseDirectives(l)
			if err := parseRootOperations(s, l); err != nil {
				return err
			}

		case "type":
			obj := parseObjectDef(l)
			obj.Desc = desc
			if err := validateTypeName(s, obj); err != nil {
				return err
			}
			s.Types[obj.Name] = obj
			s.Objects = append(s.Objects, obj)

		case "interface":
			iface := parseInterfaceDef(l)
			iface.Desc = desc
			if err := validateTypeName(s, iface); err != nil {
				return err
			}
			s.Types[iface.Name] = iface

		case "union":
			union := parseUnionDef(l)
			union.Desc = desc
			if err := validateTypeName(s, union); err != nil {
				return err
			}
			s.Types[union.Name] = union
			s.Unions = append(s.Unions, union)

		case "enum":
			enum := parseEnumDef(l)
			enum.Desc = desc
			if err := validateTypeName(s, enum); err != nil {
				return err
			}
			s.Types[enum.Name] = enum
			s.Enums = append(s.Enums, enum)

		case "input":
			input := parseInputDef(l)
			input.Desc = desc
			if err := validateTypeName(s, input); err != nil {
				return err
			}
			s.Types[input.Name] = input

		case "scalar":
			scalar := parseScalarDef(l)
			scalar.Desc = desc
			if err := validateTypeName(s, scalar); err != nil {
				return err
			}
			s.Types[scalar.Name] = scalar

		case "directive":
			directive := parseDirectiveDef(l)
			directive.Desc = desc
			if err := validateDirectiveName(s, directive); err != nil {
				return err
			}
			s.Directives[directive.Name] = directive

		case "extend":
			parseExtension(s, l)

		default:
			l.SyntaxError(fmt.Sprintf(`unexpected %q, expecting "schema", "type", "enum", "interface", "union", "input", "scalar", "directive" or "extend"`, x))
		}
	}
	return nil
}

func parseRootOperations(s *ast.Schema, l *common.Lexer) *errors.QueryError {
	locs := make(map[string]errors.Location)
	l.ConsumeToken('{')
	for l.Peek() != '}' {
		ident := l.ConsumeIdentWithLoc()
		if err := validateEntryPointName(s, ident, locs); err != nil {
			return err
		}
		l.ConsumeToken(':')
		typ := l.ConsumeIdent()
		s.EntryPointNames[ident.Name] = typ
		locs[ident.Name] = ident.Loc
	}
	l.ConsumeToken('}')
	return nil
}

func parseExtension(s *ast.Schema, l *common.Lexer) {
	loc := l.Location()
	switch x := l.ConsumeIdent(); x {
	case "schema":
		ext := &ast.Extension{Loc: loc, Directives: common.ParseDirectives(l)}
		if l.Peek() == '{' {
			if err := parseRootOperations(s, l); err != nil {
				l.SyntaxError(err.Message)
			}
		}
		s.Extensions = append(s.Extensions, ext)

	case "type":
		obj := parseObjectDef(l)
		s.Extensions = append(s.Extensions, &ast.Extension{Type: obj, Loc: loc})

	case "interface":
		iface := parseInterfaceDef(l)
		s.Extensions = append(s.Extensions, &ast.Extension{Type: iface, Loc: loc})

	case "union":
		union := parseUnionDef(l)
		s.Extensions = append(s.Extensions, &ast.Extension{Type: union, Loc: loc})

	case "enum":
		enum := parseEnumDef(l)
		s.Extensions = append(s.Extensions, &ast.Extension{Type: enum, Loc: loc})

	case "input":
		input := parseInputDef(l)
		s.Extensions = append(s.Extensions, &ast.Extension{Type: input, Loc: loc})

	case "scalar":
		scalar := parseScalarDef(l)
		s.Extensions = append(s.Extensions, &ast.Extension{Type: scalar, Loc: loc})

	default:
		l.SyntaxError(fmt.Sprintf(`unexpected %q, expecting "schema", "type", "enum", "interface", "union", "input" or "scalar"`, x))
	}
}

func parseObjectDef(l *common.Lexer) *ast.ObjectTypeDefinition {
	object := &ast.ObjectTypeDefinition{Loc: l.Location(), Name: l.ConsumeIdent()}
	object.InterfaceNames = parseImplements(l)
	object.Directives = common.ParseDirectives(l)
	if l.Peek() == '{' {
		l.ConsumeToken('{')
		object.Fields = parseFieldsDef(l)
		l.ConsumeToken('}')
	}
	return object
}

func parseInterfaceDef(l *common.Lexer) *ast.InterfaceTypeDefinition {
	i := &ast.InterfaceTypeDefinition{Loc: l.Location(), Name: l.ConsumeIdent()}
	i.InterfaceNames = parseImplements(l)
	i.Directives = common.ParseDirectives(l)
	if l.Peek() == '{' {
		l.ConsumeToken('{')
		i.Fields = parseFieldsDef(l)
		l.ConsumeToken('}')
	}
	return i
}

// parseImplements reads `implements A & B`. A leading `&` is allowed.
func parseImplements(l *common.Lexer) []string {
	if l.Peek() != scanner.Ident || l.PeekIdent() != "implements" {
		return nil
	}
	l.ConsumeKeyword("implements")
	if l.Peek() == '&' {
		l.ConsumeToken('&')
	}

	var names []string
	for {
		names = append(names, l.ConsumeIdent())
		if l.Peek() != '&' {
			return names
		}
		l.ConsumeToken('&')
	}
}

func parseUnionDef(l *common.Lexer) *ast.Union {
	union := &ast.Union{Loc: l.Location(), Name: l.ConsumeIdent()}
	union.Directives = common.ParseDirectives(l)
	if l.Peek() != '=' {
		return union
	}
	l.ConsumeToken('=')
	if l.Peek() == '|' {
		l.ConsumeToken('|')
	}
	union.TypeNames = []string{l.ConsumeIdent()}
	for l.Peek() == '|' {
		l.ConsumeToken('|')
		union.TypeNames = append(union.TypeNames, l.ConsumeIdent())
	}
	return union
}

func parseInputDef(l *common.Lexer) *ast.InputObject {
	i := &ast.InputObject{}
	i.Loc = l.Location()
	i.Name = l.ConsumeIdent()
	i.Directives = common.ParseDirectives(l)
	if l.Peek() != '{' {
		return i
	}
	l.ConsumeToken('{')
	for l.Peek() != '}' {
		i.Values = append(i.Values, common.ParseInputValue(l))
	}
	l.ConsumeToken('}')
	return i
}

func parseEnumDef(l *common.Lexer) *ast.EnumTypeDefinition {
	enum := &ast.EnumTypeDefinition{Loc: l.Location(), Name: l.ConsumeIdent()}
	enum.Directives = common.ParseDirectives(l)
	if l.Peek() != '{' {
		return enum
	}
	l.ConsumeToken('{')
	for l.Peek() != '}' {
		v := &ast.EnumValueDefinition{
			Desc: l.DescComment(),
			Loc:  l.Location(),
		}
		v.EnumValue = l.ConsumeIdent()
		switch v.EnumValue {
		case "true", "false", "null":
			l.SyntaxError(fmt.Sprintf("enum value %q is reserved", v.EnumValue))
		}
		v.Directives = common.ParseDirectives(l)
		enum.EnumValuesDefinition = append(enum.EnumValuesDefinition, v)
	}
	l.ConsumeToken('}')
	return enum
}

func parseScalarDef(l *common.Lexer) *ast.ScalarTypeDefinition {
	scalar := &ast.ScalarTypeDefinition{Loc: l.Location(), Name: l.ConsumeIdent()}
	scalar.Directives = common.ParseDirectives(l)
	return scalar
}

func parseDirectiveDef(l *common.Lexer) *ast.DirectiveDefinition {
	l.ConsumeToken('@')
	d := &ast.DirectiveDefinition{Loc: l.Location(), Name: l.ConsumeIdent()}
	if l.Peek() == '(' {
		l.ConsumeToken('(')
		for l.Peek() != ')' {
			v := common.ParseInputValue(l)
			d.Arguments = append(d.Arguments, v)
		}
		l.ConsumeToken(')')
	}

	if l.Peek() == scanner.Ident && l.PeekIdent() == "repeatable" {
		d.Repeatable = true
		l.ConsumeKeyword("repeatable")
	}

	l.ConsumeKeyword("on")
	if l.Peek() == '|' {
		l.ConsumeToken('|')
	}
	for {
		loc := l.ConsumeIdent()
		if !validDirectiveLocations[loc] {
			l.SyntaxError(fmt.Sprintf("unknown directive location %q", loc))
		}
		d.Locations = append(d.Locations, loc)
		if l.Peek() != '|' {
			break
		}
		l.ConsumeToken('|')
	}
	return d
}

var validDirectiveLocations = map[string]bool{
	"QUERY": true, "MUTATION": true, "SUBSCRIPTION": true, "FIELD": true,
	"FRAGMENT_DEFINITION": true, "FRAGMENT_SPREAD": true, "INLINE_FRAGMENT": true,
	"VARIABLE_DEFINITION": true, "SCHEMA": true, "SCALAR": true, "OBJECT": true,
	"FIELD_DEFINITION": true, "ARGUMENT_DEFINITION": true, "INTERFACE": true,
	"UNION": true, "ENUM": true, "ENUM_VALUE": true, "INPUT_OBJECT": true,
	"INPUT_FIELD_DEFINITION": true,
}

func parseFieldsDef(l *common.Lexer) ast.FieldsDefinition {
	var fields ast.FieldsDefinition
	for l.Peek() != '}' {
		f := &ast.FieldDefinition{}
		f.Desc = l.DescComment()
		f.Loc = l.Location()
		f.Name = l.ConsumeIdent()
		if l.Peek() == '(' {
			l.ConsumeToken('(')
			for l.Peek() != ')' {
				f.Arguments = append(f.Arguments, common.ParseInputValue(l))
			}
			l.ConsumeToken(')')
		}
		l.ConsumeToken(':')
		f.Type = common.ParseType(l)
		f.Directives = common.ParseDirectives(l)
		fields = append(fields, f)
	}
	return fields
}

// EnsureQuery binds a query root when the schema has none: an existing object
// named Query is used as is, otherwise `type Query { ping: String }` is
// synthesized. The repair is logged at info level.
func EnsureQuery(s *ast.Schema, logger *slog.Logger) *ast.Schema {
	if _, ok := s.RootOperationTypes["query"]; ok {
		return s
	}

	if obj, ok := s.Types["Query"].(*ast.ObjectTypeDefinition); ok {
		s.RootOperationTypes["query"] = obj
		s.EntryPointNames["query"] = obj.Name
		if logger != nil {
			logger.Info("bound the existing Query type as query root")
		}
		return s
	}

	query := &ast.ObjectTypeDefinition{
		Name: "Query",
		Fields: ast.FieldsDefinition{{
			Name: "ping",
			Type: s.Types["String"],
		}},
	}
	s.Types[query.Name] = query
	s.Objects = append(s.Objects, query)
	s.RootOperationTypes["query"] = query
	s.EntryPointNames["query"] = query.Name
	if logger != nil {
		logger.Info("schema has no query root, synthesized a placeholder", slog.String("type", query.Name))
	}
	return s
}

// IsSynthesizedQuery reports whether t is the placeholder added by EnsureQuery.
func IsSynthesizedQuery(t ast.NamedType) bool {
	obj, ok := t.(*ast.ObjectTypeDefinition)
	return ok && obj.Loc.IsZero() && obj.Name == "Query" && len(obj.Fields) == 1 && obj.Fields[0].Name == "ping"
}

// IsRootName reports whether name is one of the default root operation type
// names or bound to a root operation of s.
func IsRootName(s *ast.Schema, name string) bool {
	switch name {
	case "Query", "Mutation", "Subscription":
		return true
	}
	return s.IsRootTypeName(name)
}

// IsReservedName reports whether name belongs to the introspection system.
func IsReservedName(name string) bool {
	return strings.HasPrefix(name, "__")
}
