package common

import (
	"text/scanner"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
)

// ParseType reads a type reference such as [Door!]!.
func ParseType(l *Lexer) ast.Type {
	var t ast.Type
	if l.Peek() == '[' {
		l.ConsumeToken('[')
		t = &ast.List{OfType: ParseType(l)}
		l.ConsumeToken(']')
	} else {
		t = &ast.TypeName{Ident: l.ConsumeIdentWithLoc()}
	}
	if l.Peek() == '!' {
		l.ConsumeToken('!')
		return &ast.NonNull{OfType: t}
	}
	return t
}

type Resolver func(name string) ast.Type

// ResolveType replaces the type names inside t with what resolver returns for
// them, keeping the List and NonNull wrappers. With lenient set, an unknown
// name stays in the tree as an *ast.TypeName so a fragment can reference types
// declared in another file.
func ResolveType(t ast.Type, resolver Resolver, lenient bool) (ast.Type, *errors.QueryError) {
	switch t := t.(type) {
	case *ast.List:
		of, err := ResolveType(t.OfType, resolver, lenient)
		if err != nil {
			return nil, err
		}
		return &ast.List{OfType: of}, nil
	case *ast.NonNull:
		of, err := ResolveType(t.OfType, resolver, lenient)
		if err != nil {
			return nil, err
		}
		return &ast.NonNull{OfType: of}, nil
	case *ast.TypeName:
		if resolved := resolver(t.Name); resolved != nil {
			return resolved, nil
		}
		if lenient {
			return t, nil
		}
		err := errors.Errorf("Unknown type %q.", t.Name)
		err.Rule = "KnownTypeNames"
		err.Locations = []errors.Location{t.Loc}
		return nil, err
	}
	return t, nil
}

// ParseInputValue reads an argument or input field definition:
// "desc" name: Type = default @directives.
func ParseInputValue(l *Lexer) *ast.InputValueDefinition {
	v := &ast.InputValueDefinition{Desc: l.DescComment(), Loc: l.Location()}
	v.Name = l.ConsumeIdentWithLoc()
	l.ConsumeToken(':')
	v.TypeLoc = l.Location()
	v.Type = ParseType(l)
	if l.Peek() == '=' {
		l.ConsumeToken('=')
		v.Default = ParseLiteral(l, true)
	}
	v.Directives = ParseDirectives(l)
	return v
}

// ParseArgumentList parses `(name: value ...)`. Directive applications in a
// schema only take constant values.
func ParseArgumentList(l *Lexer, constOnly bool) ast.ArgumentList {
	var args ast.ArgumentList
	l.ConsumeToken('(')
	for l.Peek() != ')' {
		arg := &ast.Argument{Name: l.ConsumeIdentWithLoc()}
		l.ConsumeToken(':')
		arg.Value = ParseLiteral(l, constOnly)
		args = append(args, arg)
	}
	l.ConsumeToken(')')
	return args
}

// ParseLiteral reads a value. Variables are rejected when constOnly is set;
// @range(min: -40) needs the signed numbers.
func ParseLiteral(l *Lexer, constOnly bool) ast.Value {
	loc := l.Location()
	switch l.Peek() {
	case '$':
		if constOnly {
			l.SyntaxError("variable not allowed")
		}
		l.ConsumeToken('$')
		return &ast.Variable{Name: l.ConsumeIdent(), Loc: loc}

	case scanner.Int, scanner.Float, scanner.String, scanner.Ident:
		lit := l.ConsumeLiteral()
		if lit.Type == scanner.Ident && lit.Text == "null" {
			return &ast.NullValue{Loc: loc}
		}
		lit.Loc = loc
		return lit

	case '-':
		l.ConsumeToken('-')
		if tok := l.Peek(); tok != scanner.Int && tok != scanner.Float {
			l.SyntaxError("expecting a number after '-'")
		}
		lit := l.ConsumeLiteral()
		lit.Text = "-" + lit.Text
		lit.Loc = loc
		return lit

	case '[':
		return parseList(l, loc, constOnly)

	case '{':
		return parseObject(l, loc, constOnly)
	}
	l.SyntaxError("invalid value")
	panic("unreachable")
}

func parseList(l *Lexer, loc errors.Location, constOnly bool) *ast.ListValue {
	list := &ast.ListValue{Loc: loc}
	l.ConsumeToken('[')
	for l.Peek() != ']' {
		list.Values = append(list.Values, ParseLiteral(l, constOnly))
	}
	l.ConsumeToken(']')
	return list
}

func parseObject(l *Lexer, loc errors.Location, constOnly bool) *ast.ObjectValue {
	obj := &ast.ObjectValue{Loc: loc}
	l.ConsumeToken('{')
	for l.Peek() != '}' {
		f := &ast.ObjectField{Name: l.ConsumeIdentWithLoc()}
		l.ConsumeToken(':')
		f.Value = ParseLiteral(l, constOnly)
		obj.Fields = append(obj.Fields, f)
	}
	l.ConsumeToken('}')
	return obj
}
