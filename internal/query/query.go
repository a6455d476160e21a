// Package query parses GraphQL executable documents. Only the selection tree is
// of interest: it drives selection based schema pruning.
package query

import (
	"fmt"
	"text/scanner"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/common"
)

const (
	Query        ast.OperationType = "QUERY"
	Mutation     ast.OperationType = "MUTATION"
	Subscription ast.OperationType = "SUBSCRIPTION"
)

var operations = map[string]ast.OperationType{
	"query":        Query,
	"mutation":     Mutation,
	"subscription": Subscription,
}

type parser struct {
	l *common.Lexer
}

// Parse reads a document of operations and fragments. Variable definitions,
// arguments and directives are kept; nothing is validated against a schema.
func Parse(document string) (*ast.ExecutableDefinition, *errors.QueryError) {
	p := parser{l: common.NewLexer(document)}
	var doc *ast.ExecutableDefinition
	if err := p.l.CatchSyntaxError(func() { doc = p.document() }); err != nil {
		return nil, err
	}
	return doc, nil
}

// FirstQuery returns the first query operation of doc, or nil.
func FirstQuery(doc *ast.ExecutableDefinition) *ast.OperationDefinition {
	for _, op := range doc.Operations {
		if op.Type == Query {
			return op
		}
	}
	return nil
}

func (p parser) document() *ast.ExecutableDefinition {
	doc := &ast.ExecutableDefinition{}
	p.l.ConsumeWhitespace()
	for p.l.Peek() != scanner.EOF {
		loc := p.l.Location()

		// Shorthand query: { vehicle { speed } }
		if p.l.Peek() == '{' {
			doc.Operations = append(doc.Operations, &ast.OperationDefinition{
				Type:       Query,
				Loc:        loc,
				Selections: p.selectionSet(),
			})
			continue
		}

		keyword := p.l.ConsumeIdent()
		if keyword == "fragment" {
			frag := p.fragment()
			frag.Loc = loc
			doc.Fragments = append(doc.Fragments, frag)
			continue
		}
		typ, ok := operations[keyword]
		if !ok {
			p.l.SyntaxError(fmt.Sprintf(`unexpected %q, expecting "query" or "fragment"`, keyword))
		}
		op := p.operation(typ)
		op.Loc = loc
		doc.Operations = append(doc.Operations, op)
	}
	return doc
}

func (p parser) operation(typ ast.OperationType) *ast.OperationDefinition {
	op := &ast.OperationDefinition{Type: typ}
	op.Name.Loc = p.l.Location()
	if p.l.Peek() == scanner.Ident {
		op.Name = p.l.ConsumeIdentWithLoc()
	}
	if p.l.Peek() == '(' {
		p.l.ConsumeToken('(')
		for p.l.Peek() != ')' {
			loc := p.l.Location()
			p.l.ConsumeToken('$')
			v := common.ParseInputValue(p.l)
			v.Loc = loc
			op.Vars = append(op.Vars, v)
		}
		p.l.ConsumeToken(')')
	}
	op.Directives = common.ParseOperationDirectives(p.l)
	op.Selections = p.selectionSet()
	return op
}

func (p parser) fragment() *ast.FragmentDefinition {
	f := &ast.FragmentDefinition{Name: p.l.ConsumeIdentWithLoc()}
	p.l.ConsumeKeyword("on")
	f.On = ast.TypeName{Ident: p.l.ConsumeIdentWithLoc()}
	f.Directives = common.ParseOperationDirectives(p.l)
	f.Selections = p.selectionSet()
	return f
}

func (p parser) selectionSet() []ast.Selection {
	var sels []ast.Selection
	p.l.ConsumeToken('{')
	for p.l.Peek() != '}' {
		if p.l.Peek() == '.' {
			sels = append(sels, p.spread())
		} else {
			sels = append(sels, p.field())
		}
	}
	p.l.ConsumeToken('}')
	return sels
}

func (p parser) field() *ast.Field {
	f := &ast.Field{Alias: p.l.ConsumeIdentWithLoc()}
	f.Name = f.Alias
	if p.l.Peek() == ':' {
		p.l.ConsumeToken(':')
		f.Name = p.l.ConsumeIdentWithLoc()
	}
	if p.l.Peek() == '(' {
		f.Arguments = common.ParseArgumentList(p.l, false)
	}
	f.Directives = common.ParseOperationDirectives(p.l)
	if p.l.Peek() == '{' {
		f.SelectionSetLoc = p.l.Location()
		f.SelectionSet = p.selectionSet()
	}
	return f
}

// spread parses a named fragment spread or an inline fragment after "...".
func (p parser) spread() ast.Selection {
	loc := p.l.Location()
	for i := 0; i < 3; i++ {
		p.l.ConsumeToken('.')
	}

	inline := &ast.InlineFragment{Loc: loc}
	if p.l.Peek() == scanner.Ident {
		ident := p.l.ConsumeIdentWithLoc()
		if ident.Name != "on" {
			return &ast.FragmentSpread{
				Name:       ident,
				Loc:        loc,
				Directives: common.ParseOperationDirectives(p.l),
			}
		}
		inline.On = ast.TypeName{Ident: p.l.ConsumeIdentWithLoc()}
	}
	inline.Directives = common.ParseOperationDirectives(p.l)
	inline.Selections = p.selectionSet()
	return inline
}
