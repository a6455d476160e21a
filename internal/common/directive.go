package common

import "github.com/covesa/s2dm/ast"

// ParseDirectives reads directive applications of a type system document.
// Their arguments are constants.
func ParseDirectives(l *Lexer) ast.DirectiveList {
	return parseDirectives(l, true)
}

// ParseOperationDirectives reads directive applications inside an executable
// document, where arguments may refer to variables.
func ParseOperationDirectives(l *Lexer) ast.DirectiveList {
	return parseDirectives(l, false)
}

func parseDirectives(l *Lexer, constOnly bool) ast.DirectiveList {
	var directives ast.DirectiveList
	for l.Peek() == '@' {
		l.ConsumeToken('@')
		d := &ast.Directive{}
		d.Name = l.ConsumeIdentWithLoc()
		d.Name.Loc.Column--
		if l.Peek() == '(' {
			d.Arguments = ParseArgumentList(l, constOnly)
		}
		directives = append(directives, d)
	}
	return directives
}
