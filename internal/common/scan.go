package common

import (
	"fmt"
	"text/scanner"

	"github.com/covesa/s2dm/errors"
)

// Definition is the header of one top-level SDL definition and the byte span
// it covers in the scanned text, description included.
type Definition struct {
	Keyword   string
	Name      string
	Extension bool
	Start     int
	End       int
	Loc       errors.Location
}

var definitionKeywords = map[string]bool{
	"schema":    true,
	"scalar":    true,
	"type":      true,
	"interface": true,
	"union":     true,
	"enum":      true,
	"input":     true,
	"directive": true,
	"extend":    true,
}

// ScanDefinitions finds the top-level definitions of an SDL document without
// building a schema. Descriptions, comments and directive applications next
// to a header are skipped over.
func ScanDefinitions(text string) (defs []Definition, err *errors.QueryError) {
	l := NewLexer(text)
	err = l.CatchSyntaxError(func() {
		l.ConsumeWhitespace()

		var cur *Definition
		flush := func(end int) {
			if cur != nil {
				cur.End = end
				defs = append(defs, *cur)
				cur = nil
			}
		}

		var prev rune
		var prevText string
		depth := 0
		for l.Peek() != scanner.EOF {
			tok, text := l.Peek(), l.PeekIdent()
			if depth == 0 && startsDefinition(tok, text, prev, prevText) {
				flush(l.PrevEnd())
				cur = scanHeader(l)
				prev, prevText = scanner.Ident, cur.Name
				continue
			}

			switch tok {
			case '{', '(', '[':
				depth++
			case '}', ')', ']':
				depth--
			case scanner.String:
				l.consumeString()
			}
			prev, prevText = tok, text
			l.ConsumeWhitespace()
		}
		flush(l.PrevEnd())
	})
	return defs, err
}

func startsDefinition(tok rune, text string, prev rune, prevText string) bool {
	if tok == scanner.String {
		return true
	}
	if tok != scanner.Ident || !definitionKeywords[text] {
		return false
	}
	switch prev {
	case '=', '|', '&', '@', ':':
		return false
	}
	return prevText != "implements"
}

func scanHeader(l *Lexer) *Definition {
	d := &Definition{Start: l.Offset()}
	l.DescComment()
	d.Loc = l.Location()
	if l.Peek() == scanner.Ident && l.PeekIdent() == "extend" {
		d.Extension = true
		l.ConsumeWhitespace()
	}

	d.Keyword = l.ConsumeIdent()
	switch d.Keyword {
	case "schema":
	case "directive":
		l.ConsumeToken('@')
		d.Name = l.ConsumeIdent()
	case "scalar", "type", "interface", "union", "enum", "input":
		d.Name = l.ConsumeIdent()
	default:
		l.SyntaxError(fmt.Sprintf(`unexpected %q, expecting a definition`, d.Keyword))
	}
	return d
}
