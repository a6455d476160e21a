package common

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
)

type syntaxError string

// locatedError is a syntax error raised away from the current token.
type locatedError struct {
	msg string
	loc errors.Location
}

type Lexer struct {
	sc      *scanner.Scanner
	next    rune
	prevEnd int
}

func NewLexer(s string) *Lexer {
	sc := &scanner.Scanner{
		Mode: scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings,
	}
	sc.Init(strings.NewReader(s))
	sc.Error = func(_ *scanner.Scanner, msg string) {
		panic(syntaxError(msg))
	}

	return &Lexer{sc: sc}
}

func (l *Lexer) CatchSyntaxError(f func()) (errRes *errors.QueryError) {
	defer func() {
		if err := recover(); err != nil {
			switch err := err.(type) {
			case syntaxError:
				errRes = errors.Errorf("syntax error: %s", err)
				errRes.Locations = []errors.Location{l.Location()}
			case locatedError:
				errRes = errors.Errorf("syntax error: %s", err.msg)
				errRes.Locations = []errors.Location{err.loc}
			default:
				panic(err)
			}
		}
	}()

	f()
	return
}

func (l *Lexer) Peek() rune {
	return l.next
}

// PeekIdent returns the text of the current token without consuming it.
func (l *Lexer) PeekIdent() string {
	return l.sc.TokenText()
}

// ConsumeWhitespace consumes whitespace and tokens equivalent to whitespace (e.g. commas and comments).
func (l *Lexer) ConsumeWhitespace() {
	l.prevEnd = l.sc.Pos().Offset
	for {
		l.next = l.sc.Scan()

		if l.next == ',' {
			// Similar to white space and line terminators, commas (',') are used to improve the
			// legibility of source text and separate lexical tokens but are otherwise syntactically and
			// semantically insignificant within GraphQL documents.
			//
			// http://spec.graphql.org/draft/#sec-Insignificant-Commas
			continue
		}

		if l.next == '#' {
			// GraphQL source documents may contain single-line comments, starting with the '#' marker.
			// They never become descriptions.
			l.consumeComment()
			continue
		}

		break
	}
}

func (l *Lexer) ConsumeIdent() string {
	name := l.sc.TokenText()
	l.ConsumeToken(scanner.Ident)
	return name
}

func (l *Lexer) ConsumeIdentWithLoc() ast.Ident {
	loc := l.Location()
	name := l.sc.TokenText()
	l.ConsumeToken(scanner.Ident)
	return ast.Ident{Name: name, Loc: loc}
}

func (l *Lexer) ConsumeKeyword(keyword string) {
	if l.next != scanner.Ident || l.sc.TokenText() != keyword {
		l.SyntaxError(fmt.Sprintf("unexpected %q, expecting %q", l.sc.TokenText(), keyword))
	}
	l.ConsumeWhitespace()
}

// ConsumeLiteral consumes an Int, Float, String or name token. Block strings
// are normalized to their quoted single-line form.
func (l *Lexer) ConsumeLiteral() *ast.PrimitiveValue {
	lit := &ast.PrimitiveValue{Type: l.next, Text: l.sc.TokenText(), Loc: l.Location()}
	if l.next == scanner.String {
		lit.Text = ast.Quote(l.consumeString())
	}
	l.ConsumeWhitespace()
	return lit
}

func (l *Lexer) ConsumeToken(expected rune) {
	if l.next != expected {
		l.SyntaxError(fmt.Sprintf("unexpected %q, expecting %s", l.sc.TokenText(), scanner.TokenString(expected)))
	}
	l.ConsumeWhitespace()
}

// DescComment consumes the description in front of a definition, if any.
//
// http://spec.graphql.org/draft/#sec-Descriptions
func (l *Lexer) DescComment() string {
	if l.next != scanner.String {
		return ""
	}
	desc := l.consumeString()
	l.ConsumeWhitespace()
	return desc
}

func (l *Lexer) SyntaxError(message string) {
	panic(syntaxError(message))
}

func (l *Lexer) Location() errors.Location {
	return errors.Location{
		Line:   l.sc.Line,
		Column: l.sc.Column,
	}
}

// Offset is the byte offset of the current token.
func (l *Lexer) Offset() int {
	return l.sc.Offset
}

// PrevEnd is the byte offset just past the last consumed token.
func (l *Lexer) PrevEnd() int {
	return l.prevEnd
}

// consumeString returns the value of the current string token. A triple quote
// string is scanned as an empty "string" followed by an open quote.
func (l *Lexer) consumeString() string {
	text := l.sc.TokenText()
	if text == `""` && l.sc.Peek() == '"' {
		// Next invalidates the token position, so keep where the string opened.
		open := l.Location()
		l.sc.Next()
		return l.consumeBlockString(open)
	}
	value, err := ast.Unquote(text)
	if err != nil {
		l.SyntaxError(err.Error())
	}
	return value
}

func (l *Lexer) consumeBlockString(open errors.Location) string {
	var raw strings.Builder
	for {
		r := l.sc.Next()
		switch {
		case r == scanner.EOF:
			panic(locatedError{msg: "unterminated block string", loc: open})

		case r == '\\' && l.sc.Peek() == '"':
			quotes := 0
			for quotes < 3 && l.sc.Peek() == '"' {
				l.sc.Next()
				quotes++
			}
			if quotes < 3 {
				raw.WriteByte('\\')
			}
			raw.WriteString(strings.Repeat(`"`, quotes))

		case r == '"':
			if l.sc.Peek() != '"' {
				raw.WriteByte('"')
				continue
			}
			l.sc.Next()
			if l.sc.Peek() != '"' {
				raw.WriteString(`""`)
				continue
			}
			l.sc.Next()
			return BlockStringValue(raw.String())

		default:
			raw.WriteRune(r)
		}
	}
}

// consumeComment consumes all characters from `#` to the first encountered line terminator.
func (l *Lexer) consumeComment() {
	if l.next != '#' {
		panic("consumeComment used in wrong context")
	}

	for {
		next := l.sc.Peek()
		if next == '\r' || next == '\n' || next == scanner.EOF {
			break
		}
		l.sc.Next()
	}
}

// BlockStringValue strips the common indentation and the leading and trailing
// blank lines of a raw block string.
//
// http://spec.graphql.org/draft/#BlockStringValue()
func BlockStringValue(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	lines := strings.Split(raw, "\n")

	commonIndent := -1
	for _, line := range lines[1:] {
		indent := leadingWhitespace(line)
		if indent == len(line) {
			continue
		}
		if commonIndent < 0 || indent < commonIndent {
			commonIndent = indent
		}
	}
	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) < commonIndent {
				lines[i] = ""
				continue
			}
			lines[i] = lines[i][commonIndent:]
		}
	}

	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func isBlank(s string) bool {
	return leadingWhitespace(s) == len(s)
}
