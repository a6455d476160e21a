package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/common"
)

type consumeTestCase struct {
	description     string
	definition      string
	expected        string // expected description
	failureExpected bool
}

// These tests stop as soon as they read the description, so the rest of the
// document does not need to be valid.
var consumeTests = []consumeTestCase{{
	description: "comments are not descriptions",
	definition: `

# Comment line 1
#Comment line 2
,,,,,, # Commas are insignificant
type Hello {
	world: String!
}`,
	expected: "",
}, {
	description: "simple string description",
	definition: `
# Comment line 1
"New style comments"
type Hello {
	world: String!
}`,
	expected: "New style comments",
}, {
	description: "escapes in a simple string",
	definition:  `"Speed in \"km/h\"\tnow" type Hello`,
	expected:    "Speed in \"km/h\"\tnow",
}, {
	description: "triple quote description",
	definition: `
"""
New style comments
"""
type Hello {
	world: String!
}`,
	expected: "New style comments",
}, {
	description: "block string keeps relative indentation",
	definition: `
	"""
	First line

	  indented
	Last line
	"""
	type Hello`,
	expected: "First line\n\n  indented\nLast line",
}, {
	description: "escaped triple quote",
	definition:  `""" say \""" twice """ type Hello`,
	expected:    ` say """ twice `,
}, {
	description: "quotes inside a block string",
	definition:  `"""a "quoted" word and "" two""" type Hello`,
	expected:    `a "quoted" word and "" two`,
}, {
	description:     "unterminated block string",
	definition:      `""" never closed`,
	failureExpected: true,
}}

func TestConsume(t *testing.T) {
	for _, test := range consumeTests {
		t.Run(test.description, func(t *testing.T) {
			lex := common.NewLexer(test.definition)

			var desc string
			err := lex.CatchSyntaxError(func() {
				lex.ConsumeWhitespace()
				desc = lex.DescComment()
			})
			if test.failureExpected {
				require.NotNil(t, err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, test.expected, desc)
		})
	}
}

func TestBlockStringValue(t *testing.T) {
	tests := []struct {
		description string
		raw         string
		expected    string
	}{
		{description: "single line", raw: "hello", expected: "hello"},
		{description: "blank edges removed", raw: "\n\n  hello\n  \n", expected: "hello"},
		{description: "first line is not dedented", raw: "  a\n    b\n    c", expected: "  a\nb\nc"},
		{description: "crlf line endings", raw: "\r\n  a\r\n  b\r\n", expected: "a\nb"},
		{description: "empty", raw: "", expected: ""},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.expected, common.BlockStringValue(tt.raw))
		})
	}
}

func TestConsumeLiteral(t *testing.T) {
	lex := common.NewLexer(`"""multi
	line""" 12 -3.5 RED`)

	var texts []string
	err := lex.CatchSyntaxError(func() {
		lex.ConsumeWhitespace()
		for i := 0; i < 3; i++ {
			texts = append(texts, common.ParseLiteral(lex, true).String())
		}
		texts = append(texts, lex.ConsumeLiteral().Text)
	})
	require.Nil(t, err)
	assert.Equal(t, []string{`"multi\nline"`, "12", "-3.5", "RED"}, texts)
}

func TestSyntaxErrorLocation(t *testing.T) {
	lex := common.NewLexer("type Hello {\n  world String\n}")
	err := lex.CatchSyntaxError(func() {
		lex.ConsumeWhitespace()
		lex.ConsumeKeyword("type")
		lex.ConsumeIdent()
		lex.ConsumeToken('{')
		lex.ConsumeIdent()
		lex.ConsumeToken(':')
	})
	require.NotNil(t, err)
	assert.Contains(t, err.Message, `unexpected "String"`)
	assert.Equal(t, 2, err.Locations[0].Line)
	assert.Equal(t, 9, err.Locations[0].Column)
}

func TestUnterminatedBlockStringLocation(t *testing.T) {
	lex := common.NewLexer("type A {\n  x: Int\n}\n  \"\"\"never closed\ntype B")
	err := lex.CatchSyntaxError(func() {
		lex.ConsumeWhitespace()
		lex.ConsumeKeyword("type")
		lex.ConsumeIdent()
		lex.ConsumeToken('{')
		lex.ConsumeIdent()
		lex.ConsumeToken(':')
		lex.ConsumeIdent()
		lex.ConsumeToken('}')
		lex.DescComment()
	})
	require.NotNil(t, err)
	assert.Equal(t, "syntax error: unterminated block string", err.Message)
	assert.Equal(t, []errors.Location{{Line: 4, Column: 3}}, err.Locations)
}
