package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenSummary drops positions so expectations stay readable.
type tokenSummary struct {
	Type TokenType
	Text string
}

func summarize(tokens []Token) []tokenSummary {
	out := make([]tokenSummary, len(tokens))
	for i, tok := range tokens {
		out[i] = tokenSummary{Type: tok.Type, Text: tok.Text}
	}
	return out
}

func TestTokenize_EmptyInput(t *testing.T) {
	tok, ok := Tokenize("").Next()
	assert.False(t, ok)
	assert.Equal(t, Token{}, tok)
	assert.Empty(t, TokenizeAll(""))
}

func TestTokenize_PlainText(t *testing.T) {
	tokens := TokenizeAll("Hello world")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenText, tokens[0].Type)
	assert.Equal(t, "Hello world", tokens[0].Text)
}

func TestTokenize_SingleBracesStayText(t *testing.T) {
	input := "aaa{aaa{}aa}aa"
	tokens := TokenizeAll(input)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenText, tokens[0].Type)
	assert.Equal(t, input, tokens[0].Text)
}

func TestTokenize_MixedInput(t *testing.T) {
	input := "aaa{aaa{}aa}aa{{aaa|{{bbb|ccc|ddd=eee}}}}{{}}"

	want := []tokenSummary{
		{TokenText, "aaa{aaa{}aa}aa"},
		{TokenStartTemplate, ""},
		{TokenText, "aaa"},
		{TokenArgumentSeparator, ""},
		{TokenStartTemplate, ""},
		{TokenText, "bbb"},
		{TokenArgumentSeparator, ""},
		{TokenText, "ccc"},
		{TokenArgumentSeparator, ""},
		{TokenText, "ddd"},
		{TokenKeyValueSeparator, ""},
		{TokenText, "eee"},
		{TokenEndTemplate, ""},
		{TokenEndTemplate, ""},
		{TokenStartTemplate, ""},
		{TokenEndTemplate, ""},
	}

	assert.Equal(t, want, summarize(TokenizeAll(input)))
}

func TestTokenize_Delimiters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tokenSummary
	}{
		{
			"lone equals",
			"=",
			[]tokenSummary{{TokenKeyValueSeparator, ""}},
		},
		{
			"adjacent separators",
			"a||b",
			[]tokenSummary{
				{TokenText, "a"},
				{TokenArgumentSeparator, ""},
				{TokenArgumentSeparator, ""},
				{TokenText, "b"},
			},
		},
		{
			"triple open brace",
			"{{{x}}}",
			[]tokenSummary{
				{TokenStartTemplate, ""},
				{TokenText, "{x"},
				{TokenEndTemplate, ""},
				{TokenText, "}"},
			},
		},
		{
			"brace before separator",
			"{|}",
			[]tokenSummary{
				{TokenText, "{"},
				{TokenArgumentSeparator, ""},
				{TokenText, "}"},
			},
		},
		{
			"trailing single brace",
			"a}",
			[]tokenSummary{{TokenText, "a}"}},
		},
		{
			"multibyte text",
			"{{Rubi|漢字|かんじ}}です",
			[]tokenSummary{
				{TokenStartTemplate, ""},
				{TokenText, "Rubi"},
				{TokenArgumentSeparator, ""},
				{TokenText, "漢字"},
				{TokenArgumentSeparator, ""},
				{TokenText, "かんじ"},
				{TokenEndTemplate, ""},
				{TokenText, "です"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarize(TokenizeAll(tt.input)))
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	tokens := TokenizeAll("ab{{c|d=e}}")
	require.Len(t, tokens, 8)

	wantPositions := []int{0, 2, 4, 5, 6, 7, 8, 9}
	for i, tok := range tokens {
		assert.Equal(t, wantPositions[i], tok.Position, "token %d (%s)", i, tok.Type)
	}
}

func TestTokenize_IsLazy(t *testing.T) {
	tz := Tokenize("x{{y")

	tok, ok := tz.Next()
	require.True(t, ok)
	assert.Equal(t, tokenSummary{TokenText, "x"}, tokenSummary{tok.Type, tok.Text})

	tok, ok = tz.Next()
	require.True(t, ok)
	assert.Equal(t, TokenStartTemplate, tok.Type)

	tok, ok = tz.Next()
	require.True(t, ok)
	assert.Equal(t, "y", tok.Text)

	_, ok = tz.Next()
	assert.False(t, ok)
	_, ok = tz.Next()
	assert.False(t, ok, "exhausted tokenizer stays exhausted")
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "Text", TokenText.String())
	assert.Equal(t, "StartTemplate", TokenStartTemplate.String())
	assert.Equal(t, "KeyValueSeparator", TokenKeyValueSeparator.String())
	assert.Equal(t, "ArgumentSeparator", TokenArgumentSeparator.String())
	assert.Equal(t, "EndTemplate", TokenEndTemplate.String())
	assert.Equal(t, "Unknown", TokenType(42).String())
}
