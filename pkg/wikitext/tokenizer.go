// tokenizer.go implements tokenization for {{template|key=value}} markup.
package wikitext

// Tokenizer scans template markup one token at a time.
//
// Delimiters are {{, }}, | and =. A single { or } that is not doubled is
// kept as literal text. Text tokens are substrings of the input and share
// its memory.
type Tokenizer struct {
	input   string
	pos     int
	pending *Token // delimiter found while a text run was being closed
}

// Tokenize returns a tokenizer over input. Tokens are produced on demand.
func Tokenize(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// TokenizeAll scans the whole input and returns the token list.
func TokenizeAll(input string) []Token {
	var tokens []Token
	t := Tokenize(input)
	for {
		tok, ok := t.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token, or false at end of input.
func (t *Tokenizer) Next() (Token, bool) {
	if t.pending != nil {
		tok := *t.pending
		t.pending = nil
		return tok, true
	}

	textStart := t.pos
	if textStart >= len(t.input) {
		return Token{}, false
	}

	for t.pos < len(t.input) {
		i := t.pos
		var delim TokenType
		width := 1

		switch t.input[i] {
		case '{':
			if !t.doubled(i) {
				t.pos++
				continue
			}
			delim, width = TokenStartTemplate, 2
		case '}':
			if !t.doubled(i) {
				t.pos++
				continue
			}
			delim, width = TokenEndTemplate, 2
		case '=':
			delim = TokenKeyValueSeparator
		case '|':
			delim = TokenArgumentSeparator
		default:
			// Delimiters are ASCII, so UTF-8 continuation bytes never match.
			t.pos++
			continue
		}

		t.pos += width
		tok := Token{Type: delim, Position: i}
		if textStart < i {
			t.pending = &tok
			return Token{Type: TokenText, Text: t.input[textStart:i], Position: textStart}, true
		}
		return tok, true
	}

	return Token{Type: TokenText, Text: t.input[textStart:], Position: textStart}, true
}

// doubled reports whether the byte at i is repeated at i+1.
func (t *Tokenizer) doubled(i int) bool {
	return i+1 < len(t.input) && t.input[i+1] == t.input[i]
}
