// tokens.go defines token types for template markup scanning.
package wikitext

// TokenType represents the kind of a lexical token in template markup.
type TokenType int

const (
	TokenText              TokenType = iota // literal text between delimiters
	TokenStartTemplate                      // {{
	TokenKeyValueSeparator                  // =
	TokenArgumentSeparator                  // |
	TokenEndTemplate                        // }}
)

// String returns a short name for the token type.
func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "Text"
	case TokenStartTemplate:
		return "StartTemplate"
	case TokenKeyValueSeparator:
		return "KeyValueSeparator"
	case TokenArgumentSeparator:
		return "ArgumentSeparator"
	case TokenEndTemplate:
		return "EndTemplate"
	default:
		return "Unknown"
	}
}

// Token represents a single token from template markup.
type Token struct {
	Type     TokenType
	Text     string // set for Text tokens; a substring of the input
	Position int    // byte offset in original input
}

// TokenSource is a lazily produced token stream.
// Next returns false once the stream is exhausted.
type TokenSource interface {
	Next() (Token, bool)
}
