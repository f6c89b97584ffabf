// parser.go parses template markup tokens into Node trees.
package wikitext

import "strings"

// Diagnostics counts the recoveries made while parsing.
//
// The grammar is lenient: a token that is not valid where it appears is
// dropped, a template without a name becomes an error node, and a template
// left open at end of input is closed with the arguments collected so far.
// None of these stop the parse.
type Diagnostics struct {
	DroppedTokens      int // tokens discarded as unexpected
	ErrorNodes         int // templates that collapsed to NodeError
	TruncatedTemplates int // templates closed by end of input
}

// Clean reports whether the parse needed no recovery.
func (d Diagnostics) Clean() bool {
	return d.DroppedTokens == 0 && d.ErrorNodes == 0 && d.TruncatedTemplates == 0
}

// Parse parses input into a sequence of root-level nodes. It never fails;
// malformed markup degrades to error nodes or truncated templates.
func Parse(input string) []Node {
	nodes, _ := ParseWithDiagnostics(input)
	return nodes
}

// ParseWithDiagnostics parses input and reports how much recovery was needed.
func ParseWithDiagnostics(input string) ([]Node, Diagnostics) {
	p := &parser{tokens: Tokenize(input)}
	nodes := p.parseBlock()
	return nodes, p.diag
}

// ParseTokens parses an already tokenized stream.
func ParseTokens(tokens TokenSource) []Node {
	p := &parser{tokens: tokens}
	return p.parseBlock()
}

// parser is a recursive descent parser with a single token of lookahead.
type parser struct {
	tokens TokenSource
	peeked *Token
	diag   Diagnostics
}

// peek returns the next token without consuming it.
func (p *parser) peek() (Token, bool) {
	if p.peeked == nil {
		tok, ok := p.tokens.Next()
		if !ok {
			return Token{}, false
		}
		p.peeked = &tok
	}
	return *p.peeked, true
}

// next consumes and returns the next token.
func (p *parser) next() (Token, bool) {
	if p.peeked != nil {
		tok := *p.peeked
		p.peeked = nil
		return tok, true
	}
	return p.tokens.Next()
}

// drop records a token discarded as unexpected.
func (p *parser) drop() {
	p.diag.DroppedTokens++
}

// parseBlock parses top-level content until the stream is exhausted.
func (p *parser) parseBlock() []Node {
	var nodes []Node
	for {
		tok, ok := p.next()
		if !ok {
			return nodes
		}
		switch tok.Type {
		case TokenText:
			nodes = append(nodes, TextNode(tok.Text))
		case TokenStartTemplate:
			nodes = append(nodes, p.parseTemplate())
		default:
			// separators and closers outside a template are literal noise
			p.drop()
		}
	}
}

// parseTemplate parses the body of a template after {{ was consumed.
func (p *parser) parseTemplate() Node {
	tok, ok := p.next()
	if !ok || tok.Type != TokenText {
		p.diag.ErrorNodes++
		return ErrorNode()
	}

	node := TemplateNode(strings.TrimSpace(tok.Text))
	for {
		tok, ok := p.next()
		if !ok {
			p.diag.TruncatedTemplates++
			return node
		}
		switch tok.Type {
		case TokenEndTemplate:
			return node
		case TokenArgumentSeparator:
		default:
			// a stray = or {{ right after the name; the argument that
			// follows is still parsed
			p.drop()
		}
		node.Arguments = append(node.Arguments, p.parseArgument())
	}
}

// parseArgument parses one argument up to, but not including, the next |
// or }}.
func (p *parser) parseArgument() TemplateArgument {
	var arg TemplateArgument

	if tok, ok := p.peek(); ok && tok.Type == TokenText {
		p.next()
		if sep, ok := p.peek(); ok && sep.Type == TokenKeyValueSeparator {
			p.next()
			arg.Name = strings.TrimSpace(tok.Text)
			arg.Named = true
		} else {
			arg.Value = append(arg.Value, TextNode(tok.Text))
		}
	}

	for {
		tok, ok := p.peek()
		if !ok {
			return arg
		}
		switch tok.Type {
		case TokenText:
			p.next()
			arg.Value = append(arg.Value, TextNode(tok.Text))
		case TokenStartTemplate:
			p.next()
			arg.Value = append(arg.Value, p.parseTemplate())
		case TokenArgumentSeparator, TokenEndTemplate:
			return arg
		default:
			p.next()
			p.drop()
		}
	}
}
