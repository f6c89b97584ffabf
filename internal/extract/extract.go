// Package extract pulls word/reading pairs out of page wikitext.
package extract

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/open-cli-collective/wikidict/pkg/wikitext"
)

// Options names the templates and arguments that carry dictionary data.
type Options struct {
	Template        string // template holding the translations
	WordArgument    string // argument with the written form
	ReadingArgument string // argument with the romanized reading
	RubyTemplate    string // inline ruby annotation template
}

// DefaultOptions returns the names used by the Genshin Impact wiki.
func DefaultOptions() Options {
	return Options{
		Template:        "Other Languages",
		WordArgument:    "ja",
		ReadingArgument: "ja_rm",
		RubyTemplate:    "Rubi",
	}
}

// Pair holds the word and reading argument values of one template
// invocation. The nodes are normalized and do not reference the page text.
type Pair struct {
	Word       []wikitext.Node
	Reading    []wikitext.Node
	HasWord    bool
	HasReading bool
}

// FromPage returns one Pair per matching template found anywhere in text,
// together with the parser diagnostics. Pages that never mention the
// template are skipped without parsing.
func FromPage(text string, opts Options) ([]Pair, wikitext.Diagnostics) {
	if opts.Template == "" || !strings.Contains(text, opts.Template) {
		return nil, wikitext.Diagnostics{}
	}

	nodes, diag := wikitext.ParseWithDiagnostics(text)

	var pairs []Pair
	wikitext.Walk(nodes, func(n wikitext.Node) {
		if !n.IsTemplate(opts.Template) {
			return
		}
		var pair Pair
		if arg, ok := n.Argument(opts.WordArgument); ok {
			pair.Word = wikitext.Normalize(arg.Value)
			pair.HasWord = true
		}
		if arg, ok := n.Argument(opts.ReadingArgument); ok {
			pair.Reading = wikitext.Normalize(arg.Value)
			pair.HasReading = true
		}
		pairs = append(pairs, pair)
	})

	return pairs, diag
}

// RubyExpander returns an expand function that keeps the base text of ruby
// annotations (arguments 0, 2, 4, ...) and drops every other template.
func RubyExpander(rubyTemplate string) wikitext.ExpandFunc {
	var expand wikitext.ExpandFunc
	expand = func(name string, args []wikitext.TemplateArgument, out *strings.Builder) {
		if name != rubyTemplate {
			return
		}
		for i := 0; i < len(args); i += 2 {
			wikitext.RenderTo(out, args[i].Value, expand)
		}
	}
	return expand
}

// Resolve renders both sides of the pair to plain text. ok is false when
// either argument is missing or renders to nothing.
func (p Pair) Resolve(expand wikitext.ExpandFunc) (word, reading string, ok bool) {
	if !p.HasWord || !p.HasReading {
		return "", "", false
	}
	word = StripMarkup(wikitext.Render(p.Word, expand))
	reading = StripMarkup(wikitext.Render(p.Reading, expand))
	if word == "" || reading == "" {
		return "", "", false
	}
	return word, reading, true
}

// cutMarkers end the usable part of a value: references and comments
// trail the actual word.
var cutMarkers = []string{"<ref", "<!--"}

// StripMarkup cuts s at the first reference or comment, removes any
// remaining HTML tags (keeping their text), decodes entities and trims
// surrounding whitespace.
func StripMarkup(s string) string {
	for _, marker := range cutMarkers {
		if i := strings.Index(s, marker); i >= 0 {
			s = s[:i]
		}
	}
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return strings.TrimSpace(s)
			}
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
