// Package parse provides the parse command for wikidict.
package parse

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikidict/internal/view"
	"github.com/open-cli-collective/wikidict/pkg/wikitext"
)

// maxTextWidth limits text cells in table output.
const maxTextWidth = 60

type parseOptions struct {
	input   string
	tokens  bool
	stats   bool
	output  string
	noColor bool
	stdin   io.Reader
	stdout  io.Writer
}

// NewCmdParse creates the parse command.
func NewCmdParse() *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse wikitext and print the template tree",
		Long: `Parse a file of wikitext and print the resulting node tree.

Use "-" to read from standard input. With --tokens the raw token stream is
printed instead of the tree. With --stats the recovery counters of the
parse are printed after the output.`,
		Example: `  # Show the node tree of a page
  wikidict parse page.wiki

  # Show the tokens of a snippet
  echo '{{Rubi|雷電|らいでん}}' | wikidict parse - --tokens

  # Tree as JSON
  wikidict parse page.wiki -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runParse(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.tokens, "tokens", false, "print the token stream instead of the node tree")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print parser recovery counters")

	return cmd
}

func runParse(opts *parseOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	text, err := readInput(opts.input, opts.stdin)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.stdout)

	nodes, diag := wikitext.ParseWithDiagnostics(text)

	if renderer.Format() == view.FormatJSON {
		var doc documentJSON
		if opts.tokens {
			doc.Tokens = tokensToJSON(wikitext.TokenizeAll(text))
		} else {
			doc.Nodes = toJSON(nodes)
		}
		if opts.stats {
			doc.Stats = &statsJSON{
				Nodes:              wikitext.CountNodes(nodes),
				DroppedTokens:      diag.DroppedTokens,
				ErrorNodes:         diag.ErrorNodes,
				TruncatedTemplates: diag.TruncatedTemplates,
				Clean:              diag.Clean(),
			}
		}
		return renderer.RenderJSON(doc)
	}

	if opts.tokens {
		renderTokens(renderer, wikitext.TokenizeAll(text))
	} else {
		renderTree(renderer, nodes)
	}
	if opts.stats {
		renderStats(renderer, wikitext.CountNodes(nodes), diag)
	}
	return nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// documentJSON is the JSON output of the command.
type documentJSON struct {
	Tokens []tokenJSON `json:"tokens,omitempty"`
	Nodes  []nodeJSON  `json:"nodes,omitempty"`
	Stats  *statsJSON  `json:"stats,omitempty"`
}

type tokenJSON struct {
	Position int    `json:"position"`
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
}

type statsJSON struct {
	Nodes              int  `json:"nodes"`
	DroppedTokens      int  `json:"dropped_tokens"`
	ErrorNodes         int  `json:"error_nodes"`
	TruncatedTemplates int  `json:"truncated_templates"`
	Clean              bool `json:"clean"`
}

func tokensToJSON(tokens []wikitext.Token) []tokenJSON {
	out := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tokenJSON{Position: tok.Position, Type: tok.Type.String(), Text: tok.Text})
	}
	return out
}

func renderTokens(r *view.Renderer, tokens []wikitext.Token) {
	rows := make([][]string, 0, len(tokens))
	for _, tok := range tokens {
		text := ""
		if tok.Type == wikitext.TokenText {
			text = strconv.Quote(tok.Text)
			if r.Format() == view.FormatTable {
				text = view.Truncate(text, maxTextWidth)
			}
		}
		rows = append(rows, []string{strconv.Itoa(tok.Position), tok.Type.String(), text})
	}
	r.RenderTable([]string{"POS", "TYPE", "TEXT"}, rows)
}

type nodeJSON struct {
	Type      string         `json:"type"`
	Text      string         `json:"text,omitempty"`
	Name      string         `json:"name,omitempty"`
	Arguments []argumentJSON `json:"arguments,omitempty"`
}

type argumentJSON struct {
	Name  string     `json:"name,omitempty"`
	Named bool       `json:"named"`
	Value []nodeJSON `json:"value"`
}

func toJSON(nodes []wikitext.Node) []nodeJSON {
	out := make([]nodeJSON, 0, len(nodes))
	for _, n := range nodes {
		jn := nodeJSON{Type: n.Type.String(), Text: n.Text, Name: n.Name}
		for _, arg := range n.Arguments {
			jn.Arguments = append(jn.Arguments, argumentJSON{
				Name:  arg.Name,
				Named: arg.Named,
				Value: toJSON(arg.Value),
			})
		}
		out = append(out, jn)
	}
	return out
}

func renderTree(r *view.Renderer, nodes []wikitext.Node) {
	var sb strings.Builder
	writeTree(&sb, nodes, 0, r.Format() == view.FormatTable)
	r.RenderText(strings.TrimSuffix(sb.String(), "\n"))
}

// writeTree prints one line per node, arguments indented under their
// template.
func writeTree(sb *strings.Builder, nodes []wikitext.Node, depth int, truncate bool) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		switch n.Type {
		case wikitext.NodeText:
			text := strconv.Quote(n.Text)
			if truncate {
				text = view.Truncate(text, maxTextWidth)
			}
			fmt.Fprintf(sb, "%stext %s\n", indent, text)
		case wikitext.NodeTemplate:
			fmt.Fprintf(sb, "%stemplate %s\n", indent, strconv.Quote(n.Name))
			position := 0
			for _, arg := range n.Arguments {
				if arg.Named {
					fmt.Fprintf(sb, "%s  arg %s\n", indent, strconv.Quote(arg.Name))
				} else {
					fmt.Fprintf(sb, "%s  arg #%d\n", indent, position)
					position++
				}
				writeTree(sb, arg.Value, depth+2, truncate)
			}
		default:
			fmt.Fprintf(sb, "%serror\n", indent)
		}
	}
}

func renderStats(r *view.Renderer, nodes int, diag wikitext.Diagnostics) {
	r.RenderText("")
	r.RenderKeyValue("nodes", strconv.Itoa(nodes))
	r.RenderKeyValue("dropped tokens", strconv.Itoa(diag.DroppedTokens))
	r.RenderKeyValue("error nodes", strconv.Itoa(diag.ErrorNodes))
	r.RenderKeyValue("truncated templates", strconv.Itoa(diag.TruncatedTemplates))
}
