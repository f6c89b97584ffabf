// Package render provides the render command for wikidict.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikidict/internal/config"
	"github.com/open-cli-collective/wikidict/internal/extract"
	"github.com/open-cli-collective/wikidict/pkg/wikitext"
)

type renderOptions struct {
	input      string
	ruby       string
	strip      bool
	configPath string
	stdin      io.Reader
	stdout     io.Writer
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render wikitext to plain text",
		Long: `Parse wikitext and render it back to text.

Ruby annotation templates are replaced by their base text; every other
template is dropped. Use "-" to read from standard input.`,
		Example: `  # Render a snippet
  echo '{{Rubi|雷電|らいでん}}将軍' | wikidict render -

  # Also cut references and strip HTML tags
  wikidict render page.wiki --strip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runRender(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ruby, "ruby", "", "name of the ruby annotation template (default: from config)")
	cmd.Flags().BoolVar(&opts.strip, "strip", false, "cut references and comments and strip HTML tags")

	return cmd
}

func runRender(opts *renderOptions) error {
	ruby := opts.ruby
	if ruby == "" {
		cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ruby = cfg.RubyTemplate
	}

	var (
		data []byte
		err  error
	)
	if opts.input == "-" {
		data, err = io.ReadAll(opts.stdin)
	} else {
		data, err = os.ReadFile(opts.input)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	text := wikitext.Render(wikitext.Parse(string(data)), extract.RubyExpander(ruby))
	if opts.strip {
		text = extract.StripMarkup(text)
	}

	_, err = fmt.Fprintln(opts.stdout, text)
	return err
}
