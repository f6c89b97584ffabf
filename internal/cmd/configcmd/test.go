package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikidict/internal/config"
	"github.com/open-cli-collective/wikidict/internal/dictionary"
	"github.com/open-cli-collective/wikidict/internal/extract"
	"github.com/open-cli-collective/wikidict/internal/view"
)

// probeWord and probeReading fill the generated probe page.
const (
	probeWord    = "テスト"
	probeReading = "tesuto"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [page]",
		Short: "Check that the configured template can be extracted",
		Long: `Check the effective configuration against wikitext.

Without an argument a probe page is built from the configured template and
argument names and run through extraction, which catches names the parser
cannot match. With a file argument the entries found in that page's
wikitext are listed.`,
		Example: `  # Check the configuration
  wikidict config test

  # Check a saved page
  wikidict config test page.wiki`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadWithEnv(config.ResolvePath(configPath))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			page := ""
			if len(args) == 1 {
				page = args[0]
			}
			return runTest(cmd.OutOrStdout(), noColor, cfg, page)
		},
	}

	return cmd
}

// probePage returns wikitext holding one invocation of the configured
// template.
func probePage(cfg *config.Config) string {
	return fmt.Sprintf("{{%s|%s=%s|%s=%s}}", cfg.Template, cfg.WordArgument, probeWord, cfg.ReadingArgument, probeReading)
}

func runTest(w io.Writer, noColor bool, cfg *config.Config, pagePath string) error {
	r := view.NewRenderer(view.FormatTable, noColor)
	r.SetWriter(w)

	if err := cfg.Validate(); err != nil {
		r.Error("Invalid configuration: " + err.Error())
		fmt.Fprintln(w, "\nReconfigure with: wikidict init")
		return fmt.Errorf("invalid config: %w", err)
	}
	r.Success("Configuration is valid")

	text := probePage(cfg)
	if pagePath != "" {
		data, err := os.ReadFile(pagePath)
		if err != nil {
			return fmt.Errorf("failed to read page: %w", err)
		}
		text = string(data)
	}

	pairs, diag := extract.FromPage(text, cfg.ExtractOptions())
	if len(pairs) == 0 {
		r.Error(fmt.Sprintf("No {{%s}} template found", cfg.Template))
		if pagePath == "" {
			fmt.Fprintln(w, "\nThe template name cannot be matched by the parser. Check it with: wikidict config show")
		}
		return fmt.Errorf("template %q not found", cfg.Template)
	}
	r.Success(fmt.Sprintf("Found %d {{%s}} template(s)", len(pairs), cfg.Template))
	if !diag.Clean() {
		fmt.Fprintf(w, "  recovered from malformed markup: %d dropped token(s), %d error node(s), %d truncated template(s)\n",
			diag.DroppedTokens, diag.ErrorNodes, diag.TruncatedTemplates)
	}

	builder := dictionary.NewBuilder()
	for _, pair := range pairs {
		if e, ok := dictionary.Build(pair, cfg.DictionaryOptions()); ok {
			builder.Add(e)
		}
	}
	if builder.Len() == 0 {
		r.Error(fmt.Sprintf("No entries: arguments %q and %q missing or empty", cfg.WordArgument, cfg.ReadingArgument))
		return fmt.Errorf("no entries extracted")
	}

	r.Success(fmt.Sprintf("Extracted %d entr%s", builder.Len(), plural(builder.Len())))
	for _, e := range builder.Entries() {
		fmt.Fprintf(w, "  %s\n", e.String())
	}

	return nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
