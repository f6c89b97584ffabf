// Package kanacmd provides the kana command for wikidict.
package kanacmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikidict/internal/config"
	"github.com/open-cli-collective/wikidict/internal/kana"
	"github.com/open-cli-collective/wikidict/internal/view"
)

type kanaOptions struct {
	words      []string
	longVowel  bool
	noFixups   bool
	configPath string
	output     string
	noColor    bool
	stdout     io.Writer
}

// NewCmdKana creates the kana command.
func NewCmdKana() *cobra.Command {
	opts := &kanaOptions{}

	cmd := &cobra.Command{
		Use:   "kana <romaji>...",
		Short: "Convert romaji readings to hiragana",
		Long: `Convert romanized readings to hiragana the same way generate does.

Configured fixups are applied to the result unless --no-fixups is given.`,
		Example: `  # Convert a reading
  wikidict kana "Raiden Shougun"

  # Write repeated vowels as ー
  wikidict kana --long Ryuu`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.words = args
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runKana(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.longVowel, "long", "l", false, "write a repeated vowel as ー")
	cmd.Flags().BoolVar(&opts.noFixups, "no-fixups", false, "skip the configured fixups")

	return cmd
}

type conversion struct {
	Romaji string `json:"romaji"`
	Kana   string `json:"kana"`
}

func runKana(opts *kanaOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	var fixups map[string]string
	if !opts.noFixups {
		cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		fixups = cfg.Fixups
	}

	results := make([]conversion, 0, len(opts.words))
	for _, word := range opts.words {
		hiragana := kana.ApplyFixups(kana.ToHiragana(word, opts.longVowel), fixups)
		results = append(results, conversion{Romaji: word, Kana: hiragana})
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.stdout)

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(results)
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Romaji, r.Kana})
	}
	renderer.RenderTable([]string{"ROMAJI", "KANA"}, rows)
	return nil
}
