// Package root provides the root command for the wikidict CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikidict/internal/cmd/completion"
	"github.com/open-cli-collective/wikidict/internal/cmd/configcmd"
	"github.com/open-cli-collective/wikidict/internal/cmd/generate"
	initcmd "github.com/open-cli-collective/wikidict/internal/cmd/init"
	"github.com/open-cli-collective/wikidict/internal/cmd/kanacmd"
	"github.com/open-cli-collective/wikidict/internal/cmd/parse"
	"github.com/open-cli-collective/wikidict/internal/cmd/render"
	"github.com/open-cli-collective/wikidict/internal/version"
)

// NewCmdRoot creates the root command for wikidict.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikidict",
		Short: "Build Japanese IME dictionaries from wiki dumps",
		Long: `wikidict reads a MediaWiki XML dump, finds the translation template on
every page and writes a reading/word dictionary for Japanese input methods.

It also exposes the wikitext template parser it is built on, for inspecting
how a page is tokenized, parsed and rendered.

Get started by running: wikidict generate pages.xml.bz2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/wikidict/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain (default: from config)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	cmd.SetVersionTemplate(version.Template("wikidict"))

	// Subcommands
	cmd.AddCommand(generate.NewCmdGenerate())
	cmd.AddCommand(parse.NewCmdParse())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(kanacmd.NewCmdKana())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
