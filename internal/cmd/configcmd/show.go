package configcmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikidict/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective wikidict configuration with the source of each value.`,
		Example: `  # Show current config
  wikidict config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			configPath, _ := cmd.Flags().GetString("config")
			return runShow(cmd.OutOrStdout(), config.ResolvePath(configPath), noColor)
		},
	}

	return cmd
}

func runShow(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-18s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}
		fmt.Fprint(w, value)

		source := "default"
		switch {
		case envVar != "" && os.Getenv(envVar) != "":
			source = envVar
		case fileValue != "" && fileValue == value:
			source = "config"
		}
		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	itoa := func(n int) string {
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	}

	printField("Template", cfg.Template, fileCfg.Template, "WIKIDICT_TEMPLATE")
	printField("Word argument", cfg.WordArgument, fileCfg.WordArgument, "WIKIDICT_WORD_ARGUMENT")
	printField("Reading argument", cfg.ReadingArgument, fileCfg.ReadingArgument, "WIKIDICT_READING_ARGUMENT")
	printField("Ruby template", cfg.RubyTemplate, fileCfg.RubyTemplate, "WIKIDICT_RUBY_TEMPLATE")
	printField("Part of speech", cfg.PartOfSpeech, fileCfg.PartOfSpeech, "WIKIDICT_PART_OF_SPEECH")
	printField("Jobs", itoa(cfg.Jobs), itoa(fileCfg.Jobs), "WIKIDICT_JOBS")
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, "")

	_, _ = bold.Fprintf(w, "%-18s", "Fixups:")
	if len(cfg.Fixups) == 0 {
		_, _ = dim.Fprintln(w, "-")
	} else {
		keys := make([]string, 0, len(cfg.Fixups))
		for k := range cfg.Fixups {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(w)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s -> %s\n", k, cfg.Fixups[k])
		}
	}

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}
