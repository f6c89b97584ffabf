// Package init provides the init command for wikidict.
package init

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wikidict/internal/config"
	"github.com/open-cli-collective/wikidict/internal/view"
)

type initOptions struct {
	configPath string
	template   string
	pos        string
	defaults   bool
	force      bool
	noColor    bool
	stdout     io.Writer

	// prompt and confirm are replaced in tests.
	prompt  func(cfg *config.Config) error
	confirm func(path string) (bool, error)
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{
		prompt:  promptConfig,
		confirm: confirmOverwrite,
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize wikidict configuration",
		Long: `Initialize wikidict with the template and argument names of your wiki.

This command will guide you through choosing the translation template,
the arguments holding the word and its romanized reading, and the part
of speech written for each entry. The configuration will be saved to
~/.config/wikidict/config.yml.`,
		Example: `  # Interactive setup
  wikidict init

  # Write the defaults without prompting
  wikidict init --defaults

  # Pre-populate the template name
  wikidict init --template "Other Languages"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.template, "template", "", "translation template name")
	cmd.Flags().StringVar(&opts.pos, "pos", "", "part of speech written for every entry")
	cmd.Flags().BoolVar(&opts.defaults, "defaults", false, "write the default configuration without prompting")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing configuration without asking")

	return cmd
}

func runInit(opts *initOptions) error {
	configPath := config.ResolvePath(opts.configPath)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		overwrite, err := opts.confirm(configPath)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(opts.stdout, "Initialization cancelled.")
			return nil
		}
	}

	cfg := config.Default()

	// Use prefilled values or prompt
	if opts.template != "" {
		cfg.Template = opts.template
	}
	if opts.pos != "" {
		cfg.PartOfSpeech = opts.pos
	}

	if !opts.defaults {
		if err := opts.prompt(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.FormatTable, opts.noColor)
	renderer.SetWriter(opts.stdout)
	renderer.RenderText("")
	renderer.Success("Configuration saved to " + configPath)
	fmt.Fprintln(opts.stdout, "\nYou're all set! Try running:")
	fmt.Fprintln(opts.stdout, "  wikidict generate pages.xml.bz2 -O dictionary.txt")

	return nil
}

func confirmOverwrite(path string) (bool, error) {
	var overwrite bool
	err := huh.NewConfirm().
		Title("Configuration already exists").
		Description(fmt.Sprintf("Overwrite %s?", path)).
		Value(&overwrite).
		Run()
	return overwrite, err
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateJobs(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("jobs must be a number")
	}
	if n < 1 {
		return errors.New("jobs must be at least 1")
	}
	return nil
}

func promptConfig(cfg *config.Config) error {
	jobs := strconv.Itoa(cfg.Jobs)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Translation template").
				Description("Template that lists a page's name in other languages").
				Placeholder("Other Languages").
				Value(&cfg.Template).
				Validate(required("template")),

			huh.NewInput().
				Title("Word argument").
				Description("Template argument holding the Japanese word").
				Placeholder("ja").
				Value(&cfg.WordArgument).
				Validate(required("word argument")),

			huh.NewInput().
				Title("Reading argument").
				Description("Template argument holding the romanized reading").
				Placeholder("ja_rm").
				Value(&cfg.ReadingArgument).
				Validate(required("reading argument")),

			huh.NewInput().
				Title("Ruby template (optional)").
				Description("Inline template whose first argument is the base text").
				Placeholder("Rubi").
				Value(&cfg.RubyTemplate),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Part of speech").
				Description("Written in the third column of every entry").
				Options(
					huh.NewOption("固有名詞 (proper noun)", "固有名詞"),
					huh.NewOption("人名 (personal name)", "人名"),
					huh.NewOption("地名 (place name)", "地名"),
					huh.NewOption("名詞 (noun)", "名詞"),
				).
				Value(&cfg.PartOfSpeech),

			huh.NewInput().
				Title("Workers").
				Description("Pages extracted in parallel by generate").
				Value(&jobs).
				Validate(validateJobs),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	n, err := strconv.Atoi(jobs)
	if err != nil {
		return fmt.Errorf("invalid jobs value: %w", err)
	}
	cfg.Jobs = n
	return nil
}
