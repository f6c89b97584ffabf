// Package generate provides the generate command for wikidict.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/open-cli-collective/wikidict/internal/config"
	"github.com/open-cli-collective/wikidict/internal/dictionary"
	"github.com/open-cli-collective/wikidict/internal/dump"
	"github.com/open-cli-collective/wikidict/internal/extract"
	"github.com/open-cli-collective/wikidict/internal/logging"
	"github.com/open-cli-collective/wikidict/internal/view"
	"github.com/open-cli-collective/wikidict/pkg/wikitext"
)

// pagesPerJob sizes a batch: each worker gets this many pages per round.
const pagesPerJob = 64

type generateOptions struct {
	dumpPath   string
	outFile    string
	jobs       int
	template   string
	wordArg    string
	readingArg string
	pos        string
	configPath string
	output     string
	noColor    bool
	verbose    bool
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

// NewCmdGenerate creates the generate command.
func NewCmdGenerate() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:     "generate <dump>",
		Aliases: []string{"gen"},
		Short:   "Generate a dictionary from a wiki dump",
		Long: `Generate an IME user dictionary from a MediaWiki XML dump.

The dump may be plain XML or bzip2 compressed (.bz2). Use "-" to read
from standard input. Every page is parsed and each translation template
contributes one reading/word entry. Duplicate entries are written once.`,
		Example: `  # Print the dictionary
  wikidict generate pages.xml.bz2

  # Write it to a file using 8 workers
  wikidict generate pages.xml.bz2 -O dictionary.txt -j 8

  # Use a different template
  wikidict generate pages.xml --template "Translations" --word-arg jp --reading-arg jp_rm`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return []string{"xml", "bz2"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.dumpPath = args[0]
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outFile, "out", "O", "", "write the dictionary to a file instead of stdout")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "number of parallel extraction workers (default: from config)")
	cmd.Flags().StringVar(&opts.template, "template", "", "name of the translation template")
	cmd.Flags().StringVar(&opts.wordArg, "word-arg", "", "template argument holding the word")
	cmd.Flags().StringVar(&opts.readingArg, "reading-arg", "", "template argument holding the romanized reading")
	cmd.Flags().StringVar(&opts.pos, "pos", "", "part of speech written for every entry")

	return cmd
}

// summary counts what a run saw.
type summary struct {
	Pages      int
	Templates  int
	Entries    int
	Skipped    int
	Duplicates int
	Degraded   int
}

func (s summary) fields() []zap.Field {
	return []zap.Field{
		zap.Int("pages", s.Pages),
		zap.Int("templates", s.Templates),
		zap.Int("entries", s.Entries),
		zap.Int("skipped", s.Skipped),
		zap.Int("duplicates", s.Duplicates),
		zap.Int("degraded_pages", s.Degraded),
	}
}

func runGenerate(ctx context.Context, opts *generateOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts.applyTo(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'wikidict init' to configure)", err)
	}

	log, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	in, err := openDump(opts)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	log.Info("Generating dictionary", zap.String("dump", opts.dumpPath), zap.Int("jobs", cfg.Jobs))

	builder, sum, err := generate(ctx, in, cfg, log)
	if err != nil {
		return err
	}
	log.Info("Dictionary generated", sum.fields()...)

	if opts.outFile != "" {
		if err := builder.WriteFile(opts.outFile); err != nil {
			return err
		}
		log.Info("Dictionary written", zap.String("path", opts.outFile))
		return nil
	}

	format := opts.output
	if format == "" {
		format = cfg.OutputFormat
	}
	return writeEntries(opts.stdout, view.Format(format), opts.noColor, builder)
}

func (o *generateOptions) applyTo(cfg *config.Config) {
	if o.jobs != 0 {
		cfg.Jobs = o.jobs
	}
	if o.template != "" {
		cfg.Template = o.template
	}
	if o.wordArg != "" {
		cfg.WordArgument = o.wordArg
	}
	if o.readingArg != "" {
		cfg.ReadingArgument = o.readingArg
	}
	if o.pos != "" {
		cfg.PartOfSpeech = o.pos
	}
}

// newLogger logs with timestamps on the process stderr and without them
// anywhere else.
func newLogger(opts *generateOptions) (*zap.Logger, error) {
	if opts.stderr == nil || opts.stderr == os.Stderr {
		return logging.New(opts.verbose)
	}
	return logging.NewWriter(opts.stderr, opts.verbose), nil
}

func openDump(opts *generateOptions) (io.ReadCloser, error) {
	if opts.dumpPath == "-" && opts.stdin != nil {
		return io.NopCloser(opts.stdin), nil
	}
	return dump.Open(opts.dumpPath)
}

// generate streams pages out of r and extracts entries from them on up to
// cfg.Jobs goroutines. Entries are added in page order, so the output does
// not depend on scheduling.
func generate(ctx context.Context, r io.Reader, cfg *config.Config, log *zap.Logger) (*dictionary.Builder, summary, error) {
	reader := dump.NewReader(r)
	exOpts := cfg.ExtractOptions()
	dictOpts := cfg.DictionaryOptions()
	builder := dictionary.NewBuilder()

	var sum summary
	batch := make([]*dump.Page, 0, cfg.Jobs*pagesPerJob)

	flush := func() error {
		results := make([]pageResult, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Jobs)
		for i, page := range batch {
			i, page := i, page
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = extractPage(page, exOpts, dictOpts)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, res := range results {
			sum.Templates += res.templates
			sum.Skipped += res.templates - len(res.entries)
			if !res.diag.Clean() {
				sum.Degraded++
				log.Debug("Recovered from malformed markup",
					zap.String("page", batch[i].Title),
					zap.Int("dropped_tokens", res.diag.DroppedTokens),
					zap.Int("error_nodes", res.diag.ErrorNodes),
					zap.Int("truncated_templates", res.diag.TruncatedTemplates))
			}
			for _, e := range res.entries {
				if builder.Add(e) {
					sum.Entries++
				} else {
					sum.Duplicates++
				}
			}
		}
		batch = batch[:0]
		return nil
	}

	for {
		page, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, sum, err
		}
		batch = append(batch, page)
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return nil, sum, err
			}
			log.Debug("Progress", zap.Int("pages", reader.Pages()), zap.Int("entries", sum.Entries))
		}
	}
	if err := flush(); err != nil {
		return nil, sum, err
	}

	sum.Pages = reader.Pages()
	return builder, sum, nil
}

type pageResult struct {
	templates int
	entries   []dictionary.Entry
	diag      wikitext.Diagnostics
}

func extractPage(page *dump.Page, exOpts extract.Options, dictOpts dictionary.Options) pageResult {
	pairs, diag := extract.FromPage(page.Text, exOpts)
	res := pageResult{templates: len(pairs), diag: diag}
	for _, pair := range pairs {
		if e, ok := dictionary.Build(pair, dictOpts); ok {
			res.entries = append(res.entries, e)
		}
	}
	return res
}

func writeEntries(w io.Writer, format view.Format, noColor bool, builder *dictionary.Builder) error {
	switch format {
	case view.FormatJSON:
		renderer := view.NewRenderer(format, noColor)
		renderer.SetWriter(w)
		entries := builder.Entries()
		if entries == nil {
			entries = []dictionary.Entry{}
		}
		return renderer.RenderJSON(entries)
	case view.FormatTable:
		renderer := view.NewRenderer(format, noColor)
		renderer.SetWriter(w)
		rows := make([][]string, 0, builder.Len())
		for _, e := range builder.Entries() {
			rows = append(rows, []string{e.Reading, e.Word, e.PartOfSpeech})
		}
		renderer.RenderTable([]string{"READING", "WORD", "PART OF SPEECH"}, rows)
		return nil
	default:
		_, err := builder.WriteTo(w)
		return err
	}
}
