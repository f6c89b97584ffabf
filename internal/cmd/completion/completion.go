// Package completion provides shell completion generation commands.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

type shell struct {
	name     string
	install  string
	generate func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name: "bash",
		install: `To load completions in your current shell session:

  source <(wikidict completion bash)

To load completions for every new session:

  # Linux
  wikidict completion bash > /etc/bash_completion.d/wikidict

  # macOS (requires bash-completion)
  wikidict completion bash > $(brew --prefix)/etc/bash_completion.d/wikidict`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletionV2(w, true)
		},
	},
	{
		name: "zsh",
		install: `To load completions in your current shell session:

  source <(wikidict completion zsh)

To load completions for every new session, enable completion in ~/.zshrc
(autoload -Uz compinit && compinit) and add the script to your fpath:

  wikidict completion zsh > "${fpath[1]}/_wikidict"`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name: "fish",
		install: `To load completions in your current shell session:

  wikidict completion fish | source

To load completions for every new session:

  wikidict completion fish > ~/.config/fish/completions/wikidict.fish`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name: "powershell",
		install: `To load completions in your current shell session:

  wikidict completion powershell | Out-String | Invoke-Expression

To load completions for every new session, add the output to your
PowerShell profile ($PROFILE).`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for wikidict.

These scripts enable tab-completion for commands, flags, and arguments.
See each sub-command's help for installation instructions.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(newCmdShell(sh))
	}

	return cmd
}

func newCmdShell(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:                   sh.name,
		Short:                 "Generate " + sh.name + " completion script",
		Long:                  "Generate " + sh.name + " completion script for wikidict.\n\n" + sh.install,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.generate(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
