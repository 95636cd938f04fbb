// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// completionShell describes how to emit and install completion for a shell.
type completionShell struct {
	generate func(c *cobra.Command, w io.Writer) error
	hints    []string
}

var completionShells = map[string]completionShell{
	"bash": {
		generate: func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletionV2(w, true) },
		hints: []string{
			"# Add to ~/.bashrc:",
			"#   eval \"$(tokensim completion bash)\"",
			"# or install it once:",
			"#   tokensim completion bash > ~/.local/share/bash-completion/completions/tokensim",
		},
	},
	"zsh": {
		generate: func(c *cobra.Command, w io.Writer) error { return c.GenZshCompletion(w) },
		hints: []string{
			"# Add to ~/.zshrc:",
			"#   eval \"$(tokensim completion zsh)\"",
			"# or install it once (before compinit: fpath=(~/.zfunc $fpath)):",
			"#   tokensim completion zsh > ~/.zfunc/_tokensim",
		},
	},
	"fish": {
		generate: func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) },
		hints: []string{
			"# Install it once:",
			"#   tokensim completion fish > ~/.config/fish/completions/tokensim.fish",
		},
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell autocompletion",
	Long: `Generate autocompletion for your shell. Besides commands and flags it
completes asset categories (--category, presets) and SPV country codes
(spv, report --country).

If no shell is specified, the current shell is detected automatically.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	RunE: func(cmd *cobra.Command, args []string) error {
		shell := detectShell()
		if len(args) > 0 {
			shell = args[0]
		}
		return writeCompletion(rootCmd, shell, cmd.OutOrStdout())
	},
}

func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	sh, ok := completionShells[shell]
	if !ok {
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
	if err := sh.generate(root, w); err != nil {
		return fmt.Errorf("generating %s completion: %w", shell, err)
	}
	// hints only when a person is reading; eval and redirects get clean output
	if w == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, strings.Join(sh.hints, "\n"))
	}
	return nil
}

// detectShell returns the login shell from $SHELL, then the parent process
// name, defaulting to bash.
func detectShell() string {
	if sh := filepath.Base(os.Getenv("SHELL")); isKnownShell(sh) {
		return sh
	}
	if data, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", os.Getppid())); err == nil {
		if name := strings.TrimSpace(string(data)); isKnownShell(name) {
			return name
		}
	}
	return "bash"
}

func isKnownShell(name string) bool {
	_, ok := completionShells[name]
	return ok
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
