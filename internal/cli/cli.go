// Package cli is the autoscroll command line: the interactive ticker and
// the headless simulate, run and check commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Env carries build info and process streams into the commands.
type Env struct {
	Version string
	Commit  string
	Date    string

	Stdout io.Writer
	Stderr io.Writer
	// Interactive is true when stdin and stdout are terminals. The root
	// command then starts the TUI instead of the headless runner.
	Interactive bool
}

func (e Env) withDefaults() Env {
	if e.Stdout == nil {
		e.Stdout = os.Stdout
	}
	if e.Stderr == nil {
		e.Stderr = os.Stderr
	}
	if e.Version == "" {
		e.Version = "dev"
	}
	return e
}

// Run executes the autoscroll CLI. It returns a process exit code.
func Run(args []string, env Env) int {
	env = env.withDefaults()
	root := buildRootCommand(env)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var exitErr exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		Errorf(env.Stderr, "%v", err)
		return ExitInternalError
	}
	return ExitOK
}

func buildRootCommand(env Env) *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "autoscroll",
		Short: "Continuously scroll a list through a fixed viewport",
		Long: `autoscroll - a seamless ticker for the terminal

Run without a subcommand in a terminal to open the ticker. Hover pauses it,
the wheel nudges it, space starts and stops it.

Headless:
  autoscroll simulate     Deterministic virtual-time run, one sample per frame
  autoscroll run          Real-time run printing the item under the viewport
  autoscroll check        Validate a config file and its items`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.Interactive {
				return runTUI(cmd, env, flags)
			}
			return runHeadless(cmd, env, flags, defaultRunOptions())
		},
	}
	root.Version = env.Version
	root.SetVersionTemplate(versionLine(env) + "\n")
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	root.CompletionOptions.DisableDefaultCmd = true

	flags.register(root)
	registerCompletions(root)

	root.AddCommand(buildTUICommand(env, flags))
	root.AddCommand(buildSimulateCommand(env, flags))
	root.AddCommand(buildRunCommand(env, flags))
	root.AddCommand(buildCheckCommand(env, flags))
	root.AddCommand(buildVersionCommand(env))
	root.AddCommand(buildCompletionCommand())
	return root
}

func versionLine(env Env) string {
	line := "autoscroll " + env.Version
	if env.Commit != "" || env.Date != "" {
		line += fmt.Sprintf(" (commit: %s, built: %s)", orUnknown(env.Commit), orUnknown(env.Date))
	}
	return line
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func buildVersionCommand(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(env.Stdout, versionLine(env))
			return nil
		},
	}
}
