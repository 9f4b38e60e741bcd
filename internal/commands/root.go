// Package commands provides CLI commands for ghagent.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/ghagent/internal/render"
	"github.com/diogo/ghagent/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd creates the ghagent command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "ghagent",
		Short: "Terminal chat client for an HTTP chat agent",
		Long: `ghagent is a terminal chat client. Every message you send is posted as
{"query": "..."} to the configured endpoint and the reply is shown as
Markdown in a scrolling conversation.

Examples:
  ghagent                               Start interactive chat
  ghagent ask "What is Go?"             Send a single query
  cat prompt.md | ghagent ask           Read the query from stdin
  ghagent --endpoint http://host/chat   Talk to another backend
  ghagent stub-server                   Run a local echo backend`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "ghagent %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runChat(cmd.Context(), deps, flags)
		},
	}

	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.PersistentFlags().StringVarP(&flags.endpoint, "endpoint", "e", "", "Chat endpoint URL (default from config)")
	cmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Log at debug level")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Write logs to this file")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file (default ~/.ghagent/config.json)")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewAskCmd(deps, flags))
	cmd.AddCommand(NewConfigCmd(deps, flags))
	cmd.AddCommand(NewStubServerCmd(deps, flags))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}

// runChat starts the interactive chat UI
func runChat(ctx context.Context, deps *Dependencies, flags *globalFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := deps.newSession(flags)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.cfg.TUITheme != "" && render.SetTUITheme(s.cfg.TUITheme) {
		tui.UpdateTheme()
	}

	return deps.TUI.RunChat(s.controller,
		tui.WithContext(ctx),
		tui.WithRenderOptions(render.OptionsFromConfig(s.cfg)),
		tui.WithClipboard(deps.Clipboard),
	)
}
