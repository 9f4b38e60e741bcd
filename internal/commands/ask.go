package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	apierrors "github.com/diogo/ghagent/internal/errors"
	"github.com/diogo/ghagent/internal/models"
	"github.com/diogo/ghagent/internal/render"
)

// Output formats of the ask command
const (
	formatMarkdown = "markdown"
	formatRaw      = "raw"
	formatHTML     = "html"
)

type askOptions struct {
	file   string
	format string
	output string
	copy   bool
}

// NewAskCmd creates the one-shot query command
func NewAskCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [query]",
		Short: "Send a single query and print the reply",
		Long: `Send a single query to the chat endpoint and print the reply.

The query is taken from the arguments, from a file given with -f, or from
stdin when it is not a terminal. When the exchange fails the fallback
message is printed and the command exits with an error.

Formats:
  markdown   Render the reply for the terminal (default)
  raw        Print the reply text unchanged
  html       Render the reply as sanitized HTML`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(deps.Stdin, opts.file, args)
			if err != nil {
				return err
			}
			return runAsk(cmd.Context(), deps, flags, query, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the query from a file")
	cmd.Flags().StringVar(&opts.format, "format", formatMarkdown, "Output format: markdown, raw or html")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the reply to a file")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the reply to the clipboard")

	return cmd
}

// readQuery picks the query from a file, the arguments or stdin
func readQuery(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case stdin != nil && !isTerminal(stdin):
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	default:
		return "", apierrors.ErrEmptyQuery
	}
}

func validateFormat(format string) error {
	switch format {
	case formatMarkdown, formatRaw, formatHTML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want markdown, raw or html)", format)
	}
}

// runAsk executes a single exchange and prints the reply
func runAsk(ctx context.Context, deps *Dependencies, flags *globalFlags, query string, opts *askOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateFormat(opts.format); err != nil {
		return err
	}
	if strings.TrimSpace(query) == "" {
		return apierrors.ErrEmptyQuery
	}

	s, err := deps.newSession(flags)
	if err != nil {
		return err
	}
	defer s.Close()

	decorated := opts.format == formatMarkdown && isTerminal(deps.Stdout)
	renderOpts := render.OptionsFromConfig(s.cfg)

	var spin *spinner
	var printErr error
	s.store.Subscribe(func(_ int, msg models.Message) {
		if msg.IsUser() {
			return
		}
		if spin != nil {
			spin.halt()
		}
		printErr = printReply(deps.Stdout, msg.Content, opts.format, decorated, renderOpts)
	})

	ex, ok := s.controller.Submit(query)
	if !ok {
		return apierrors.ErrEmptyQuery
	}
	if decorated && isTerminal(deps.Stderr) {
		spin = newSpinner(deps.Stderr, "Agent is thinking")
		spin.start()
	}

	res := s.controller.Send(ctx, ex)
	reply, _ := s.controller.Resolve(res)
	if spin != nil {
		spin.halt()
	}
	if printErr != nil {
		return printErr
	}
	if res.Err != nil {
		return fmt.Errorf("exchange failed: %w", res.Err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(reply.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintln(deps.Stderr, successStyle().Render(fmt.Sprintf("✓ Reply saved to %s", opts.output)))
	}

	if opts.copy || s.cfg.CopyToClipboard {
		if err := deps.Clipboard(reply.Content); err != nil {
			fmt.Fprintln(deps.Stderr, warningStyle().Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else {
			fmt.Fprintln(deps.Stderr, successStyle().Render("✓ Copied to clipboard"))
		}
	}

	return nil
}

// printReply writes one assistant message in the requested format
func printReply(w io.Writer, text, format string, decorated bool, opts render.Options) error {
	switch format {
	case formatRaw:
		_, err := fmt.Fprintln(w, text)
		return err

	case formatHTML:
		html, err := render.HTML(text)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, html)
		return err
	}

	if !decorated {
		_, err := fmt.Fprintln(w, render.Reply(text, opts))
		return err
	}

	bubbleWidth := getTerminalWidth(w) - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	theme := render.GetTUITheme()
	label := lipgloss.NewStyle().
		Foreground(theme.AssistantBubble).
		Bold(true).
		Render("✦ Agent")
	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.AssistantBubble).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(bubbleWidth).
		Render(render.Reply(text, opts.WithWidth(bubbleWidth-4)))

	_, err := fmt.Fprintln(w, label+"\n"+bubble)
	return err
}

func successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(render.GetTUITheme().AssistantBubble)
}

func warningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(render.GetTUITheme().Error)
}

// isTerminal reports whether v is a file attached to a terminal
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth(v any) int {
	f, ok := v.(*os.File)
	if !ok {
		return 80
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
