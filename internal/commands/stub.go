package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/ghagent/internal/logging"
	"github.com/diogo/ghagent/internal/models"
	"github.com/diogo/ghagent/internal/stub"
)

// NewStubServerCmd creates the command running the local echo backend
func NewStubServerCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	opts := stub.Options{}

	cmd := &cobra.Command{
		Use:   "stub-server",
		Short: "Run a local backend that echoes every query",
		Long: `Run a local chat backend on the default endpoint address.

POST /chat answers {"query": "..."} by echoing the query inside the
field chosen with --field. Use --field "" to answer with a payload
the client has to dump as JSON, and --delay to watch the loading state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := deps.Logger
			if logger == nil {
				logger = logging.NewConsole(deps.Stderr, flags.verbose)
			}
			defer func() { _ = logger.Sync() }()

			return stub.New(opts, logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8000", "Listen address")
	cmd.Flags().StringVar(&opts.Field, "field", models.FieldResponse, "Payload field carrying the reply")
	cmd.Flags().DurationVar(&opts.Delay, "delay", 500*time.Millisecond, "Delay before each reply")

	return cmd
}
