package commands

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/splitter/internal/config"
	"github.com/mmynk/splitter/internal/finalize"
	"github.com/mmynk/splitter/internal/gateway"
	"github.com/mmynk/splitter/internal/middleware"
	"github.com/mmynk/splitter/pkg/logging"
)

var (
	gatewayURL string
	currency   string
	billID     int64
	debug      bool

	gw       gateway.Gateway
	workflow *finalize.Workflow
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "splitctl",
		Short:         "Split a receipt among friends by shares",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			setupLogging(cfg)

			if gatewayURL == "" {
				gatewayURL = cfg.GatewayURL
			}
			client := gateway.New(
				&http.Client{Timeout: cfg.GatewayTimeout},
				gatewayURL,
				connect.WithInterceptors(middleware.RequestIDInterceptor()),
			)
			gw = client
			workflow = finalize.New(client, nil)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&gatewayURL, "gateway", "", "gateway base URL (default $GATEWAY_URL)")
	root.PersistentFlags().StringVar(&currency, "currency", "USD", "ISO 4217 code used to print amounts")

	root.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level to stderr")

	root.AddCommand(billCmd(), usersCmd(), finalizeCmd())
	return root
}

// setupLogging applies LOG_LEVEL and LOG_FORMAT unless --debug is set.
func setupLogging(cfg config.Config) {
	if debug {
		logging.SetupWithLevel(slog.LevelDebug)
		return
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
}

// requireBill registers the --bill flag on cmd.
func requireBill(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&billID, "bill", 0, "receipt ID")
	_ = cmd.MarkFlagRequired("bill")
}
