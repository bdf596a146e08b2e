// Command marketplace is a client for the marketplace API. It works from the
// terminal, or serves the storefront pages to browsers with "serve".
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"marketplace-client/clients"
	"marketplace-client/config"
	"marketplace-client/controllers"
	"marketplace-client/logger"
	awspkg "marketplace-client/pkg/aws"
	"marketplace-client/session"
	"marketplace-client/view"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "marketplace",
	Short: "Marketplace client",
	Long: `marketplace signs in to the marketplace API, lists and searches products,
and manages the cart. The token is kept between runs in a local storage file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

var (
	configPath string
	apiURL     string
)

// app is what every command runs against, built once by setup
var app struct {
	cfg      config.Config
	api      *clients.MarketplaceClient
	metrics  *awspkg.MetricsClient
	term     *view.Terminal
	handlers *controllers.Handlers
	sess     *session.Session
	in       io.Reader
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "override the marketplace API base URL")

	rootCmd.AddCommand(signInCmd, signUpCmd, signOutCmd, whoAmICmd)
	rootCmd.AddCommand(productsCmd, cartCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --api: %w", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var cwWriter io.Writer
	var metrics *awspkg.MetricsClient
	if cfg.CloudWatchEnabled {
		cwLogs, err := awspkg.NewCloudWatchLogsClient(ctx, "marketplace-client")
		if err != nil {
			fmt.Fprintf(os.Stderr, "CloudWatch Logs init failed: %v\n", err)
		} else {
			cwWriter = cwLogs
		}
		if mc, err := awspkg.NewMetricsClient(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "CloudWatch Metrics init failed: %v\n", err)
		} else {
			metrics = mc
		}
	}
	logger.InitializeWithWriter(cfg.Env, cfg.LogFile, cwWriter)

	api := clients.NewMarketplaceClient(cfg.APIBaseURL, cfg.RequestTimeout)
	if metrics != nil {
		api.WithObserver(metrics)
	}

	app.cfg = cfg
	app.api = api
	app.metrics = metrics
	app.term = view.NewTerminal(cmd.OutOrStdout())
	app.handlers = controllers.NewHandlers(api, app.term, nil)
	app.sess = session.New(session.NewFileStore(cfg.TokenStorePath))
	app.in = cmd.InOrStdin()

	logger.Debug(ctx, "configuration loaded",
		zap.String("api_url", cfg.APIBaseURL),
		zap.String("token_store", cfg.TokenStorePath),
	)
	return nil
}

// run logs a failed command before handing the error back to cobra
func run(ctx context.Context, name string, err error) error {
	if err != nil {
		logger.Error(ctx, name+" failed", err)
	}
	return err
}
