package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/rocket-motor-showroom/config"
	"github.com/yourusername/rocket-motor-showroom/internal/app"
	logx "github.com/yourusername/rocket-motor-showroom/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	verbose bool
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "showroom",
		Short:         "Rocket Motor Company showroom backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			logx.Init(logx.LoggerOpts{
				Environment: cfg.Environment(),
				Verbose:     opts.verbose,
				Output:      cmd.ErrOrStderr(),
			})
			return nil
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug level logging")

	cmd.AddCommand(
		newServeCmd(opts),
		newCompareCmd(opts),
		newImportCmd(opts),
		newCategoriesCmd(opts),
	)
	return cmd
}

// withApp ilovani ochib fn ni chaqiradi va yopadi
func withApp(ctx context.Context, opts *rootOptions, fn func(*app.App) error) error {
	a, err := app.New(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logx.Warn().Err(err).Msg("resurslarni yopishda xatolik")
		}
	}()
	return fn(a)
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, hero carousel and Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(a *app.App) error {
				logx.Info().Str("addr", opts.cfg.HTTPAddr).Str("env", opts.cfg.Environment().String()).Msg("showroom ishga tushmoqda")
				return a.Serve(cmd.Context())
			})
		},
	}
}
