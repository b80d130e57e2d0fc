// Package main provides the gibbs command line tool.
//
// Usage:
//
//	gibbs fit FILE [--constant C] [--output text|json|csv] [--chart out.png]
//	gibbs terms [--start 298 --end 495 --step 30] [--output csv|json|text] [--chart out.png]
//	gibbs plot-terms FILE.csv --chart out.png
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"calphad-sn/internal/config"
	"calphad-sn/internal/domain/gibbs"
	"calphad-sn/internal/observability/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	logLevel         string
	coefficientsFile string

	logger       *slog.Logger
	coefficients gibbs.Coefficients
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gibbs",
		Short: "Fit and tabulate the Gibbs free energy of BCT Sn",
		Long: `gibbs fits alpha in E(T) = constant + alpha·T·ln(T) to measured total
energies and decomposes the BCT Sn Gibbs free energy into its six terms.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", envLogLevel(), "log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&opts.coefficientsFile, "coefficients", os.Getenv("COEFFICIENTS_FILE"),
		"YAML file replacing the BCT Sn coefficients")

	cmd.AddCommand(
		newFitCmd(opts),
		newTermsCmd(opts),
		newPlotTermsCmd(opts),
	)
	return cmd
}

func (o *rootOptions) init(stderr io.Writer) error {
	o.logger = logging.NewTextLogger(stderr, logging.ParseLevel(o.logLevel))

	c, err := config.LoadCoefficients(o.coefficientsFile)
	if err != nil {
		return err
	}
	o.coefficients = c
	if o.coefficientsFile != "" {
		o.logger.Debug("coefficients loaded", slog.String("file", o.coefficientsFile))
	}
	return nil
}

func envLogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "warn"
}
