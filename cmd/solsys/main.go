package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/dylan-thinnes/solsys/config"
	"github.com/dylan-thinnes/solsys/tree"
)

type options struct {
	mode       mode
	debug      bool
	format     string
	configPath string
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "solsys [flags] <numbers...>",
	Short: "Recursive factorization trees annotated with prime-counting statistics",
	Long: `Decompose positive integers into recursive factorization trees.

Each factor group carries pi(base). Exponents and the gaps between pi values of
consecutive factors are decomposed recursively. Trees are printed one per line.

Examples:
  # Recursive tree (default)
  solsys 720720

  # Flat factorization
  solsys -f 12345678901234567890

  # Prime-counting function and logarithmic integral
  solsys -p 1000000
  solsys -l 1000000
  solsys -e 1000000

When more than one demo mode is given, the last one wins.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cmd, args)
	},
}

func init() {
	flags := rootCmd.Flags()
	addModeFlags(flags, &opts.mode)
	flags.BoolVarP(&opts.debug, "debug", "d", false, "print debug info")
	flags.StringVar(&opts.format, "format", string(tree.FormatJSON), "output format of recursive demo: json or yaml")
	flags.StringVar(&opts.configPath, "config", "", "path to YAML config file")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cobra.Command, args []string) error {
	mode := opts.mode
	format, err := tree.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	log, err := newLogger(opts.debug)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()
	ctx = logger.WithLogger(ctx, log)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	d, err := newDemo(cfg, mode, format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	log.Debug("Starting demo", zap.Stringer("mode", mode))

	err = parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		spawn("demo", parallel.Exit, func(ctx context.Context) error {
			return d.RunAll(ctx, args)
		})
		spawn("signals", parallel.Fail, func(ctx context.Context) error {
			return watchSignals(ctx)
		})
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchSignals returns error on SIGINT or SIGTERM, causing running decomposition to be interrupted.
func watchSignals(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGINT, unix.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case sig := <-sigCh:
		logger.Get(ctx).Info("Received signal, shutting down", zap.Stringer("signal", sig))
		return errors.Errorf("received signal %s", sig)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return logger.New(logger.DefaultConfig), nil
	}
	log, err := zap.NewDevelopmentConfig().Build()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return log, nil
}
