package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	integration "github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal"
)

const defaultConfigFile = ".integen.yaml"

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "integen [expressions...]",
	Short:            "integen - step-by-step indefinite integral derivations in LaTeX",
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'integen' is entered
			_ = cmd.Help()
			return
		}
		// Format: integen [expr1 expr2 ...] => behaves like the solve subcommand
		solveCmd.Run(solveCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to the configuration file (default .integen.yaml when present)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for the whole run")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
}

func setupLogger() error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = built
	return nil
}

// buildEngine loads the configuration and constructs the derivation
// engine shared by the subcommands.
func buildEngine() (*internal.Engine, integration.Config) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	cfg, err := integration.LoadConfig(path)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	engine, err := integration.New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize derivation engine", zap.Error(err))
	}
	return engine, cfg
}

// runWithTimeout runs f and gives up when ctx expires. The engine has
// no cancellation points of its own, so the deadline is enforced here.
func runWithTimeout(ctx context.Context, f func()) error {
	done := make(chan struct{})
	go func() {
		f()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
