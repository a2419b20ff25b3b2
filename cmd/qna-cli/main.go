package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-qna/internal/config"
	"github.com/jamesainslie/go-qna/internal/logging"
)

// Set by the build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every command needs once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
	cleanup    logging.Cleanup
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, cleanup, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.cleanup = cleanup
	a.logger.Debug("configuration loaded", "command", cmd.Name(), "version", version)
	return nil
}

func (a *app) close() {
	if a.cleanup != nil {
		_ = a.cleanup()
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "qna-cli",
		Short:             "Reshape and clean quiz question/answer datasets",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "pipeline config file (default $QNA_CONFIG or "+config.DefaultPath+")")

	root.AddCommand(
		newRunCmd(a),
		newKeywordCmd(a),
		newFilterAnswersCmd(a),
		newDedupeCmd(a),
		newSimilarCmd(a),
		newSweepCmd(a),
		newCountCategoriesCmd(a),
		newNestCmd(a),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	a := &app{}
	err := fang.Execute(ctx, newRootCmd(a),
		fang.WithVersion(version+" ("+date+")"),
		fang.WithCommit(commit),
	)
	a.close()
	stop()
	if err != nil {
		os.Exit(1)
	}
}
