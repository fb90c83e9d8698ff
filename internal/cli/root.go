package cli

import (
	"fmt"

	"job-match/internal/config"
	"job-match/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const app = "jobmatch"

type rootOptions struct {
	cfgFile string
	debug   bool
	json    bool
}

// Execute runs the jobmatch command tree.
func Execute() error {
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           app,
		Short:         app + " ranks job listings against candidate skills and tracks applications",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "a YAML config file; environment variables take precedence")
	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolVarP(&opts.json, "json", "j", false, "json format for logging")

	root.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newImportCommand(opts),
		newTokenCommand(opts),
		newVersionCommand(),
	)
	return root
}

// load reads the config and builds a logger honouring --debug and --json.
func (o *rootOptions) load() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	if o.debug {
		cfg.Log.Level = "debug"
	}
	if o.json {
		cfg.Log.Format = "json"
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, log.With(zap.String("app", cfg.App.AppName), zap.String("env", cfg.App.Environment)), nil
}
