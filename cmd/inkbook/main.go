package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glabrego/inkbook/internal/config"
	"github.com/glabrego/inkbook/internal/logging"
)

// appEnv is what every subcommand needs once the root command has loaded
// configuration.
type appEnv struct {
	cfg    config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	env := &appEnv{logger: zap.NewNop()}
	var verbose bool

	browse := newBrowseCmd(env)
	cmd := &cobra.Command{
		Use:           "inkbook",
		Short:         "Browse the studio gallery and publish its blog feeds",
		Long:          `inkbook browses the studio's tattoo gallery in the terminal and generates the blog RSS feed and schema.org documents for the site.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			logger, err := logging.New(cfg.LogPath, verbose)
			if err != nil {
				return err
			}
			env.cfg = cfg
			env.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = env.logger.Sync()
		},
		RunE: browse.RunE,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug entries to the log file")
	cmd.Flags().AddFlagSet(browse.Flags())

	cmd.AddCommand(browse)
	cmd.AddCommand(newFeedCmd(env))
	cmd.AddCommand(newSchemaCmd(env))
	cmd.AddCommand(newStylesCmd(env))
	cmd.AddCommand(newPostCmd(env))
	return cmd
}
