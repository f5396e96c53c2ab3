package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "matchday",
		Short:         "matchday: football, movie and wiki lookups for chat",
		Long:          "matchday answers chat commands with paginated, button driven views backed by cached football, movie catalog and game wiki data. Run \"matchday chat\" for an interactive session.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if verbose {
			app.logLevel.SetLevel(zapcore.DebugLevel)
		}
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		_ = app.logger.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(app),
		newMovieCmd(app),
		newFixturesCmd(app),
		newStandingsCmd(app),
		newLiveCmd(app),
		newDashboardCmd(app),
		newWikiCmd(app),
		newTrackCmd(app),
		newToggleCmd(app),
		newAuthCmd(app),
	)

	return rootCmd
}
