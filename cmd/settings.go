package cmd

import (
	chatrender "github.com/bnema/matchday-bot/internal/adapters/render/chat"
	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/spf13/cobra"
)

func newTrackCmd(app *app) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Manage the teams shown on your dashboard",
	}
	cmd.PersistentFlags().StringVar(&user, "user", defaultCLIUser, "User whose settings change")

	run := func(action string) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return runSettingsCommand(cmd, app, user, "track", append([]string{action}, args...))
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "add <team-id>", Short: "Track a team", Args: cobra.ExactArgs(1), RunE: run("add")},
		&cobra.Command{Use: "remove <team-id>", Short: "Stop tracking a team", Args: cobra.ExactArgs(1), RunE: run("remove")},
		&cobra.Command{Use: "list", Short: "List tracked teams", Args: cobra.NoArgs, RunE: run("list")},
	)

	return cmd
}

func newToggleCmd(app *app) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "toggle <feature> <on|off>",
		Short: "Switch a display feature (compact, scores)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsCommand(cmd, app, user, "toggle", args)
		},
	}
	cmd.Flags().StringVar(&user, "user", defaultCLIUser, "User whose settings change")

	return cmd
}

func runSettingsCommand(cmd *cobra.Command, app *app, user, command string, args []string) error {
	reply, err := app.bot.HandleCommand(cmd.Context(), domain.Invocation{
		Command:   command,
		Args:      args,
		InvokerID: domain.UserID(user),
	})
	if err != nil {
		return err
	}

	return printView(cmd, app, reply.View, chatrender.RenderOptions{})
}
