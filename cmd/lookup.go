package cmd

import (
	"context"
	"fmt"

	chatrender "github.com/bnema/matchday-bot/internal/adapters/render/chat"
	"github.com/bnema/matchday-bot/internal/application"
	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/spf13/cobra"
)

const defaultCLIUser = "cli"

// lookupCommand describes a one-shot command that answers with the first view of a bot command.
type lookupCommand struct {
	use     string
	aliases []string
	short   string
	args    cobra.PositionalArgs
	command string
	label   string
}

func newLookupCmd(app *app, def lookupCommand) *cobra.Command {
	var user string
	var showTokens bool

	cmd := &cobra.Command{
		Use:     def.use,
		Aliases: def.aliases,
		Short:   def.short,
		Args:    def.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv := domain.Invocation{Command: def.command, Args: args, InvokerID: domain.UserID(user)}

			fetch := func(ctx context.Context) (application.Reply, error) {
				return app.bot.HandleCommand(ctx, inv)
			}
			reply, err := runLookup(cmd.Context(), cmd.ErrOrStderr(), def.label, app.clock.Now, fetch)
			if err != nil {
				return err
			}

			return printView(cmd, app, reply.View, chatrender.RenderOptions{ShowTokens: showTokens})
		},
	}

	cmd.Flags().StringVar(&user, "user", defaultCLIUser, "User the command runs as (selects stored settings)")
	cmd.Flags().BoolVar(&showTokens, "tokens", false, "Print navigation tokens beside controls")

	return cmd
}

func newMovieCmd(app *app) *cobra.Command {
	return newLookupCmd(app, lookupCommand{
		use:     "movie <title>",
		aliases: []string{"movies"},
		short:   "Search the movie catalog",
		args:    cobra.MinimumNArgs(1),
		command: "movie",
		label:   "Searching movies...",
	})
}

func newFixturesCmd(app *app) *cobra.Command {
	return newLookupCmd(app, lookupCommand{
		use:     "fixtures <team-id>",
		short:   "Show upcoming fixtures of a team",
		args:    cobra.ExactArgs(1),
		command: "fixtures",
		label:   "Fetching fixtures...",
	})
}

func newStandingsCmd(app *app) *cobra.Command {
	return newLookupCmd(app, lookupCommand{
		use:     "standings [competition]",
		short:   "Show a league table",
		args:    cobra.MaximumNArgs(1),
		command: "standings",
		label:   "Fetching standings...",
	})
}

func newLiveCmd(app *app) *cobra.Command {
	return newLookupCmd(app, lookupCommand{
		use:     "live",
		short:   "Show matches in play",
		args:    cobra.NoArgs,
		command: "live",
		label:   "Fetching live matches...",
	})
}

func newDashboardCmd(app *app) *cobra.Command {
	return newLookupCmd(app, lookupCommand{
		use:     "dashboard",
		short:   "Show the next and last match of every tracked team",
		args:    cobra.NoArgs,
		command: "dashboard",
		label:   "Fetching dashboard...",
	})
}

func newWikiCmd(app *app) *cobra.Command {
	return newLookupCmd(app, lookupCommand{
		use:     "wiki [category]",
		short:   "Browse game wiki records",
		args:    cobra.ArbitraryArgs,
		command: "wiki",
		label:   "Loading wiki...",
	})
}

func printView(cmd *cobra.Command, app *app, view domain.View, opts chatrender.RenderOptions) error {
	rendered, err := app.render(view, opts)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
