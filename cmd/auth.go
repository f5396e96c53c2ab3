package cmd

import (
	"fmt"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage upstream API tokens",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthRemoveCmd(app), newAuthListCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var provider string
	var token string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store an API token",
		Long:  "Store an API token in the secrets directory. MATCHDAY_PROVIDERS_<PROVIDER>_TOKEN overrides a stored token.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := app.credentials.SetToken(cmd.Context(), provider, token)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s token stored\n", stored)
			return err
		},
	}

	cmd.Flags().StringVar(&provider, "provider", domain.ProviderFootball.String(), "Upstream provider")
	cmd.Flags().StringVar(&token, "token", "", "API token")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a stored API token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.credentials.RemoveToken(cmd.Context(), provider)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", domain.ProviderFootball.String(), "Upstream provider")

	return cmd
}

func newAuthListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List providers with a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := app.credentials.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(stored) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No tokens stored.")
				return err
			}

			for _, entry := range stored {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", entry.Provider, entry.Masked)
			}
			return nil
		},
	}
}
