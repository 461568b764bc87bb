package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"onepercent/internal/client/api"
	"onepercent/internal/client/ui"
	"onepercent/internal/shared/models"
)

func newUsersCmd(e *env) *cobra.Command {
	cols := []ui.Column[models.User]{
		{Title: "ID", Render: func(u models.User) string { return u.ID }},
		{Title: "Name", Render: func(u models.User) string { return u.Name }},
		{Title: "Email", Render: func(u models.User) string { return u.Email }},
		{Title: "Role", Render: func(u models.User) string { return u.Role }},
		{Title: "Status", Render: func(u models.User) string { return u.Status }},
		{Title: "Joined", Render: func(u models.User) string { return ui.FormatDate(u.CreatedAt) }},
	}
	cmd := &cobra.Command{Use: "users", Short: "Manage app users"}
	cmd.AddCommand(newListCmd(e, api.Users, cols))
	cmd.AddCommand(newToggleStatusCmd(e))
	return cmd
}

func newToggleStatusCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-status <id>",
		Short: "Toggle a user between active and blocked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.client().ToggleUserStatus(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Status updated")
			return nil
		},
	}
}
