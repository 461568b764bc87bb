package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"onepercent/internal/client/api"
	"onepercent/internal/client/ui"
	"onepercent/internal/shared/models"
)

func newNotificationsCmd(e *env) *cobra.Command {
	cols := []ui.Column[models.Notification]{
		{Title: "ID", Render: func(n models.Notification) string { return n.ID }},
		{Title: "Title", Render: func(n models.Notification) string { return ui.Truncate(n.Title, 30) }},
		{Title: "Message", Render: func(n models.Notification) string { return ui.Truncate(n.Message, 50) }},
		{Title: "Read", Render: func(n models.Notification) string { return ui.YesNo(n.Read) }},
		{Title: "At", Render: func(n models.Notification) string { return ui.FormatDate(n.CreatedAt) }},
	}
	cmd := &cobra.Command{Use: "notifications", Short: "Browse notifications"}
	cmd.AddCommand(newListCmd(e, api.Notifications, cols))
	cmd.AddCommand(&cobra.Command{
		Use:   "mark-read <id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.client().MarkNotificationRead(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Marked as read")
			return nil
		},
	})
	return cmd
}
