package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"onepercent/internal/client/api"
	"onepercent/internal/client/ui"
	"onepercent/internal/shared/models"
)

// newOrdersCmd covers the store screen: orders are synced from the
// e-commerce platform and read-only here.
func newOrdersCmd(e *env) *cobra.Command {
	cols := []ui.Column[models.Order]{
		{Title: "ID", Render: func(o models.Order) string { return o.ID }},
		{Title: "Order", Render: func(o models.Order) string { return o.Name }},
		{Title: "Amount", Render: func(o models.Order) string { return o.Price + " " + o.Currency }},
		{Title: "Items", Render: func(o models.Order) string { return strconv.Itoa(o.TotalItems) }},
		{Title: "Placed", Render: func(o models.Order) string { return ui.FormatDate(o.CreatedAt) }},
	}
	cmd := &cobra.Command{Use: "orders", Short: "Browse synced store orders"}
	cmd.AddCommand(newListCmd(e, api.Orders, cols))
	cmd.AddCommand(newOrderHistoryCmd(e))
	return cmd
}

func newOrderHistoryCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show one order with its line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := e.client().OrderHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, details)
		},
	}
}
