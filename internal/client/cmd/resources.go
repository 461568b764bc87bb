package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"onepercent/internal/client/api"
	"onepercent/internal/client/ui"
)

// listFlags are the pagination and search parameters shared by every list
// screen. Search resets the page to 1, matching the dashboard tables;
// changing the limit alone keeps the current page.
type listFlags struct {
	page   int
	limit  int
	search string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.limit, "limit", 10, "Page size")
	cmd.Flags().StringVar(&f.search, "search", "", "Search term")
}

func (f *listFlags) params() api.ListParams {
	page := f.page
	if f.search != "" {
		page = 1
	}
	return api.ListParams{Page: page, Limit: f.limit, SearchTerm: f.search}
}

// newListCmd is the generic list screen: fetch one page, render the table.
func newListCmd[T any](e *env, res api.Resource, cols []ui.Column[T]) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := api.List[T](cmd.Context(), e.client(), res, flags.params())
			if err != nil {
				return err
			}
			ui.RenderTable(cmd.OutOrStdout(), cols, page.Data, page.Pagination)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// newGetCmd is the generic view modal: fetch one record, print it.
func newGetCmd[T any](e *env, res api.Resource) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := api.Get[T](cmd.Context(), e.client(), res, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		},
	}
}

// newDeleteCmd is the generic destructive row action, gated behind --yes.
func newDeleteCmd(e *env, res api.Resource, singular string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %s %s without --yes", singular, args[0])
			}
			if err := e.client().Delete(cmd.Context(), res, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
