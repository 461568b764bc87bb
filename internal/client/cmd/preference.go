package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"onepercent/internal/client/api"
	"onepercent/internal/client/form"
	"onepercent/internal/client/ui"
	"onepercent/internal/shared/models"
)

var preferenceSchema = form.Schema{
	{Name: "name", Label: "Preference name", Required: true, Min: 2, Max: 100},
}

func preferenceColumns() []ui.Column[models.Preference] {
	return []ui.Column[models.Preference]{
		{Title: "ID", Render: func(p models.Preference) string { return p.ID }},
		{Title: "Name", Render: func(p models.Preference) string { return p.Name }},
		{Title: "Active", Render: func(p models.Preference) string { return ui.YesNo(p.Active) }},
		{Title: "Created", Render: func(p models.Preference) string { return ui.FormatDate(p.CreatedAt) }},
	}
}

func newPreferencesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "preferences", Short: "Manage user preferences"}
	cmd.AddCommand(newListCmd(e, api.Preferences, preferenceColumns()))
	cmd.AddCommand(newGetCmd[models.Preference](e, api.Preferences))
	cmd.AddCommand(newPreferenceSaveCmd(e, false))
	cmd.AddCommand(newPreferenceSaveCmd(e, true))
	cmd.AddCommand(newDeleteCmd(e, api.Preferences, "preference"))
	return cmd
}

func newPreferenceSaveCmd(e *env, edit bool) *cobra.Command {
	var name string
	var active bool
	use, short := "create", "Create a preference"
	if edit {
		use, short = "update <id>", "Update a preference"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  argsFor(edit),
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := preferenceSchema.Validate(map[string]string{"name": name}); errs.Any() {
				return errs
			}
			body := map[string]any{"name": name, "active": active}
			var err error
			if edit {
				_, err = e.client().Update(cmd.Context(), api.Preferences, args[0], body)
			} else {
				_, err = e.client().Create(cmd.Context(), api.Preferences, body)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Preference saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Preference name")
	cmd.Flags().BoolVar(&active, "active", true, "Whether the preference is selectable")
	return cmd
}

func argsFor(edit bool) cobra.PositionalArgs {
	if edit {
		return cobra.ExactArgs(1)
	}
	return cobra.NoArgs
}
