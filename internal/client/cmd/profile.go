package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"onepercent/internal/client/api"
)

func newProfileCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "profile", Short: "Manage the signed-in account"}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := e.client().Profile(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, user)
		},
	})

	var name, imagePath string
	update := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]string{}
			if name != "" {
				fields["name"] = name
			}
			var img *api.ImageFile
			if imagePath != "" {
				var err error
				img, err = api.LoadImage(imagePath)
				if err != nil {
					return err
				}
			}
			if len(fields) == 0 && img == nil {
				return fmt.Errorf("nothing to update")
			}
			if err := e.client().UpdateProfile(cmd.Context(), fields, img); err != nil {
				return describeFieldError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "Display name")
	update.Flags().StringVar(&imagePath, "image", "", "Path to a new profile image")
	cmd.AddCommand(update)

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Delete the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete the account without --yes")
			}
			password, err := promptPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			if err := e.client().DeleteAccount(cmd.Context(), string(password)); err != nil {
				return err
			}
			if err := e.tokens.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account deleted")
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	cmd.AddCommand(deleteCmd)

	return cmd
}
