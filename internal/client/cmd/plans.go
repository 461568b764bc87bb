package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"onepercent/internal/client/api"
	"onepercent/internal/client/form"
	"onepercent/internal/client/ui"
	"onepercent/internal/shared/models"
)

var planSchema = form.Schema{
	{Name: "title", Label: "Plan title", Required: true, Min: 2, Max: 150},
	{Name: "description", Label: "Plan description", Required: true, RichText: true},
}

func planColumns(c *api.Client) []ui.Column[models.Plan] {
	return []ui.Column[models.Plan]{
		{Title: "ID", Render: func(p models.Plan) string { return p.ID }},
		{Title: "Title", Render: func(p models.Plan) string { return ui.Truncate(p.Title, 40) }},
		{Title: "Image", Render: func(p models.Plan) string {
			if p.Image == "" {
				return "No Image"
			}
			return c.ImageURL(p.Image)
		}},
		{Title: "Created", Render: func(p models.Plan) string { return ui.FormatDate(p.CreatedAt) }},
	}
}

// newGymPlansCmd covers the gym-and-fitness screen; create/update submit
// multipart because plans carry an image.
func newGymPlansCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "gym-plans", Short: "Manage gym & fitness plans"}
	cmd.AddCommand(newPlanListCmd(e, api.GymPlans))
	cmd.AddCommand(newGetCmd[models.Plan](e, api.GymPlans))
	cmd.AddCommand(newGymPlanSaveCmd(e, false))
	cmd.AddCommand(newGymPlanSaveCmd(e, true))
	cmd.AddCommand(newDeleteCmd(e, api.GymPlans, "plan"))
	return cmd
}

// newBusinessPlansCmd covers the business-and-mindset screen; plain JSON
// bodies, no image.
func newBusinessPlansCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "business-plans", Short: "Manage business & mindset plans"}
	cmd.AddCommand(newPlanListCmd(e, api.BusinessPlans))
	cmd.AddCommand(newGetCmd[models.Plan](e, api.BusinessPlans))
	cmd.AddCommand(newBusinessPlanSaveCmd(e, false))
	cmd.AddCommand(newBusinessPlanSaveCmd(e, true))
	cmd.AddCommand(newDeleteCmd(e, api.BusinessPlans, "plan"))
	return cmd
}

func newPlanListCmd(e *env, res api.Resource) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := e.client()
			page, err := api.List[models.Plan](cmd.Context(), c, res, flags.params())
			if err != nil {
				return err
			}
			ui.RenderTable(cmd.OutOrStdout(), planColumns(c), page.Data, page.Pagination)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newGymPlanSaveCmd(e *env, edit bool) *cobra.Command {
	var title, description, imagePath string
	use, short := "create", "Create a gym & fitness plan"
	if edit {
		use, short = "update <id>", "Update a gym & fitness plan"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  argsFor(edit),
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := planSchema.Validate(map[string]string{"title": title, "description": description}); errs.Any() {
				return errs
			}
			var img *api.ImageFile
			if imagePath != "" {
				var err error
				img, err = api.LoadImage(imagePath)
				if err != nil {
					return err
				}
			} else if !edit {
				// create requires a file; edit may keep the existing image
				return fmt.Errorf("Image is required")
			}
			fields := map[string]string{"title": title, "description": description}
			c := e.client()
			var err error
			if edit {
				_, err = c.UpdateMultipart(cmd.Context(), api.GymPlans, args[0], fields, img)
			} else {
				_, err = c.CreateMultipart(cmd.Context(), api.GymPlans, fields, img)
			}
			if err != nil {
				return describeFieldError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Plan saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Plan title")
	cmd.Flags().StringVar(&description, "description", "", "Plan description (HTML)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to the plan image")
	return cmd
}

func newBusinessPlanSaveCmd(e *env, edit bool) *cobra.Command {
	var title, description string
	use, short := "create", "Create a business & mindset plan"
	if edit {
		use, short = "update <id>", "Update a business & mindset plan"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  argsFor(edit),
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := planSchema.Validate(map[string]string{"title": title, "description": description}); errs.Any() {
				return errs
			}
			body := map[string]string{"title": title, "description": description}
			var err error
			if edit {
				_, err = e.client().Update(cmd.Context(), api.BusinessPlans, args[0], body)
			} else {
				_, err = e.client().Create(cmd.Context(), api.BusinessPlans, body)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Plan saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Plan title")
	cmd.Flags().StringVar(&description, "description", "", "Plan description (HTML)")
	return cmd
}

// describeFieldError surfaces a field-specific backend message (like the
// image path error) ahead of the generic one.
func describeFieldError(err error) error {
	if apiErr, ok := err.(*api.APIError); ok {
		if msg, found := apiErr.FieldMessage("image"); found {
			return fmt.Errorf("image: %s", msg)
		}
	}
	return err
}
