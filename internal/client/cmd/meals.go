package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"onepercent/internal/client/api"
	"onepercent/internal/client/form"
	"onepercent/internal/client/ui"
	"onepercent/internal/shared/models"
)

var (
	mealCategorySchema = form.Schema{
		{Name: "title", Label: "Category title", Required: true, Min: 2, Max: 100},
	}
	mealSchema = form.Schema{
		{Name: "mealCategory", Label: "Meal category", Required: true},
		{Name: "name", Label: "Meal name", Required: true, Min: 2, Max: 100},
		{Name: "description", Label: "Meal description", RichText: true},
	}
)

func newMealCategoriesCmd(e *env) *cobra.Command {
	cols := []ui.Column[models.MealCategory]{
		{Title: "ID", Render: func(c models.MealCategory) string { return c.ID }},
		{Title: "Title", Render: func(c models.MealCategory) string { return c.Title }},
		{Title: "Created", Render: func(c models.MealCategory) string { return ui.FormatDate(c.CreatedAt) }},
	}
	cmd := &cobra.Command{Use: "meal-categories", Short: "Manage meal & recipe categories"}
	cmd.AddCommand(newListCmd(e, api.MealCategories, cols))
	cmd.AddCommand(newGetCmd[models.MealCategory](e, api.MealCategories))
	cmd.AddCommand(newMealCategorySaveCmd(e, false))
	cmd.AddCommand(newMealCategorySaveCmd(e, true))
	cmd.AddCommand(newDeleteCmd(e, api.MealCategories, "category"))
	return cmd
}

func newMealCategorySaveCmd(e *env, edit bool) *cobra.Command {
	var title string
	use, short := "create", "Create a category"
	if edit {
		use, short = "update <id>", "Update a category"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  argsFor(edit),
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := mealCategorySchema.Validate(map[string]string{"title": title}); errs.Any() {
				return errs
			}
			body := map[string]string{"title": title}
			var err error
			if edit {
				_, err = e.client().Update(cmd.Context(), api.MealCategories, args[0], body)
			} else {
				_, err = e.client().Create(cmd.Context(), api.MealCategories, body)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Category saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Category title")
	return cmd
}

func newMealsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "meals", Short: "Manage meals & recipes"}
	cmd.AddCommand(newMealListCmd(e))
	cmd.AddCommand(newGetCmd[models.Meal](e, api.Meals))
	cmd.AddCommand(newMealSaveCmd(e, false))
	cmd.AddCommand(newMealSaveCmd(e, true))
	cmd.AddCommand(newDeleteCmd(e, api.Meals, "meal"))
	return cmd
}

func newMealListCmd(e *env) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meals",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := e.client()
			cols := []ui.Column[models.Meal]{
				{Title: "ID", Render: func(m models.Meal) string { return m.ID }},
				{Title: "Name", Render: func(m models.Meal) string { return m.Name }},
				{Title: "Category", Render: func(m models.Meal) string {
					if m.Category.Embedded {
						return m.Category.Title
					}
					return m.Category.ID
				}},
				{Title: "Image", Render: func(m models.Meal) string {
					if m.Image == "" {
						return "No Image"
					}
					return c.ImageURL(m.Image)
				}},
				{Title: "Created", Render: func(m models.Meal) string { return ui.FormatDate(m.CreatedAt) }},
			}
			page, err := api.List[models.Meal](cmd.Context(), c, api.Meals, flags.params())
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

func newMealSaveCmd(e *env, edit bool) *cobra.Command {
	var name, category, description, imagePath string
	use, short := "create", "Create a meal"
	if edit {
		use, short = "update <id>", "Update a meal"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  argsFor(edit),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := e.client()
			values := map[string]string{"mealCategory": category, "name": name, "description": description}
			if edit {
				// edit pre-populates from the current record; flags override
				current, err := api.Get[models.Meal](cmd.Context(), c, api.Meals, args[0])
				if err != nil && err != api.ErrSkipped {
					return err
				}
				if values["name"] == "" {
					values["name"] = current.Name
				}
				if values["mealCategory"] == "" {
					values["mealCategory"] = current.Category.ID
				}
				if values["description"] == "" {
					values["description"] = current.Description
				}
			}
			if errs := mealSchema.Validate(values); errs.Any() {
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
				return fmt.Errorf("Image is required")
			}
			var err error
			if edit {
				_, err = c.UpdateMultipart(cmd.Context(), api.Meals, args[0], values, img)
			} else {
				_, err = c.CreateMultipart(cmd.Context(), api.Meals, values, img)
			}
			if err != nil {
				return describeFieldError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Meal saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Meal name")
	cmd.Flags().StringVar(&category, "category", "", "Meal category id")
	cmd.Flags().StringVar(&description, "description", "", "Meal description (HTML)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to the meal image")
	return cmd
}
