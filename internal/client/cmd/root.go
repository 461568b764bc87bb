package cmd

import (
	"github.com/spf13/cobra"

	"onepercent/internal/client/api"
)

// env carries what every command needs: the server flag and the injected
// credential store. Commands build a fresh API client per invocation.
type env struct {
	serverURL *string
	tokens    *api.FileTokenStore
}

func (e *env) client() *api.Client {
	return api.New(*e.serverURL, e.tokens)
}

func NewRootCmd(version, buildDate string) *cobra.Command {
	var serverURL string
	root := &cobra.Command{
		Use:   "onepercent",
		Short: "Road-to-1% admin CLI",
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:5000/api/v1", "API base URL")

	e := &env{serverURL: &serverURL, tokens: api.DefaultTokenStore()}

	root.AddCommand(newVersionCmd(version, buildDate))
	root.AddCommand(newAuthCmd(e))
	root.AddCommand(newProfileCmd(e))
	root.AddCommand(newUsersCmd(e))
	root.AddCommand(newStatsCmd(e))
	root.AddCommand(newPreferencesCmd(e))
	root.AddCommand(newGymPlansCmd(e))
	root.AddCommand(newBusinessPlansCmd(e))
	root.AddCommand(newMealCategoriesCmd(e))
	root.AddCommand(newMealsCmd(e))
	root.AddCommand(newOrdersCmd(e))
	root.AddCommand(newNotificationsCmd(e))
	return root
}
