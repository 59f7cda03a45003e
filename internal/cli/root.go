// Package cli implements tripctl, the operator command line for the planner.
// Every command runs against the same backend the API server would select.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tripflow/planner/internal/app"
	"github.com/tripflow/planner/internal/config"
)

// Loader returns the configuration commands run with. config.Load in
// production; tests substitute a fixed Config.
type Loader func() (config.Config, error)

// NewRootCmd builds the tripctl command tree.
func NewRootCmd(load Loader) *cobra.Command {
	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "manage TripFlow trips and itineraries",
		Long:          `tripctl applies database migrations and reads or edits trips and their day-by-day itineraries from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("user", "", "user id (defaults to DEFAULT_USER_ID)")

	root.AddCommand(migrateCommand(load))
	root.AddCommand(tripsCommand(load))
	root.AddCommand(itineraryCommand(load))
	return root
}

// session is an opened application plus the user commands act for.
type session struct {
	*app.App
	userID string
}

// open loads configuration and builds the application. Logs go to stderr so
// command output stays clean. The returned func must be deferred.
func open(cmd *cobra.Command, load Loader) (*session, func(), error) {
	cfg, err := load()
	if err != nil {
		return nil, nil, err
	}
	logger := app.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	a, closeFn, err := app.Build(cmdContext(cmd), cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	userID, _ := cmd.Flags().GetString("user")
	if userID == "" {
		userID = cfg.DefaultUserID
	}
	return &session{App: a, userID: userID}, closeFn, nil
}

// cmdContext returns the command's context, which cobra leaves nil outside
// ExecuteContext.
func cmdContext(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

func requireFlag(cmd *cobra.Command, name string) (string, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return "", fmt.Errorf("--%s is required", name)
	}
	return v, nil
}
