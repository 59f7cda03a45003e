package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tripflow/planner/internal/domain"
)

func tripsCommand(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "list and create trips",
	}
	cmd.AddCommand(tripsListCommand(load), tripsCreateCommand(load))
	return cmd
}

func tripsListCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list the user's trips, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, closeFn, err := open(cmd, load)
			if err != nil {
				return err
			}
			defer closeFn()

			trips, err := s.Trips.List(cmdContext(cmd), s.userID)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tSTART\tEND")
			for _, t := range trips {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Title, domain.DateKey(t.StartDate), domain.DateKey(t.EndDate))
			}
			return tw.Flush()
		},
	}
}

func tripsCreateCommand(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "create a trip",
		Example: `tripctl trips create --title "Jordan Adventure" --start 2025-11-06 --end 2025-11-09`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			title, err := requireFlag(cmd, "title")
			if err != nil {
				return err
			}
			start, err := dateFlag(cmd, "start")
			if err != nil {
				return err
			}
			end, err := dateFlag(cmd, "end")
			if err != nil {
				return err
			}
			notes, _ := cmd.Flags().GetString("notes")

			s, closeFn, err := open(cmd, load)
			if err != nil {
				return err
			}
			defer closeFn()

			trip, err := s.Trips.Create(cmdContext(cmd), domain.Trip{
				UserID:    s.userID,
				Title:     title,
				StartDate: start,
				EndDate:   end,
				Notes:     notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created trip %s (%s to %s)\n",
				trip.ID, domain.DateKey(trip.StartDate), domain.DateKey(trip.EndDate))
			return nil
		},
	}
	cmd.Flags().String("title", "", "trip title (required)")
	cmd.Flags().String("start", "", "first day, YYYY-MM-DD (default today when --end is also omitted)")
	cmd.Flags().String("end", "", "last day, YYYY-MM-DD (default start; three days after today when both are omitted)")
	cmd.Flags().String("notes", "", "free-form notes")
	return cmd
}

// dateFlag parses a YYYY-MM-DD flag. An unset flag yields the zero time.
func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return time.Time{}, nil
	}
	d, err := domain.ParseDate(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}
