package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/export"
	"github.com/tripflow/planner/internal/planner"
)

func itineraryCommand(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "itinerary",
		Aliases: []string{"it"},
		Short:   "show, edit, generate and export a trip's itinerary",
	}
	cmd.AddCommand(
		itineraryShowCommand(load),
		itineraryAddCommand(load),
		itineraryGenerateCommand(load),
		itineraryExportCommand(load),
	)
	return cmd
}

// withPlanner opens the application and the user's planner for the trip in args[0].
func withPlanner(cmd *cobra.Command, load Loader, args []string, fn func(*session, *planner.Planner) error) error {
	tripID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid trip id %q", args[0])
	}
	s, closeFn, err := open(cmd, load)
	if err != nil {
		return err
	}
	defer closeFn()

	p, err := s.Sessions.Planner(cmdContext(cmd), s.userID, tripID, false)
	if err != nil {
		return err
	}
	return fn(s, p)
}

func itineraryShowCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "show <tripID>",
		Short: "print the itinerary grouped by day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, load, args, func(_ *session, p *planner.Planner) error {
				printView(cmd.OutOrStdout(), p.Trip(), p.Days())
				return nil
			})
		},
	}
}

func printView(w io.Writer, trip domain.Trip, view planner.View) {
	fmt.Fprintf(w, "%s (%s to %s)\n", trip.Title, domain.DateKey(trip.StartDate), domain.DateKey(trip.EndDate))
	for i, day := range view.Days {
		fmt.Fprintf(w, "\nDay %d  %s\n", i+1, day.Date.Format("Mon, Jan 2"))
		if len(day.Items) == 0 {
			fmt.Fprintln(w, "  (nothing planned)")
		}
		for _, it := range day.Items {
			printItem(w, it)
		}
	}
	if len(view.Unplaced) > 0 {
		fmt.Fprintln(w, "\nOutside the trip dates")
		for _, it := range view.Unplaced {
			printItem(w, it)
		}
	}
}

func printItem(w io.Writer, it domain.ItineraryItem) {
	clock := it.Time
	if clock == "" {
		clock = "--:--"
	}
	title := it.Title
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("  %s  %-8s %s", clock, it.Type, title)
	if it.Location != "" {
		line += " @ " + it.Location
	}
	fmt.Fprintf(w, "%s  [%s]\n", line, it.ID)
}

func itineraryAddCommand(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <tripID>",
		Short:   "add a blank item to a day",
		Example: "tripctl itinerary add 7f2c9a4e-0b1d-4c7e-9a51-000000000001 --date 2025-11-08 --type HOTEL",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateFlag(cmd, "date")
			if err != nil {
				return err
			}
			if date.IsZero() {
				return fmt.Errorf("--date is required")
			}
			typeName, _ := cmd.Flags().GetString("type")
			kind, ok := domain.ParseActivityType(typeName)
			if !ok {
				return fmt.Errorf("unknown activity type %q", typeName)
			}

			return withPlanner(cmd, load, args, func(_ *session, p *planner.Planner) error {
				it, err := p.AddItem(cmdContext(cmd), date, kind)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s %s on %s\n", it.Type, it.ID, domain.DateKey(it.Date))
				return nil
			})
		},
	}
	cmd.Flags().String("date", "", "day to add to, YYYY-MM-DD (required)")
	cmd.Flags().String("type", string(domain.ActivityActivity), "activity type")
	return cmd
}

func itineraryGenerateCommand(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate <tripID>",
		Short:   "ask Gemini to draft items and add them",
		Example: `tripctl itinerary generate 7f2c9a4e-0b1d-4c7e-9a51-000000000001 --prompt "a relaxed day in Wadi Rum"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := requireFlag(cmd, "prompt")
			if err != nil {
				return err
			}
			prompt = strings.TrimSpace(prompt)

			return withPlanner(cmd, load, args, func(s *session, p *planner.Planner) error {
				if !s.Generator.Enabled() {
					return fmt.Errorf("itinerary generation needs GEMINI_API_KEY")
				}
				trip := p.Trip()
				drafts, err := s.Generator.Generate(cmdContext(cmd), trip.ID, prompt, trip.StartDate)
				if err != nil {
					return err
				}
				added, failed := p.AddGenerated(cmdContext(cmd), drafts)
				out := cmd.OutOrStdout()
				for _, it := range added {
					printItem(out, it)
				}
				fmt.Fprintf(out, "added %d items, %d failed\n", len(added), failed)
				return nil
			})
		},
	}
	cmd.Flags().String("prompt", "", "what to plan (required)")
	return cmd
}

func itineraryExportCommand(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export <tripID>",
		Short:   "write the itinerary as CSV or PDF",
		Example: "tripctl itinerary export 7f2c9a4e-0b1d-4c7e-9a51-000000000001 --format pdf --out jordan.pdf",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			format = strings.ToLower(format)
			if format != "csv" && format != "pdf" {
				return fmt.Errorf("--format must be csv or pdf")
			}
			outPath, _ := cmd.Flags().GetString("out")

			return withPlanner(cmd, load, args, func(_ *session, p *planner.Planner) error {
				render := func(w io.Writer) error {
					if format == "pdf" {
						return export.WritePDF(w, p.Trip(), p.Days())
					}
					return export.WriteCSV(w, p.Trip(), p.Days())
				}
				if outPath == "" {
					return render(cmd.OutOrStdout())
				}
				return writeFile(outPath, render)
			})
		},
	}
	cmd.Flags().String("format", "csv", "csv or pdf")
	cmd.Flags().String("out", "", "output file (default stdout)")
	return cmd
}

// writeFile creates path and fills it through render. Flush and close
// failures are returned, so a short write never reports success.
func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := render(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
