package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/planner"
)

// WritePDF renders the itinerary as an A4 document with one section per day.
func WritePDF(w io.Writer, trip domain.Trip, view planner.View) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(trip.Title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("") // core fonts are cp1252

	// header bar
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, tr(trip.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	span := fmt.Sprintf("%s to %s (%d days)",
		trip.StartDate.Format("Mon 02 Jan 2006"), trip.EndDate.Format("Mon 02 Jan 2006"), len(view.Days))
	pdf.CellFormat(170, 6, span, "", 1, "L", false, 0, "")
	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	if trip.Notes != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(170, 5, tr(trip.Notes), "", "L", false)
		pdf.Ln(3)
	}

	section := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(1)
	}
	item := func(it domain.ItineraryItem) {
		clock := it.Time
		if clock == "" {
			clock = "--:--"
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(16, 6, clock, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(22, 6, string(it.Type), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(132, 6, tr(itemTitle(it)), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, line := range itemLines(it) {
			pdf.SetX(58)
			pdf.MultiCell(132, 5, tr(line), "", "L", false)
		}
		pdf.Ln(1)
	}

	for i, d := range view.Days {
		section(fmt.Sprintf("Day %d  %s", i+1, d.Date.Format("Monday 02 January")))
		if len(d.Items) == 0 {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(130, 130, 130)
			pdf.CellFormat(170, 6, "Nothing planned yet", "", 1, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
		for _, it := range d.Items {
			item(it)
		}
		pdf.Ln(3)
	}

	if len(view.Unplaced) > 0 {
		section("Outside the trip dates")
		for _, it := range view.Unplaced {
			item(it)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export.WritePDF: %w", err)
	}
	return nil
}

func itemTitle(it domain.ItineraryItem) string {
	if it.Title != "" {
		return it.Title
	}
	return "(untitled)"
}

// itemLines returns the secondary text lines printed under an item's title.
func itemLines(it domain.ItineraryItem) []string {
	var lines []string
	if f := it.Details.Flight; f != nil {
		number, from, to := domain.Value(f.Number), domain.Value(f.From), domain.Value(f.To)
		if number != "" || from != "" || to != "" {
			lines = append(lines, fmt.Sprintf("Flight %s  %s -> %s", number, from, to))
		}
	}
	if it.Location != "" {
		lines = append(lines, it.Location)
	}
	if it.Cost != nil {
		lines = append(lines, fmt.Sprintf("Cost: %.2f %s", *it.Cost, it.Currency))
	}
	if it.Notes != "" {
		lines = append(lines, it.Notes)
	}
	return lines
}
