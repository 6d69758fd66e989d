package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"tripify-backend/internal/mood"
	"tripify-backend/internal/quiz"
)

const reportTimeLayout = "2006-01-02 15:04 MST"

// renderReport lays out an overview and its history as a single A4 document.
// Core fonts only cover Latin-1, so moods are written by label without emoji.
func renderReport(overview *MoodOverview, history []MoodHistoryEntry) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Tripify mood report", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Tripify Mood Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, "User: "+overview.UserID)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Results recorded: %d", overview.TotalResults))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("First result: %s (%s)",
		moodLabel(overview.Initial.DominantMood), overview.Initial.CreatedAt.Format(reportTimeLayout)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Latest result: %s (%s)",
		moodLabel(overview.Current.DominantMood), overview.Current.CreatedAt.Format(reportTimeLayout)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	for _, h := range []string{"Mood", "First %", "Latest %", "Change", "Average %", "Dominant"} {
		pdf.CellFormat(30, 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	initial := overview.Initial.MoodScores.Vector()
	current := overview.Current.MoodScores.Vector()
	change := overview.Change.Vector()
	average := overview.AverageScores.Vector()
	for _, m := range mood.All {
		pdf.CellFormat(30, 8, m.Display().Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.1f", initial[m]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.1f", current[m]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%+.1f", change[m]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.1f", average[m]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", overview.DominantCounts[m.String()]), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "History")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	for _, entry := range history {
		rounded := quiz.Format(quiz.Result{Scores: entry.MoodScores.Vector()}).MoodScores
		line := fmt.Sprintf("%s  %-14s  E %d%%  C %d%%  I %d%%  A %d%%",
			entry.CreatedAt.Format(reportTimeLayout), moodLabel(entry.DominantMood),
			rounded.Energetic, rounded.Calm, rounded.Introspective, rounded.Adventurous)
		pdf.MultiCell(0, 6, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render mood report: %w", err)
	}
	return buf.Bytes(), nil
}

func moodLabel(name string) string {
	return mood.DisplayFor(name).Label
}

