package services

import (
	"testing"

	"github.com/cyralabs/cyra/internal/models"
)

func TestMergeExportDays(t *testing.T) {
	t.Parallel()

	events := []models.CycleEvent{
		{Date: mustDay(t, "2026-01-05"), Type: models.EventMenstruation, Flow: models.FlowNormal},
	}
	entries := []models.SymptomEntry{
		{Date: mustDay(t, "2026-01-05"), Scores: map[string]int{"cramps": 6}, Flags: []string{"fatigue"}, Notes: "rough day"},
		{Date: mustDay(t, "2026-01-05"), Scores: map[string]int{"mood": 3}, Notes: "better evening"},
		{Date: mustDay(t, "2026-01-03"), Scores: map[string]int{"headache": 2}},
	}

	days := MergeExportDays(events, entries)
	if len(days) != 2 {
		t.Fatalf("expected 2 merged days, got %d", len(days))
	}
	if days[0].Date != "2026-01-03" || days[1].Date != "2026-01-05" {
		t.Fatalf("expected ascending dates, got %s then %s", days[0].Date, days[1].Date)
	}

	merged := days[1]
	if merged.EventType != models.EventMenstruation || merged.Flow != models.FlowNormal {
		t.Fatalf("expected event fields carried over, got %+v", merged)
	}
	if merged.SeverityTotal != 9 {
		t.Fatalf("expected severity total 9, got %d", merged.SeverityTotal)
	}
	if merged.Scores["cramps"] != 6 || merged.Scores["mood"] != 3 {
		t.Fatalf("expected scores merged, got %v", merged.Scores)
	}
	if merged.Notes != "rough day; better evening" {
		t.Fatalf("expected notes joined, got %q", merged.Notes)
	}
	if len(merged.Flags) != 1 || merged.Flags[0] != "fatigue" {
		t.Fatalf("expected flags carried over, got %v", merged.Flags)
	}
}

func TestExportDayCSVRecord(t *testing.T) {
	t.Parallel()

	day := ExportDay{
		Date:          "2026-01-05",
		EventType:     models.EventMenstruation,
		Flow:          models.FlowHeavy,
		SeverityTotal: 9,
		Scores:        map[string]int{"mood": 3, "cramps": 6},
		Flags:         []string{"fatigue"},
		Notes:         "rough day",
	}

	record := day.CSVRecord()
	if len(record) != len(ExportCSVHeaders) {
		t.Fatalf("record width %d does not match headers %d", len(record), len(ExportCSVHeaders))
	}
	if record[0] != "2026-01-05" || record[1] != models.EventMenstruation || record[2] != models.FlowHeavy {
		t.Fatalf("unexpected leading columns: %v", record[:3])
	}
	if record[3] != "9" {
		t.Fatalf("expected severity column 9, got %s", record[3])
	}
	if record[4] != "cramps=6 mood=3" {
		t.Fatalf("expected sorted score pairs, got %q", record[4])
	}
}

type fakeEventReader struct{ events []models.CycleEvent }

func (reader fakeEventReader) ListByUser(userID uint) ([]models.CycleEvent, error) {
	return reader.events, nil
}

type fakeEntryReader struct{ entries []models.SymptomEntry }

func (reader fakeEntryReader) ListByUser(userID uint) ([]models.SymptomEntry, error) {
	return reader.entries, nil
}

func TestExportServiceBuildSummary(t *testing.T) {
	t.Parallel()

	service := NewExportService(
		fakeEventReader{events: []models.CycleEvent{
			{Date: mustDay(t, "2026-01-05"), Type: models.EventMenstruation},
		}},
		fakeEntryReader{entries: []models.SymptomEntry{
			{Date: mustDay(t, "2026-01-01"), Scores: map[string]int{"mood": 3}},
			{Date: mustDay(t, "2026-02-10"), Scores: map[string]int{"mood": 4}},
		}},
	)

	summary, err := service.BuildSummary(1)
	if err != nil {
		t.Fatalf("build summary failed: %v", err)
	}
	if summary.TotalEvents != 1 || summary.TotalEntries != 2 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if !summary.HasData {
		t.Fatal("expected has_data")
	}
	if summary.DateFrom != "2026-01-01" || summary.DateTo != "2026-02-10" {
		t.Fatalf("unexpected range: %s..%s", summary.DateFrom, summary.DateTo)
	}
}

func TestExportServiceEmptySummary(t *testing.T) {
	t.Parallel()

	service := NewExportService(fakeEventReader{}, fakeEntryReader{})
	summary, err := service.BuildSummary(1)
	if err != nil {
		t.Fatalf("build summary failed: %v", err)
	}
	if summary.HasData || summary.DateFrom != "" || summary.DateTo != "" {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}
