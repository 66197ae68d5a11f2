package services

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cyralabs/cyra/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Event type",
	"Flow",
	"Severity total",
	"Symptoms",
	"Flags",
	"Notes",
}

type ExportEventReader interface {
	ListByUser(userID uint) ([]models.CycleEvent, error)
}

type ExportEntryReader interface {
	ListByUser(userID uint) ([]models.SymptomEntry, error)
}

type ExportService struct {
	events  ExportEventReader
	entries ExportEntryReader
}

type ExportSummary struct {
	TotalEvents  int    `json:"total_events"`
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from,omitempty"`
	DateTo       string `json:"date_to,omitempty"`
}

// ExportDay merges the events and entries of one calendar date into a flat
// export row.
type ExportDay struct {
	Date          string         `json:"date"`
	EventType     string         `json:"event_type,omitempty"`
	Flow          string         `json:"flow,omitempty"`
	SeverityTotal int            `json:"severity_total"`
	Scores        map[string]int `json:"scores,omitempty"`
	Flags         []string       `json:"flags,omitempty"`
	Notes         string         `json:"notes,omitempty"`
}

func NewExportService(events ExportEventReader, entries ExportEntryReader) *ExportService {
	return &ExportService{events: events, entries: entries}
}

func (service *ExportService) BuildExportDays(userID uint) ([]ExportDay, error) {
	events, err := service.events.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	entries, err := service.entries.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return MergeExportDays(events, entries), nil
}

func (service *ExportService) BuildSummary(userID uint) (ExportSummary, error) {
	events, err := service.events.ListByUser(userID)
	if err != nil {
		return ExportSummary{}, err
	}
	entries, err := service.entries.ListByUser(userID)
	if err != nil {
		return ExportSummary{}, err
	}

	summary := ExportSummary{
		TotalEvents:  len(events),
		TotalEntries: len(entries),
		HasData:      len(events) > 0 || len(entries) > 0,
	}

	first, last := time.Time{}, time.Time{}
	for _, event := range events {
		first, last = widenRange(first, last, event.Date)
	}
	for _, entry := range entries {
		first, last = widenRange(first, last, entry.Date)
	}
	if !first.IsZero() {
		summary.DateFrom = DayKey(first)
		summary.DateTo = DayKey(last)
	}
	return summary, nil
}

// MergeExportDays combines history into one row per calendar date, sorted
// ascending.
func MergeExportDays(events []models.CycleEvent, entries []models.SymptomEntry) []ExportDay {
	byDay := make(map[string]*ExportDay)

	rowFor := func(date time.Time) *ExportDay {
		key := DayKey(date)
		if row, ok := byDay[key]; ok {
			return row
		}
		row := &ExportDay{Date: key}
		byDay[key] = row
		return row
	}

	for _, event := range events {
		row := rowFor(event.Date)
		row.EventType = event.Type
		row.Flow = event.Flow
	}
	for _, entry := range entries {
		row := rowFor(entry.Date)
		if row.Scores == nil {
			row.Scores = make(map[string]int)
		}
		for name, score := range entry.Scores {
			row.Scores[name] += score
		}
		row.SeverityTotal += entry.TotalSeverity()
		row.Flags = append(row.Flags, entry.Flags...)
		if entry.Notes != "" {
			if row.Notes != "" {
				row.Notes += "; "
			}
			row.Notes += entry.Notes
		}
	}

	days := make([]ExportDay, 0, len(byDay))
	for _, row := range byDay {
		days = append(days, *row)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

// CSVRecord renders one export day as a CSV row matching ExportCSVHeaders.
func (day ExportDay) CSVRecord() []string {
	scores := make([]string, 0, len(day.Scores))
	for name, score := range day.Scores {
		scores = append(scores, name+"="+strconv.Itoa(score))
	}
	sort.Strings(scores)

	return []string{
		day.Date,
		day.EventType,
		day.Flow,
		strconv.Itoa(day.SeverityTotal),
		strings.Join(scores, " "),
		strings.Join(day.Flags, " "),
		day.Notes,
	}
}

func widenRange(first time.Time, last time.Time, candidate time.Time) (time.Time, time.Time) {
	day := DateOnly(candidate)
	if first.IsZero() || day.Before(first) {
		first = day
	}
	if last.IsZero() || day.After(last) {
		last = day
	}
	return first, last
}
