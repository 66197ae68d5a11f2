package services

import (
	"sort"
	"time"

	"github.com/cyralabs/cyra/internal/models"
)

// Cycle intervals outside this band are treated as data artifacts or
// missed-cycle markers and never enter averaging.
const (
	MinPlausibleCycleDays = 15
	MaxPlausibleCycleDays = 59
)

// Cycle is the interval between two consecutive menstruation onset events.
type Cycle struct {
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	LengthDays int       `json:"length_days"`
}

// MenstruationStarts extracts menstruation onset dates from an event history,
// sorted ascending and collapsed to one start per calendar date.
func MenstruationStarts(events []models.CycleEvent) []time.Time {
	seen := make(map[string]bool, len(events))
	starts := make([]time.Time, 0, len(events))
	for _, event := range events {
		if event.Type != models.EventMenstruation {
			continue
		}
		day := DateOnly(event.Date)
		if seen[DayKey(day)] {
			continue
		}
		seen[DayKey(day)] = true
		starts = append(starts, day)
	}

	sort.Slice(starts, func(i, j int) bool {
		return starts[i].Before(starts[j])
	})
	return starts
}

// SegmentCycles turns an event history into discrete cycle intervals. Only
// physiologically plausible intervals are emitted, and only cycles starting
// within the trailing windowDays before now. An empty result means
// insufficient history, never a fault.
func SegmentCycles(events []models.CycleEvent, windowDays int, now time.Time) []Cycle {
	starts := MenstruationStarts(events)
	if len(starts) < 2 {
		return []Cycle{}
	}

	windowStart := time.Time{}
	if windowDays > 0 {
		windowStart = DateOnly(now).AddDate(0, 0, -windowDays)
	}

	cycles := make([]Cycle, 0, len(starts)-1)
	for i := 0; i+1 < len(starts); i++ {
		length := DaysBetween(starts[i], starts[i+1])
		if length < MinPlausibleCycleDays || length > MaxPlausibleCycleDays {
			continue
		}
		if !windowStart.IsZero() && starts[i].Before(windowStart) {
			continue
		}
		cycles = append(cycles, Cycle{
			StartDate:  starts[i],
			EndDate:    starts[i+1],
			LengthDays: length,
		})
	}
	return cycles
}

// DayOfCycle reports the 1-based day of cycle for a date, counted from the
// most recent menstruation event on or before it. ok is false when no prior
// menstruation event exists.
func DayOfCycle(date time.Time, events []models.CycleEvent) (int, bool) {
	starts := MenstruationStarts(events)
	day := DateOnly(date)

	latest := time.Time{}
	for _, start := range starts {
		if start.After(day) {
			break
		}
		latest = start
	}
	if latest.IsZero() {
		return 0, false
	}
	return DaysBetween(latest, day) + 1, true
}

// CycleLengthStats summarises the plausible cycle lengths in a history.
func CycleLengthStats(cycles []Cycle) (average float64, shortest int, longest int) {
	if len(cycles) == 0 {
		return 0, 0, 0
	}

	total := 0
	shortest = cycles[0].LengthDays
	longest = cycles[0].LengthDays
	for _, cycle := range cycles {
		total += cycle.LengthDays
		if cycle.LengthDays < shortest {
			shortest = cycle.LengthDays
		}
		if cycle.LengthDays > longest {
			longest = cycle.LengthDays
		}
	}
	return float64(total) / float64(len(cycles)), shortest, longest
}
