package services

import (
	"math"
	"sort"
	"time"

	"github.com/cyralabs/cyra/internal/models"
)

// CycleTrend describes how cycle lengths are drifting across the history.
type CycleTrend string

const (
	TrendStable      CycleTrend = "stable"
	TrendLengthening CycleTrend = "lengthening"
	TrendShortening  CycleTrend = "shortening"
)

// SeverityTrend describes how aggregate symptom severity is drifting.
type SeverityTrend string

const (
	SeverityStable     SeverityTrend = "stable"
	SeverityIncreasing SeverityTrend = "increasing"
	SeverityDecreasing SeverityTrend = "decreasing"
)

const (
	trendStabilityBandDays  = 2
	severityStabilityPoints = 1.0
)

type CurrentCycle struct {
	StartDate         *time.Time `json:"start_date,omitempty"`
	DayOfCycle        int        `json:"day_of_cycle"`
	EstimatedLength   int        `json:"estimated_length"`
	Phase             Phase      `json:"phase"`
	NextPredictedDate *time.Time `json:"next_predicted_date,omitempty"`
	Confidence        int        `json:"confidence"`
}

type CycleHistory struct {
	AverageLength     float64    `json:"average_length"`
	ShortestCycle     int        `json:"shortest_cycle"`
	LongestCycle      int        `json:"longest_cycle"`
	IrregularityScore int        `json:"irregularity_score"`
	Trend             CycleTrend `json:"trend"`
}

type PerimenopauseIndicators struct {
	MissedPeriodsCount   int           `json:"missed_periods_count"`
	CycleVariability     float64       `json:"cycle_variability"`
	SymptomSeverityTrend SeverityTrend `json:"symptom_severity_trend"`
	ProbableStage        Stage         `json:"probable_stage"`
}

// CycleAnalysis is the on-demand snapshot derived from a user's history. It
// is never the source of truth and carries no identity beyond one request.
type CycleAnalysis struct {
	CurrentCycle            CurrentCycle            `json:"current_cycle"`
	CycleHistory            CycleHistory            `json:"cycle_history"`
	PerimenopauseIndicators PerimenopauseIndicators `json:"perimenopause_indicators"`
	WindowDays              int                     `json:"window_days"`
	GeneratedAt             time.Time               `json:"generated_at"`
}

// BuildCycleAnalysis derives the full analysis snapshot from persisted
// history. Insufficient or sparse history degrades to low-confidence
// irregular output, never an error.
func BuildCycleAnalysis(user *models.User, events []models.CycleEvent, entries []models.SymptomEntry, windowDays int, now time.Time) CycleAnalysis {
	if windowDays <= 0 {
		windowDays = models.DefaultWindowDays
	}
	today := DateOnly(now)

	cycles := SegmentCycles(events, windowDays, now)
	average, shortest, longest := CycleLengthStats(cycles)
	variability := lengthStdDev(cycles, average)
	irregularity := irregularityScore(average, variability)

	estimatedLength := estimateCycleLength(average, user)
	starts := MenstruationStarts(events)

	current := CurrentCycle{
		DayOfCycle:      1,
		EstimatedLength: estimatedLength,
		Phase:           PhaseIrregular,
		Confidence:      analysisConfidence(len(cycles), irregularity),
	}
	if day, ok := DayOfCycle(today, events); ok {
		current.DayOfCycle = day
		start := today.AddDate(0, 0, -(day - 1))
		current.StartDate = &start
		next := start.AddDate(0, 0, estimatedLength)
		current.NextPredictedDate = &next
	}
	if len(cycles) >= 2 && irregularity <= IrregularityThreshold {
		current.Phase = ClassifyCurrentPhase(current.DayOfCycle, estimatedLength)
	}

	missed := countMissedPeriods(starts, events)
	severityTrend := symptomSeverityTrend(entries, windowDays, now)

	assessment := ClassifyMenopauseStage(BuildStageProfile(user, events, entries, windowDays, now))

	return CycleAnalysis{
		CurrentCycle: current,
		CycleHistory: CycleHistory{
			AverageLength:     average,
			ShortestCycle:     shortest,
			LongestCycle:      longest,
			IrregularityScore: irregularity,
			Trend:             cycleTrend(cycles),
		},
		PerimenopauseIndicators: PerimenopauseIndicators{
			MissedPeriodsCount:   missed,
			CycleVariability:     variability,
			SymptomSeverityTrend: severityTrend,
			ProbableStage:        RefineProbableStage(assessment, missed, irregularity),
		},
		WindowDays:  windowDays,
		GeneratedAt: now,
	}
}

// BuildStageProfile assembles the stage-classifier input from the persisted
// profile plus the symptom report derived from recent entries.
func BuildStageProfile(user *models.User, events []models.CycleEvent, entries []models.SymptomEntry, windowDays int, now time.Time) StageProfile {
	profile := StageProfile{
		Symptoms: DeriveSymptomReport(entries, windowDays, now),
	}
	if user != nil {
		profile.Age = user.Age
		profile.IsPeriodsRegular = user.IsPeriodsRegular
		profile.HasStoppedCompletely = user.HasStoppedCompletely
	}
	profile.MonthsSinceLastPeriod = monthsSinceLastPeriod(user, events, now)
	return profile
}

// DeriveSymptomReport turns raw entries inside the window into the graded
// symptom report the stage classifier expects. A symptom is "daily" when
// flagged on at least 80% of tracked days, "often" at 40%, "sometimes" above
// zero.
func DeriveSymptomReport(entries []models.SymptomEntry, windowDays int, now time.Time) SymptomReport {
	windowStart := DateOnly(now).AddDate(0, 0, -windowDays)

	trackedDays := make(map[string]bool)
	flagDays := make(map[string]map[string]bool)
	physical := make(map[string]bool)
	cognitive := make(map[string]bool)

	for _, entry := range entries {
		day := DateOnly(entry.Date)
		if day.Before(windowStart) || day.After(DateOnly(now)) {
			continue
		}
		key := DayKey(day)
		trackedDays[key] = true
		for _, flag := range entry.Flags {
			if flagDays[flag] == nil {
				flagDays[flag] = make(map[string]bool)
			}
			flagDays[flag][key] = true
			switch {
			case physicalSymptomTags[flag]:
				physical[flag] = true
			case cognitiveSymptomTags[flag]:
				cognitive[flag] = true
			}
		}
	}

	tracked := len(trackedDays)
	report := SymptomReport{
		HotFlashes:        flagFrequency(flagDays["hot_flashes"], tracked),
		NightSweats:       flagFrequency(flagDays["night_sweats"], tracked),
		SleepProblems:     flagFrequency(flagDays["sleep_problems"], tracked),
		MoodChanges:       flagFrequency(flagDays["mood_changes"], tracked),
		PhysicalSymptoms:  sortedKeys(physical),
		CognitiveSymptoms: sortedKeys(cognitive),
	}
	return report
}

var physicalSymptomTags = map[string]bool{
	"joint_pain":        true,
	"headache":          true,
	"fatigue":           true,
	"palpitations":      true,
	"weight_change":     true,
	"breast_tenderness": true,
}

var cognitiveSymptomTags = map[string]bool{
	"brain_fog":          true,
	"memory_lapses":      true,
	"concentration_loss": true,
}

func flagFrequency(days map[string]bool, trackedDays int) Frequency {
	if trackedDays == 0 || len(days) == 0 {
		return FrequencyNever
	}
	share := float64(len(days)) / float64(trackedDays)
	switch {
	case share >= 0.8:
		return FrequencyDaily
	case share >= 0.4:
		return FrequencyOften
	default:
		return FrequencySometimes
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func monthsSinceLastPeriod(user *models.User, events []models.CycleEvent, now time.Time) int {
	last := time.Time{}
	starts := MenstruationStarts(events)
	if len(starts) > 0 {
		last = starts[len(starts)-1]
	}
	if last.IsZero() && user != nil && user.LastPeriodDate != nil {
		last = DateOnly(*user.LastPeriodDate)
	}
	if last.IsZero() {
		return 0
	}
	days := DaysBetween(last, now)
	if days < 0 {
		return 0
	}
	return days / 30
}

func estimateCycleLength(average float64, user *models.User) int {
	if average > 0 {
		return int(math.Round(average))
	}
	if user != nil && user.ReportedCycleLength >= MinPlausibleCycleDays && user.ReportedCycleLength <= MaxPlausibleCycleDays {
		return user.ReportedCycleLength
	}
	return models.DefaultCycleLength
}

func lengthStdDev(cycles []Cycle, average float64) float64 {
	if len(cycles) < 2 {
		return 0
	}
	var sum float64
	for _, cycle := range cycles {
		diff := float64(cycle.LengthDays) - average
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(cycles)))
}

// irregularityScore maps the coefficient of variation of cycle lengths onto
// a 0-100 scale.
func irregularityScore(average float64, stdDev float64) int {
	if average <= 0 {
		return 0
	}
	score := int(math.Round(200 * stdDev / average))
	if score > 100 {
		score = 100
	}
	return score
}

func analysisConfidence(cycleCount int, irregularity int) int {
	switch cycleCount {
	case 0:
		return 20
	case 1:
		return 40
	}
	confidence := 50 + 10*cycleCount - irregularity/5
	if confidence > 95 {
		confidence = 95
	}
	if confidence < 20 {
		confidence = 20
	}
	return confidence
}

func cycleTrend(cycles []Cycle) CycleTrend {
	if len(cycles) < 4 {
		return TrendStable
	}
	mid := len(cycles) / 2
	first := meanLength(cycles[:mid])
	second := meanLength(cycles[mid:])
	switch {
	case second-first > trendStabilityBandDays:
		return TrendLengthening
	case first-second > trendStabilityBandDays:
		return TrendShortening
	default:
		return TrendStable
	}
}

func meanLength(cycles []Cycle) float64 {
	if len(cycles) == 0 {
		return 0
	}
	total := 0
	for _, cycle := range cycles {
		total += cycle.LengthDays
	}
	return float64(total) / float64(len(cycles))
}

// countMissedPeriods counts menstruation gaps beyond the plausible band plus
// explicit missed_expected events. Long gaps never enter averaging; they are
// surfaced here instead.
func countMissedPeriods(starts []time.Time, events []models.CycleEvent) int {
	missed := 0
	for i := 1; i < len(starts); i++ {
		if DaysBetween(starts[i-1], starts[i]) > MaxPlausibleCycleDays {
			missed++
		}
	}
	for _, event := range events {
		if event.Type == models.EventMissedExpected {
			missed++
		}
	}
	return missed
}

func symptomSeverityTrend(entries []models.SymptomEntry, windowDays int, now time.Time) SeverityTrend {
	windowStart := DateOnly(now).AddDate(0, 0, -windowDays)
	series := SeveritySeries(entries)

	inWindow := make(DatedSeries, 0, len(series))
	for _, sample := range series {
		if sample.Date.Before(windowStart) || sample.Date.After(DateOnly(now)) {
			continue
		}
		inWindow = append(inWindow, sample)
	}
	if len(inWindow) < 6 {
		return SeverityStable
	}

	mid := len(inWindow) / 2
	first := meanValue(inWindow[:mid])
	second := meanValue(inWindow[mid:])
	switch {
	case second-first >= severityStabilityPoints:
		return SeverityIncreasing
	case first-second >= severityStabilityPoints:
		return SeverityDecreasing
	default:
		return SeverityStable
	}
}

func meanValue(series DatedSeries) float64 {
	if len(series) == 0 {
		return 0
	}
	var total float64
	for _, sample := range series {
		total += sample.Value
	}
	return total / float64(len(series))
}
