package services

import (
	"math"
	"sort"
	"time"

	"github.com/cyralabs/cyra/internal/models"
)

const (
	// MinPairedObservations is the floor below which a correlation degrades
	// to zero strength with low confidence instead of a noisy estimate.
	MinPairedObservations = 7

	// StrongCorrelationThreshold marks the |strength| above which a factor
	// is surfaced as a strong association in generated insights.
	StrongCorrelationThreshold = 0.6

	lowConfidence = 20
)

// DatedValue is one sample of a daily time series.
type DatedValue struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// DatedSeries is a time series aligned by calendar date.
type DatedSeries []DatedValue

// CorrelationResult is a heuristic association estimate between two daily
// series.
type CorrelationResult struct {
	Strength   float64 `json:"strength"`
	SampleSize int     `json:"sample_size"`
	Confidence int     `json:"confidence"`
}

// FactorCorrelation describes the association between one tracked factor and
// symptom severity, bucketed by concurrent cycle phase.
type FactorCorrelation struct {
	FactorName      string   `json:"factor_name"`
	TargetSymptom   string   `json:"target_symptom,omitempty"`
	Phase           Phase    `json:"phase,omitempty"`
	Strength        float64  `json:"correlation_strength"`
	SampleSize      int      `json:"sample_size"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Correlate estimates the association strength between two series aligned by
// calendar date. The result is a Pearson coefficient clamped to [-1, 1]; with
// fewer than MinPairedObservations shared dates the strength is exactly 0 and
// the confidence low.
func Correlate(a DatedSeries, b DatedSeries) CorrelationResult {
	xs, ys := alignByDate(a, b)
	if len(xs) < MinPairedObservations {
		return CorrelationResult{Strength: 0, SampleSize: len(xs), Confidence: lowConfidence}
	}

	strength := pearson(xs, ys)
	confidence := len(xs) * 10
	if confidence > 95 {
		confidence = 95
	}
	return CorrelationResult{Strength: strength, SampleSize: len(xs), Confidence: confidence}
}

func alignByDate(a DatedSeries, b DatedSeries) ([]float64, []float64) {
	byDay := make(map[string]float64, len(b))
	for _, sample := range b {
		byDay[DayKey(sample.Date)] = sample.Value
	}

	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(a))
	for _, sample := range a {
		value, ok := byDay[DayKey(sample.Date)]
		if !ok {
			continue
		}
		xs = append(xs, sample.Value)
		ys = append(ys, value)
	}
	return xs, ys
}

func pearson(xs []float64, ys []float64) float64 {
	n := float64(len(xs))
	if n == 0 {
		return 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var covariance, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		covariance += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}

	strength := covariance / math.Sqrt(varX*varY)
	if strength > 1 {
		strength = 1
	}
	if strength < -1 {
		strength = -1
	}
	return strength
}

// SeveritySeries aggregates symptom entries into one daily severity series.
// All entries for a date are summed together, matching how multiple check-ins
// per day are treated elsewhere.
func SeveritySeries(entries []models.SymptomEntry) DatedSeries {
	return scoreSeries(entries, "")
}

// ScoreSeries extracts one named severity score as a daily series, summing
// multiple check-ins per date.
func ScoreSeries(entries []models.SymptomEntry, scoreName string) DatedSeries {
	return scoreSeries(entries, scoreName)
}

func scoreSeries(entries []models.SymptomEntry, scoreName string) DatedSeries {
	totals := make(map[string]float64, len(entries))
	dates := make(map[string]time.Time, len(entries))
	for _, entry := range entries {
		key := DayKey(entry.Date)
		if scoreName == "" {
			totals[key] += float64(entry.TotalSeverity())
		} else {
			score, ok := entry.Scores[scoreName]
			if !ok {
				continue
			}
			totals[key] += float64(score)
		}
		dates[key] = DateOnly(entry.Date)
	}

	series := make(DatedSeries, 0, len(totals))
	for key, total := range totals {
		series = append(series, DatedValue{Date: dates[key], Value: total})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}

// FactorSeries groups factor records of one kind into per-factor daily series.
func FactorSeries(records []models.FactorRecord, kind string) map[string]DatedSeries {
	grouped := make(map[string]DatedSeries)
	for _, record := range records {
		if record.Kind != kind {
			continue
		}
		grouped[record.Name] = append(grouped[record.Name], DatedValue{
			Date:  DateOnly(record.Date),
			Value: record.Value,
		})
	}
	for name := range grouped {
		series := grouped[name]
		sort.Slice(series, func(i, j int) bool {
			return series[i].Date.Before(series[j].Date)
		})
		grouped[name] = series
	}
	return grouped
}

// BuildNutritionCorrelations correlates each tracked nutrient against
// aggregate daily symptom severity, preferring the cycle-phase bucket with
// the strongest signal. Results are ranked by |strength| descending.
func BuildNutritionCorrelations(records []models.FactorRecord, entries []models.SymptomEntry, events []models.CycleEvent) []FactorCorrelation {
	severity := SeveritySeries(entries)
	correlations := make([]FactorCorrelation, 0)
	for name, series := range FactorSeries(records, models.FactorNutrition) {
		correlation := strongestPhaseBucket(name, series, severity, events)
		correlation.TargetSymptom = "overall_severity"
		if math.Abs(correlation.Strength) > StrongCorrelationThreshold {
			correlation.Recommendations = nutritionRecommendations(name, correlation.Strength)
		}
		correlations = append(correlations, correlation)
	}
	rankByStrength(correlations)
	return correlations
}

// BuildActivityCorrelations correlates each tracked activity against the mood
// and energy severity scores. Results are ranked by |strength| descending.
func BuildActivityCorrelations(records []models.FactorRecord, entries []models.SymptomEntry, events []models.CycleEvent) []FactorCorrelation {
	correlations := make([]FactorCorrelation, 0)
	for name, series := range FactorSeries(records, models.FactorActivity) {
		for _, target := range []string{"mood", "energy"} {
			targetSeries := ScoreSeries(entries, target)
			correlation := strongestPhaseBucket(name, series, targetSeries, events)
			correlation.TargetSymptom = target
			if math.Abs(correlation.Strength) > 0.5 {
				correlation.Recommendations = activityRecommendations(name, target, correlation.Strength)
			}
			correlations = append(correlations, correlation)
		}
	}
	rankByStrength(correlations)
	return correlations
}

// strongestPhaseBucket correlates a factor series against a target series
// over the full history, then per phase bucket, and keeps whichever estimate
// is strongest among buckets with enough paired observations.
func strongestPhaseBucket(name string, factor DatedSeries, target DatedSeries, events []models.CycleEvent) FactorCorrelation {
	overall := Correlate(factor, target)
	best := FactorCorrelation{
		FactorName: name,
		Strength:   overall.Strength,
		SampleSize: overall.SampleSize,
	}

	averageLength := estimatedAverageLength(events)
	for _, phase := range []Phase{PhaseMenstrual, PhaseFollicular, PhaseOvulatory, PhaseLuteal} {
		bucketFactor := filterByPhase(factor, events, averageLength, phase)
		bucketTarget := filterByPhase(target, events, averageLength, phase)
		result := Correlate(bucketFactor, bucketTarget)
		if result.SampleSize < MinPairedObservations {
			continue
		}
		if math.Abs(result.Strength) > math.Abs(best.Strength) {
			best.Strength = result.Strength
			best.SampleSize = result.SampleSize
			best.Phase = phase
		}
	}
	return best
}

func estimatedAverageLength(events []models.CycleEvent) int {
	cycles := SegmentCycles(events, 0, time.Time{})
	average, _, _ := CycleLengthStats(cycles)
	if average <= 0 {
		return models.DefaultCycleLength
	}
	return int(math.Round(average))
}

func filterByPhase(series DatedSeries, events []models.CycleEvent, averageLength int, phase Phase) DatedSeries {
	filtered := make(DatedSeries, 0, len(series))
	for _, sample := range series {
		day, ok := DayOfCycle(sample.Date, events)
		if !ok {
			continue
		}
		if ClassifyCurrentPhase(day, averageLength) == phase {
			filtered = append(filtered, sample)
		}
	}
	return filtered
}

func rankByStrength(correlations []FactorCorrelation) {
	sort.SliceStable(correlations, func(i, j int) bool {
		return math.Abs(correlations[i].Strength) > math.Abs(correlations[j].Strength)
	})
}

func nutritionRecommendations(name string, strength float64) []string {
	if strength < 0 {
		return []string{
			"Higher " + name + " intake lines up with milder symptoms; keeping intake steady may help",
		}
	}
	return []string{
		"Higher " + name + " intake lines up with stronger symptoms; consider reviewing intake with a clinician",
	}
}

func activityRecommendations(name string, target string, strength float64) []string {
	if strength > 0 {
		return []string{
			"More " + name + " lines up with better " + target + "; keeping the routine may help",
		}
	}
	return []string{
		"More " + name + " lines up with lower " + target + "; consider adjusting intensity",
	}
}
