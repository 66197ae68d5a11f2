package services

import (
	"math"
	"testing"

	"github.com/cyralabs/cyra/internal/models"
)

func seriesFrom(t *testing.T, start string, values ...float64) DatedSeries {
	t.Helper()
	base := mustDay(t, start)
	series := make(DatedSeries, 0, len(values))
	for i, value := range values {
		series = append(series, DatedValue{Date: base.AddDate(0, 0, i), Value: value})
	}
	return series
}

func TestCorrelateInsufficientPairs(t *testing.T) {
	t.Parallel()

	a := seriesFrom(t, "2026-01-01", 1, 2, 3, 4, 5, 6)
	b := seriesFrom(t, "2026-01-01", 6, 5, 4, 3, 2, 1)

	result := Correlate(a, b)
	if result.Strength != 0 {
		t.Fatalf("expected exactly zero strength below the pair floor, got %v", result.Strength)
	}
	if result.SampleSize != 6 {
		t.Fatalf("expected sample size 6, got %d", result.SampleSize)
	}
	if result.Confidence != 20 {
		t.Fatalf("expected low confidence 20, got %d", result.Confidence)
	}
}

func TestCorrelatePerfectAssociation(t *testing.T) {
	t.Parallel()

	a := seriesFrom(t, "2026-01-01", 1, 2, 3, 4, 5, 6, 7, 8)
	up := seriesFrom(t, "2026-01-01", 10, 20, 30, 40, 50, 60, 70, 80)
	down := seriesFrom(t, "2026-01-01", 80, 70, 60, 50, 40, 30, 20, 10)

	positive := Correlate(a, up)
	if math.Abs(positive.Strength-1) > 1e-9 {
		t.Fatalf("expected strength 1, got %v", positive.Strength)
	}
	if positive.Confidence != 80 {
		t.Fatalf("expected confidence 80 for 8 pairs, got %d", positive.Confidence)
	}

	negative := Correlate(a, down)
	if math.Abs(negative.Strength+1) > 1e-9 {
		t.Fatalf("expected strength -1, got %v", negative.Strength)
	}
}

func TestCorrelateAlignsByDate(t *testing.T) {
	t.Parallel()

	// b is missing two of a's dates; only shared dates pair up.
	a := seriesFrom(t, "2026-01-01", 1, 2, 3, 4, 5, 6, 7, 8, 9)
	b := seriesFrom(t, "2026-01-03", 3, 4, 5, 6, 7, 8, 9)

	result := Correlate(a, b)
	if result.SampleSize != 7 {
		t.Fatalf("expected 7 paired observations, got %d", result.SampleSize)
	}
	if math.Abs(result.Strength-1) > 1e-9 {
		t.Fatalf("expected strength 1 on the shared range, got %v", result.Strength)
	}
}

func TestCorrelateZeroVariance(t *testing.T) {
	t.Parallel()

	flat := seriesFrom(t, "2026-01-01", 5, 5, 5, 5, 5, 5, 5, 5)
	rising := seriesFrom(t, "2026-01-01", 1, 2, 3, 4, 5, 6, 7, 8)

	if result := Correlate(flat, rising); result.Strength != 0 {
		t.Fatalf("expected zero strength for a flat series, got %v", result.Strength)
	}
}

func TestCorrelateConfidenceCap(t *testing.T) {
	t.Parallel()

	values := make([]float64, 12)
	mirror := make([]float64, 12)
	for i := range values {
		values[i] = float64(i)
		mirror[i] = float64(i * 2)
	}
	a := seriesFrom(t, "2026-01-01", values...)
	b := seriesFrom(t, "2026-01-01", mirror...)

	if result := Correlate(a, b); result.Confidence != 95 {
		t.Fatalf("expected confidence capped at 95, got %d", result.Confidence)
	}
}

func TestSeveritySeriesSumsEntriesPerDay(t *testing.T) {
	t.Parallel()

	entries := []models.SymptomEntry{
		{Date: mustDay(t, "2026-01-02"), Scores: map[string]int{"cramps": 4}},
		{Date: mustDay(t, "2026-01-02"), Scores: map[string]int{"headache": 3}},
		{Date: mustDay(t, "2026-01-01"), Scores: map[string]int{"cramps": 2}},
	}

	series := SeveritySeries(entries)
	if len(series) != 2 {
		t.Fatalf("expected 2 days, got %d", len(series))
	}
	if DayKey(series[0].Date) != "2026-01-01" || series[0].Value != 2 {
		t.Fatalf("unexpected first sample: %s=%v", DayKey(series[0].Date), series[0].Value)
	}
	if DayKey(series[1].Date) != "2026-01-02" || series[1].Value != 7 {
		t.Fatalf("unexpected second sample: %s=%v", DayKey(series[1].Date), series[1].Value)
	}
}

func TestScoreSeriesExtractsOneScore(t *testing.T) {
	t.Parallel()

	entries := []models.SymptomEntry{
		{Date: mustDay(t, "2026-01-01"), Scores: map[string]int{"mood": 6, "cramps": 9}},
		{Date: mustDay(t, "2026-01-02"), Scores: map[string]int{"cramps": 4}},
	}

	series := ScoreSeries(entries, "mood")
	if len(series) != 1 {
		t.Fatalf("expected only days carrying the score, got %d", len(series))
	}
	if series[0].Value != 6 {
		t.Fatalf("expected mood 6, got %v", series[0].Value)
	}
}

func TestFactorSeriesGroupsByName(t *testing.T) {
	t.Parallel()

	records := []models.FactorRecord{
		{Date: mustDay(t, "2026-01-02"), Kind: models.FactorNutrition, Name: "magnesium", Value: 200},
		{Date: mustDay(t, "2026-01-01"), Kind: models.FactorNutrition, Name: "magnesium", Value: 100},
		{Date: mustDay(t, "2026-01-01"), Kind: models.FactorActivity, Name: "walking", Value: 30},
	}

	grouped := FactorSeries(records, models.FactorNutrition)
	if len(grouped) != 1 {
		t.Fatalf("expected one nutrition factor, got %d", len(grouped))
	}
	magnesium := grouped["magnesium"]
	if len(magnesium) != 2 {
		t.Fatalf("expected 2 magnesium samples, got %d", len(magnesium))
	}
	if !magnesium[0].Date.Before(magnesium[1].Date) {
		t.Fatal("expected samples sorted by date")
	}
}

func TestBuildNutritionCorrelationsStrongNegative(t *testing.T) {
	t.Parallel()

	// Ten days where rising magnesium intake tracks falling severity.
	records := make([]models.FactorRecord, 0, 10)
	entries := make([]models.SymptomEntry, 0, 10)
	base := mustDay(t, "2026-01-01")
	for i := 0; i < 10; i++ {
		records = append(records, models.FactorRecord{
			Date:  base.AddDate(0, 0, i),
			Kind:  models.FactorNutrition,
			Name:  "magnesium",
			Value: float64(100 + 50*i),
		})
		entries = append(entries, models.SymptomEntry{
			Date:   base.AddDate(0, 0, i),
			Scores: map[string]int{"cramps": 10 - i},
		})
	}

	correlations := BuildNutritionCorrelations(records, entries, nil)
	if len(correlations) != 1 {
		t.Fatalf("expected one correlation, got %d", len(correlations))
	}
	got := correlations[0]
	if got.FactorName != "magnesium" {
		t.Fatalf("unexpected factor %s", got.FactorName)
	}
	if got.TargetSymptom != "overall_severity" {
		t.Fatalf("unexpected target %s", got.TargetSymptom)
	}
	if got.Strength > -0.9 {
		t.Fatalf("expected strong negative association, got %v", got.Strength)
	}
	if got.SampleSize != 10 {
		t.Fatalf("expected 10 paired days, got %d", got.SampleSize)
	}
	if len(got.Recommendations) == 0 {
		t.Fatal("expected a recommendation for a strong association")
	}
}

func TestBuildActivityCorrelationsTargetsMoodAndEnergy(t *testing.T) {
	t.Parallel()

	records := make([]models.FactorRecord, 0, 10)
	entries := make([]models.SymptomEntry, 0, 10)
	base := mustDay(t, "2026-01-01")
	for i := 0; i < 10; i++ {
		records = append(records, models.FactorRecord{
			Date:  base.AddDate(0, 0, i),
			Kind:  models.FactorActivity,
			Name:  "walking",
			Value: float64(10 + 5*i),
		})
		entries = append(entries, models.SymptomEntry{
			Date:   base.AddDate(0, 0, i),
			Scores: map[string]int{"mood": i, "energy": 9 - i},
		})
	}

	correlations := BuildActivityCorrelations(records, entries, nil)
	if len(correlations) != 2 {
		t.Fatalf("expected one correlation per target, got %d", len(correlations))
	}
	targets := map[string]float64{}
	for _, correlation := range correlations {
		targets[correlation.TargetSymptom] = correlation.Strength
	}
	if targets["mood"] < 0.9 {
		t.Fatalf("expected strong positive mood association, got %v", targets["mood"])
	}
	if targets["energy"] > -0.9 {
		t.Fatalf("expected strong negative energy association, got %v", targets["energy"])
	}
}

func TestStrongestPhaseBucketFallsBackToOverall(t *testing.T) {
	t.Parallel()

	// Without menstruation events no sample maps to a phase; the overall
	// estimate must carry through with an empty phase tag.
	factor := seriesFrom(t, "2026-01-01", 1, 2, 3, 4, 5, 6, 7, 8)
	target := seriesFrom(t, "2026-01-01", 2, 4, 6, 8, 10, 12, 14, 16)

	got := strongestPhaseBucket("walking", factor, target, nil)
	if got.Phase != "" {
		t.Fatalf("expected no phase bucket, got %s", got.Phase)
	}
	if math.Abs(got.Strength-1) > 1e-9 {
		t.Fatalf("expected overall strength 1, got %v", got.Strength)
	}
}

func TestEstimatedAverageLengthDefault(t *testing.T) {
	t.Parallel()

	if got := estimatedAverageLength(nil); got != models.DefaultCycleLength {
		t.Fatalf("expected default length %d, got %d", models.DefaultCycleLength, got)
	}

	events := []models.CycleEvent{
		{Type: models.EventMenstruation, Date: mustDay(t, "2026-01-01")},
		{Type: models.EventMenstruation, Date: mustDay(t, "2026-01-31")},
	}
	if got := estimatedAverageLength(events); got != 30 {
		t.Fatalf("expected observed length 30, got %d", got)
	}
}
