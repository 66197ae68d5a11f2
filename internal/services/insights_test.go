package services

import (
	"testing"
	"time"
)

func analysisFixture() CycleAnalysis {
	return CycleAnalysis{
		CurrentCycle: CurrentCycle{
			DayOfCycle:      8,
			EstimatedLength: 28,
			Phase:           PhaseFollicular,
			Confidence:      70,
		},
		CycleHistory: CycleHistory{
			AverageLength: 28,
			Trend:         TrendStable,
		},
		PerimenopauseIndicators: PerimenopauseIndicators{
			ProbableStage:        StagePremenopause,
			SymptomSeverityTrend: SeverityStable,
		},
		WindowDays:  180,
		GeneratedAt: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateInsightsQuietHistory(t *testing.T) {
	t.Parallel()

	bundle := GenerateInsights(analysisFixture(), nil, nil)
	if len(bundle.Insights) != 0 {
		t.Fatalf("expected no insights for a quiet history, got %d", len(bundle.Insights))
	}
}

func TestGenerateInsightsIrregularityWarning(t *testing.T) {
	t.Parallel()

	analysis := analysisFixture()
	analysis.CycleHistory.IrregularityScore = 60

	bundle := GenerateInsights(analysis, nil, nil)
	if len(bundle.Insights) != 1 {
		t.Fatalf("expected one insight, got %d", len(bundle.Insights))
	}
	insight := bundle.Insights[0]
	if insight.Type != InsightWarning {
		t.Fatalf("expected a warning, got %s", insight.Type)
	}
	if insight.Priority != PriorityHigh {
		t.Fatalf("expected high priority, got %s", insight.Priority)
	}
	if insight.Confidence != 85 {
		t.Fatalf("expected confidence 85, got %d", insight.Confidence)
	}
	if insight.ID == "" {
		t.Fatal("expected a generated id")
	}
	if !insight.Actionable || len(insight.Actions) == 0 {
		t.Fatal("expected an actionable insight with actions")
	}
}

func TestGenerateInsightsThresholdIsExclusive(t *testing.T) {
	t.Parallel()

	analysis := analysisFixture()
	analysis.CycleHistory.IrregularityScore = 50

	bundle := GenerateInsights(analysis, nil, nil)
	if len(bundle.Insights) != 0 {
		t.Fatalf("score at the threshold must not fire, got %d insights", len(bundle.Insights))
	}
}

func TestGenerateInsightsKeepsRuleOrder(t *testing.T) {
	t.Parallel()

	analysis := analysisFixture()
	analysis.CycleHistory.IrregularityScore = 60
	analysis.PerimenopauseIndicators.ProbableStage = StageEarlyPerimenopause
	analysis.PerimenopauseIndicators.MissedPeriodsCount = 3

	nutrition := []FactorCorrelation{{
		FactorName:      "magnesium",
		TargetSymptom:   "overall_severity",
		Strength:        -0.72,
		SampleSize:      12,
		Recommendations: []string{"keep intake steady"},
	}}
	activity := []FactorCorrelation{{
		FactorName:      "walking",
		TargetSymptom:   "mood",
		Strength:        0.64,
		SampleSize:      11,
		Recommendations: []string{"keep the routine"},
	}}

	bundle := GenerateInsights(analysis, nutrition, activity)
	if len(bundle.Insights) != 5 {
		t.Fatalf("expected all five rules to fire, got %d", len(bundle.Insights))
	}

	wantTypes := []InsightType{
		InsightWarning,
		InsightPattern,
		InsightCorrelation,
		InsightRecommendation,
		InsightPattern,
	}
	for i, want := range wantTypes {
		if bundle.Insights[i].Type != want {
			t.Fatalf("insight %d type = %s, want %s", i, bundle.Insights[i].Type, want)
		}
	}

	correlation := bundle.Insights[2]
	if correlation.Confidence != 72 {
		t.Fatalf("correlation confidence = %d, want 72", correlation.Confidence)
	}
}

func TestGenerateInsightsMissedPeriodsBoundary(t *testing.T) {
	t.Parallel()

	analysis := analysisFixture()
	analysis.PerimenopauseIndicators.MissedPeriodsCount = 2

	bundle := GenerateInsights(analysis, nil, nil)
	if len(bundle.Insights) != 0 {
		t.Fatalf("two missed periods must not fire, got %d insights", len(bundle.Insights))
	}
}

func TestGeneratePredictionsNextCycle(t *testing.T) {
	t.Parallel()

	analysis := analysisFixture()
	next := time.Date(2026, time.March, 26, 0, 0, 0, 0, time.UTC)
	analysis.CurrentCycle.NextPredictedDate = &next

	predictions := generatePredictions(analysis)
	if len(predictions) != 1 {
		t.Fatalf("expected one prediction, got %d", len(predictions))
	}
	prediction := predictions[0]
	if prediction.Probability != 80 {
		t.Fatalf("expected probability 80, got %d", prediction.Probability)
	}
	if prediction.Date == nil || !prediction.Date.Equal(next) {
		t.Fatalf("unexpected prediction date %v", prediction.Date)
	}
	if len(prediction.Factors) != 3 {
		t.Fatalf("expected three prediction factors, got %d", len(prediction.Factors))
	}
}

func TestGeneratePredictionsLowConfidenceGate(t *testing.T) {
	t.Parallel()

	analysis := analysisFixture()
	next := time.Date(2026, time.March, 26, 0, 0, 0, 0, time.UTC)
	analysis.CurrentCycle.NextPredictedDate = &next
	analysis.CurrentCycle.Confidence = 60

	if got := generatePredictions(analysis); len(got) != 0 {
		t.Fatalf("confidence at the gate must not predict, got %d", len(got))
	}
}

func TestGeneratePredictionsProbabilityCap(t *testing.T) {
	t.Parallel()

	analysis := analysisFixture()
	next := time.Date(2026, time.March, 26, 0, 0, 0, 0, time.UTC)
	analysis.CurrentCycle.NextPredictedDate = &next
	analysis.CurrentCycle.Confidence = 95

	predictions := generatePredictions(analysis)
	if len(predictions) != 1 || predictions[0].Probability != 95 {
		t.Fatalf("expected probability capped at 95, got %+v", predictions)
	}
}

func TestGeneratePredictionsSeverityRise(t *testing.T) {
	t.Parallel()

	analysis := analysisFixture()
	analysis.CurrentCycle.Confidence = 20
	analysis.PerimenopauseIndicators.SymptomSeverityTrend = SeverityIncreasing

	predictions := generatePredictions(analysis)
	if len(predictions) != 1 {
		t.Fatalf("expected only the severity prediction, got %d", len(predictions))
	}
	if predictions[0].Probability != 65 {
		t.Fatalf("expected probability 65, got %d", predictions[0].Probability)
	}
	if predictions[0].Date != nil {
		t.Fatal("severity prediction carries no date")
	}
}
