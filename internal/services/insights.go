package services

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

type InsightType string

const (
	InsightPattern        InsightType = "pattern"
	InsightCorrelation    InsightType = "correlation"
	InsightPrediction     InsightType = "prediction"
	InsightRecommendation InsightType = "recommendation"
	InsightWarning        InsightType = "warning"
)

type InsightPriority string

const (
	PriorityLow    InsightPriority = "low"
	PriorityMedium InsightPriority = "medium"
	PriorityHigh   InsightPriority = "high"
)

// Insight is an ephemeral, request-scoped finding. Nothing here is persisted;
// the full list is recomputed on every call.
type Insight struct {
	ID          string          `json:"id"`
	Type        InsightType     `json:"type"`
	Priority    InsightPriority `json:"priority"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Confidence  int             `json:"confidence"`
	BasedOn     []string        `json:"based_on"`
	Actionable  bool            `json:"actionable"`
	Actions     []string        `json:"actions,omitempty"`
}

// PredictionFactor names one influence on a prediction with a signed impact
// weight in [-1, 1]. The weights are fixed illustrative constants, not fitted.
type PredictionFactor struct {
	Name   string  `json:"name"`
	Impact float64 `json:"impact"`
}

type Prediction struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Date        *time.Time         `json:"date,omitempty"`
	Probability int                `json:"probability"`
	Factors     []PredictionFactor `json:"factors"`
}

type InsightBundle struct {
	Insights    []Insight    `json:"insights"`
	Predictions []Prediction `json:"predictions"`
}

// GenerateInsights evaluates the fixed rule list against an analysis
// snapshot. Every rule is evaluated independently and appended when its guard
// holds; output keeps rule-declaration order, not confidence order.
func GenerateInsights(analysis CycleAnalysis, nutrition []FactorCorrelation, activity []FactorCorrelation) InsightBundle {
	bundle := InsightBundle{
		Insights:    make([]Insight, 0, 5),
		Predictions: make([]Prediction, 0, 2),
	}

	if analysis.CycleHistory.IrregularityScore > 50 {
		bundle.Insights = append(bundle.Insights, Insight{
			ID:       uuid.NewString(),
			Type:     InsightWarning,
			Priority: PriorityHigh,
			Title:    "Cycle lengths vary a lot",
			Description: fmt.Sprintf(
				"Cycle length variability scored %d of 100 over the last %d days.",
				analysis.CycleHistory.IrregularityScore, analysis.WindowDays),
			Confidence: 85,
			BasedOn:    []string{"cycle_history.irregularity_score"},
			Actionable: true,
			Actions:    []string{"Keep logging period start dates", "Discuss persistent irregularity with a clinician"},
		})
	}

	if analysis.PerimenopauseIndicators.ProbableStage == StageEarlyPerimenopause {
		bundle.Insights = append(bundle.Insights, Insight{
			ID:          uuid.NewString(),
			Type:        InsightPattern,
			Priority:    PriorityMedium,
			Title:       "Pattern consistent with early perimenopause",
			Description: "Cycle and symptom history matches the early perimenopausal transition.",
			Confidence:  78,
			BasedOn:     []string{"perimenopause_indicators.probable_stage"},
			Actionable:  false,
		})
	}

	if strongest, ok := strongestCorrelation(nutrition); ok && math.Abs(strongest.Strength) > StrongCorrelationThreshold {
		bundle.Insights = append(bundle.Insights, Insight{
			ID:       uuid.NewString(),
			Type:     InsightCorrelation,
			Priority: PriorityMedium,
			Title:    fmt.Sprintf("%s tracks with symptom severity", strongest.FactorName),
			Description: fmt.Sprintf(
				"%s intake shows a %.2f association with symptom severity across %d paired days.",
				strongest.FactorName, strongest.Strength, strongest.SampleSize),
			Confidence: int(math.Round(math.Abs(strongest.Strength) * 100)),
			BasedOn:    []string{"nutrition_correlations", strongest.FactorName},
			Actionable: true,
			Actions:    strongest.Recommendations,
		})
	}

	for _, correlation := range activity {
		if correlation.TargetSymptom != "mood" && correlation.TargetSymptom != "energy" {
			continue
		}
		if math.Abs(correlation.Strength) <= 0.5 {
			continue
		}
		bundle.Insights = append(bundle.Insights, Insight{
			ID:       uuid.NewString(),
			Type:     InsightRecommendation,
			Priority: PriorityMedium,
			Title:    fmt.Sprintf("%s influences %s", correlation.FactorName, correlation.TargetSymptom),
			Description: fmt.Sprintf(
				"%s shows a %.2f association with %s scores.",
				correlation.FactorName, correlation.Strength, correlation.TargetSymptom),
			Confidence: 82,
			BasedOn:    []string{"activity_correlations", correlation.FactorName},
			Actionable: true,
			Actions:    correlation.Recommendations,
		})
		break
	}

	if analysis.PerimenopauseIndicators.MissedPeriodsCount > 2 {
		bundle.Insights = append(bundle.Insights, Insight{
			ID:       uuid.NewString(),
			Type:     InsightPattern,
			Priority: PriorityHigh,
			Title:    "Several periods missed",
			Description: fmt.Sprintf(
				"%d missed periods detected in the tracked history.",
				analysis.PerimenopauseIndicators.MissedPeriodsCount),
			Confidence: 88,
			BasedOn:    []string{"perimenopause_indicators.missed_periods_count"},
			Actionable: true,
			Actions:    []string{"Log any spotting or skipped cycles", "Consider a stage assessment review"},
		})
	}

	bundle.Predictions = append(bundle.Predictions, generatePredictions(analysis)...)
	return bundle
}

func generatePredictions(analysis CycleAnalysis) []Prediction {
	predictions := make([]Prediction, 0, 2)

	if analysis.CurrentCycle.Confidence > 60 && analysis.CurrentCycle.NextPredictedDate != nil {
		probability := analysis.CurrentCycle.Confidence + 10
		if probability > 95 {
			probability = 95
		}
		predictions = append(predictions, Prediction{
			ID:    uuid.NewString(),
			Title: "Next cycle start",
			Description: fmt.Sprintf(
				"Based on an estimated %d-day cycle, the next period is expected on %s.",
				analysis.CurrentCycle.EstimatedLength,
				DayKey(*analysis.CurrentCycle.NextPredictedDate)),
			Date:        analysis.CurrentCycle.NextPredictedDate,
			Probability: probability,
			Factors: []PredictionFactor{
				{Name: "cycle_regularity", Impact: 0.7},
				{Name: "history_depth", Impact: 0.4},
				{Name: "recent_variability", Impact: -0.3},
			},
		})
	}

	if analysis.PerimenopauseIndicators.SymptomSeverityTrend == SeverityIncreasing {
		predictions = append(predictions, Prediction{
			ID:          uuid.NewString(),
			Title:       "Symptom severity may keep rising",
			Description: "Aggregate symptom severity has been increasing across the tracked window.",
			Probability: 65,
			Factors: []PredictionFactor{
				{Name: "severity_trend", Impact: 0.6},
				{Name: "stage_progression", Impact: 0.5},
				{Name: "tracking_consistency", Impact: -0.2},
			},
		})
	}

	return predictions
}

func strongestCorrelation(correlations []FactorCorrelation) (FactorCorrelation, bool) {
	if len(correlations) == 0 {
		return FactorCorrelation{}, false
	}
	best := correlations[0]
	for _, correlation := range correlations[1:] {
		if math.Abs(correlation.Strength) > math.Abs(best.Strength) {
			best = correlation
		}
	}
	return best, true
}
