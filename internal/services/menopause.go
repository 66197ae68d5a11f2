package services

import (
	"fmt"
	"math"
)

// Stage classifies the likely menopause transition stage.
type Stage string

const (
	StagePremenopause       Stage = "premenopause"
	StageEarlyPerimenopause Stage = "early_perimenopause"
	StageLatePerimenopause  Stage = "late_perimenopause"
	StagePerimenopause      Stage = "perimenopause"
	StageMenopause          Stage = "menopause"
	StagePostmenopause      Stage = "postmenopause"
)

// Frequency grades how often a reported symptom occurs.
type Frequency string

const (
	FrequencyNever     Frequency = "never"
	FrequencySometimes Frequency = "sometimes"
	FrequencyOften     Frequency = "often"
	FrequencyDaily     Frequency = "daily"
)

// SymptomReport carries the self-reported symptom picture used for stage
// scoring.
type SymptomReport struct {
	HotFlashes        Frequency `json:"hot_flashes"`
	NightSweats       Frequency `json:"night_sweats"`
	SleepProblems     Frequency `json:"sleep_problems"`
	MoodChanges       Frequency `json:"mood_changes"`
	PhysicalSymptoms  []string  `json:"physical_symptoms,omitempty"`
	CognitiveSymptoms []string  `json:"cognitive_symptoms,omitempty"`
}

// StageProfile is the user fragment the stage classifier needs.
type StageProfile struct {
	Age                   int           `json:"age"`
	HasStoppedCompletely  bool          `json:"has_stopped_completely"`
	MonthsSinceLastPeriod int           `json:"months_since_last_period"`
	IsPeriodsRegular      bool          `json:"is_periods_regular"`
	Symptoms              SymptomReport `json:"symptoms"`
}

// StageAssessment is the classifier output: a stage with a fixed confidence,
// the reasoning trail of fired conditions, and stage-appropriate
// recommendations. Informational heuristics only, never a diagnosis.
type StageAssessment struct {
	Stage           Stage    `json:"stage"`
	Confidence      int      `json:"confidence"`
	Reasoning       []string `json:"reasoning"`
	Recommendations []string `json:"recommendations"`
}

// SymptomScore produces the weighted 0-based severity score used by the stage
// decision table. Vasomotor symptoms weigh up to 3 points each, sleep and mood
// problems up to 2, plus half a point per physical or cognitive symptom tag.
func SymptomScore(report SymptomReport) int {
	score := float64(vasomotorPoints(report.HotFlashes) + vasomotorPoints(report.NightSweats))
	score += float64(disruptionPoints(report.SleepProblems) + disruptionPoints(report.MoodChanges))
	score += 0.5 * float64(len(report.PhysicalSymptoms)+len(report.CognitiveSymptoms))
	return int(math.Round(score))
}

func vasomotorPoints(frequency Frequency) int {
	switch frequency {
	case FrequencyDaily:
		return 3
	case FrequencyOften:
		return 2
	case FrequencySometimes:
		return 1
	default:
		return 0
	}
}

func disruptionPoints(frequency Frequency) int {
	switch frequency {
	case FrequencyDaily:
		return 2
	case FrequencyOften:
		return 1
	default:
		return 0
	}
}

// ClassifyMenopauseStage runs the ordered decision table. The first matching
// rule always wins, including on boundary values; reordering the rules is a
// behavior change, not a refactor.
func ClassifyMenopauseStage(profile StageProfile) StageAssessment {
	score := SymptomScore(profile.Symptoms)

	if profile.HasStoppedCompletely && profile.MonthsSinceLastPeriod >= 12 {
		reasoning := []string{
			fmt.Sprintf("periods stopped completely %d months ago", profile.MonthsSinceLastPeriod),
		}
		if profile.Age >= 55 {
			reasoning = append(reasoning, fmt.Sprintf("age %d is 55 or above", profile.Age))
			return StageAssessment{
				Stage:           StagePostmenopause,
				Confidence:      95,
				Reasoning:       reasoning,
				Recommendations: postmenopauseRecommendations(),
			}
		}
		reasoning = append(reasoning, fmt.Sprintf("age %d is below 55", profile.Age))
		return StageAssessment{
			Stage:           StageMenopause,
			Confidence:      90,
			Reasoning:       reasoning,
			Recommendations: menopauseRecommendations(),
		}
	}

	if profile.Age >= 45 && (!profile.IsPeriodsRegular || score >= 5) {
		reasoning := []string{fmt.Sprintf("age %d is 45 or above", profile.Age)}
		if !profile.IsPeriodsRegular {
			reasoning = append(reasoning, "cycles reported irregular")
		}
		if score >= 5 {
			reasoning = append(reasoning, fmt.Sprintf("symptom score %d reached threshold 5", score))
		}
		return StageAssessment{
			Stage:           StagePerimenopause,
			Confidence:      80,
			Reasoning:       reasoning,
			Recommendations: perimenopauseRecommendations(),
		}
	}

	return StageAssessment{
		Stage:      StagePremenopause,
		Confidence: 75,
		Reasoning: []string{
			"no stopped-period pattern and no perimenopausal signal",
		},
		Recommendations: premenopauseRecommendations(),
	}
}

// RefineProbableStage narrows a perimenopause call into early or late using
// observed history: repeated missed periods or high variability indicate the
// late transition.
func RefineProbableStage(assessment StageAssessment, missedPeriods int, irregularityScore int) Stage {
	if assessment.Stage != StagePerimenopause {
		return assessment.Stage
	}
	if missedPeriods >= 2 || irregularityScore > IrregularityThreshold {
		return StageLatePerimenopause
	}
	return StageEarlyPerimenopause
}

func postmenopauseRecommendations() []string {
	return []string{
		"Schedule regular bone-density screening",
		"Keep up cardiovascular health monitoring",
		"Discuss long-term hormone and calcium strategy with a clinician",
	}
}

func menopauseRecommendations() []string {
	return []string{
		"Confirm the transition with a clinician",
		"Monitor bone and heart health markers",
		"Track remaining symptoms to guide treatment choices",
	}
}

func perimenopauseRecommendations() []string {
	return []string{
		"Keep tracking cycles to capture the changing pattern",
		"Log symptom severity daily for better stage estimates",
		"Consider discussing symptom management options with a clinician",
	}
}

func premenopauseRecommendations() []string {
	return []string{
		"Maintain regular cycle tracking as a baseline",
		"Revisit the assessment if cycles become irregular",
	}
}
