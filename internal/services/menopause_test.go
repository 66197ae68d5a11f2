package services

import "testing"

func TestSymptomScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report SymptomReport
		want   int
	}{
		{name: "empty report scores zero", report: SymptomReport{}, want: 0},
		{
			name: "daily vasomotor symptoms dominate",
			report: SymptomReport{
				HotFlashes:  FrequencyDaily,
				NightSweats: FrequencyDaily,
			},
			want: 6,
		},
		{
			name: "mixed frequencies",
			report: SymptomReport{
				HotFlashes:    FrequencyOften,
				NightSweats:   FrequencySometimes,
				SleepProblems: FrequencyDaily,
				MoodChanges:   FrequencyOften,
			},
			want: 6,
		},
		{
			name: "tags add half a point each",
			report: SymptomReport{
				HotFlashes:        FrequencySometimes,
				PhysicalSymptoms:  []string{"joint_pain", "fatigue"},
				CognitiveSymptoms: []string{"brain_fog"},
			},
			want: 3,
		},
		{
			name: "sometimes sleep and mood score nothing",
			report: SymptomReport{
				SleepProblems: FrequencySometimes,
				MoodChanges:   FrequencySometimes,
			},
			want: 0,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := SymptomScore(testCase.report); got != testCase.want {
				t.Fatalf("SymptomScore() = %d, want %d", got, testCase.want)
			}
		})
	}
}

func TestClassifyMenopauseStage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		profile        StageProfile
		wantStage      Stage
		wantConfidence int
	}{
		{
			name: "stopped over a year at 56 is postmenopause",
			profile: StageProfile{
				Age:                   56,
				HasStoppedCompletely:  true,
				MonthsSinceLastPeriod: 14,
			},
			wantStage:      StagePostmenopause,
			wantConfidence: 95,
		},
		{
			name: "stopped over a year at 50 is menopause",
			profile: StageProfile{
				Age:                   50,
				HasStoppedCompletely:  true,
				MonthsSinceLastPeriod: 14,
			},
			wantStage:      StageMenopause,
			wantConfidence: 90,
		},
		{
			name: "age 55 boundary goes postmenopause",
			profile: StageProfile{
				Age:                   55,
				HasStoppedCompletely:  true,
				MonthsSinceLastPeriod: 12,
			},
			wantStage:      StagePostmenopause,
			wantConfidence: 95,
		},
		{
			name: "stopped under a year falls through",
			profile: StageProfile{
				Age:                   50,
				HasStoppedCompletely:  true,
				MonthsSinceLastPeriod: 11,
				IsPeriodsRegular:      false,
			},
			wantStage:      StagePerimenopause,
			wantConfidence: 80,
		},
		{
			name: "irregular at 47 is perimenopause",
			profile: StageProfile{
				Age:              47,
				IsPeriodsRegular: false,
			},
			wantStage:      StagePerimenopause,
			wantConfidence: 80,
		},
		{
			name: "symptom score threshold at 45 is perimenopause",
			profile: StageProfile{
				Age:              45,
				IsPeriodsRegular: true,
				Symptoms: SymptomReport{
					HotFlashes:  FrequencyDaily,
					NightSweats: FrequencyOften,
				},
			},
			wantStage:      StagePerimenopause,
			wantConfidence: 80,
		},
		{
			name: "regular low-symptom at 44 is premenopause",
			profile: StageProfile{
				Age:              44,
				IsPeriodsRegular: false,
			},
			wantStage:      StagePremenopause,
			wantConfidence: 75,
		},
		{
			name: "regular at 47 without symptoms is premenopause",
			profile: StageProfile{
				Age:              47,
				IsPeriodsRegular: true,
			},
			wantStage:      StagePremenopause,
			wantConfidence: 75,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := ClassifyMenopauseStage(testCase.profile)
			if got.Stage != testCase.wantStage {
				t.Fatalf("stage = %s, want %s", got.Stage, testCase.wantStage)
			}
			if got.Confidence != testCase.wantConfidence {
				t.Fatalf("confidence = %d, want %d", got.Confidence, testCase.wantConfidence)
			}
			if len(got.Reasoning) == 0 {
				t.Fatal("expected a reasoning trail")
			}
			if len(got.Recommendations) == 0 {
				t.Fatal("expected recommendations")
			}
		})
	}
}

func TestRefineProbableStage(t *testing.T) {
	t.Parallel()

	peri := StageAssessment{Stage: StagePerimenopause}

	if got := RefineProbableStage(peri, 0, 10); got != StageEarlyPerimenopause {
		t.Fatalf("expected early perimenopause, got %s", got)
	}
	if got := RefineProbableStage(peri, 2, 10); got != StageLatePerimenopause {
		t.Fatalf("expected late perimenopause for missed periods, got %s", got)
	}
	if got := RefineProbableStage(peri, 0, 51); got != StageLatePerimenopause {
		t.Fatalf("expected late perimenopause for high variability, got %s", got)
	}
	if got := RefineProbableStage(peri, 0, 50); got != StageEarlyPerimenopause {
		t.Fatalf("threshold value should stay early, got %s", got)
	}

	pre := StageAssessment{Stage: StagePremenopause}
	if got := RefineProbableStage(pre, 5, 90); got != StagePremenopause {
		t.Fatalf("non-perimenopause stages must pass through, got %s", got)
	}
}
