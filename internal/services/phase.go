package services

// Phase classifies where in a cycle a given date falls.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulatory  Phase = "ovulatory"
	PhaseLuteal     Phase = "luteal"
	PhaseIrregular  Phase = "irregular"
)

// IrregularityThreshold is the 0-100 variability score above which a history
// is treated as irregular for phase purposes.
const IrregularityThreshold = 50

// ClassifyCurrentPhase maps a day of cycle onto a phase using deterministic
// banding around the midpoint of the average cycle length. An average that
// cannot be computed (fewer than 2 plausible cycles) yields PhaseIrregular.
func ClassifyCurrentPhase(dayOfCycle int, averageCycleLength int) Phase {
	if averageCycleLength <= 0 || dayOfCycle <= 0 {
		return PhaseIrregular
	}

	midpoint := averageCycleLength / 2
	switch {
	case dayOfCycle <= 5:
		return PhaseMenstrual
	case dayOfCycle <= midpoint-3:
		return PhaseFollicular
	case dayOfCycle <= midpoint+3:
		return PhaseOvulatory
	default:
		return PhaseLuteal
	}
}
