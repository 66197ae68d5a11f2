package models

import "time"

const (
	EventMenstruation       = "menstruation"
	EventSpotting           = "spotting"
	EventMissedExpected     = "missed_expected"
	EventOvulationPredicted = "ovulation_predicted"
)

const (
	FlowLight     = "light"
	FlowNormal    = "normal"
	FlowHeavy     = "heavy"
	FlowVeryHeavy = "very_heavy"
)

// CycleEvent is a single dated event in a user's cycle history. Events are
// immutable once created; only menstruation events participate in cycle
// segmentation.
type CycleEvent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index:idx_cycle_events_user_date" json:"user_id"`
	Date      time.Time      `gorm:"type:date;not null;index:idx_cycle_events_user_date" json:"date"`
	Type      string         `gorm:"not null" json:"type"`
	Flow      string         `gorm:"not null;default:''" json:"flow,omitempty"`
	SubScores map[string]int `gorm:"serializer:json" json:"sub_scores,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func KnownEventType(eventType string) bool {
	switch eventType {
	case EventMenstruation, EventSpotting, EventMissedExpected, EventOvulationPredicted:
		return true
	default:
		return false
	}
}

func KnownFlowIntensity(flow string) bool {
	switch flow {
	case "", FlowLight, FlowNormal, FlowHeavy, FlowVeryHeavy:
		return true
	default:
		return false
	}
}
