package models

import "time"

// MaxSeverity bounds every named severity score in a SymptomEntry.
const MaxSeverity = 10

// SymptomEntry is one user-reported observation for a calendar date. Multiple
// entries may exist per date; entries are never mutated after creation (an
// edit is a delete plus a new entry) and deletion is a hard delete.
type SymptomEntry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index:idx_symptom_entries_user_date" json:"user_id"`
	Date      time.Time      `gorm:"type:date;not null;index:idx_symptom_entries_user_date" json:"date"`
	Scores    map[string]int `gorm:"serializer:json" json:"scores,omitempty"`
	Flags     []string       `gorm:"serializer:json" json:"flags,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

// TotalSeverity sums the entry's named severity scores.
func (entry SymptomEntry) TotalSeverity() int {
	total := 0
	for _, score := range entry.Scores {
		total += score
	}
	return total
}
