package models

import "time"

const (
	FactorNutrition = "nutrition"
	FactorActivity  = "activity"
)

// FactorRecord is one dated sample of an auxiliary time series the analysis
// correlates against symptom severity: a nutrient intake (magnesium, calcium)
// or an activity session metric (walking minutes, yoga minutes).
type FactorRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_factor_records_user_date" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;index:idx_factor_records_user_date" json:"date"`
	Kind      string    `gorm:"not null" json:"kind"`
	Name      string    `gorm:"not null" json:"name"`
	Value     float64   `gorm:"not null" json:"value"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func KnownFactorKind(kind string) bool {
	return kind == FactorNutrition || kind == FactorActivity
}
