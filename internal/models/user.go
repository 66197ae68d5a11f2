package models

import "time"

const (
	DefaultCycleLength = 28
	DefaultWindowDays  = 180
)

type User struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	Email                string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash         string     `gorm:"not null" json:"-"`
	Age                  int        `gorm:"not null;default:0" json:"age"`
	LastPeriodDate       *time.Time `gorm:"type:date" json:"last_period_date,omitempty"`
	IsPeriodsRegular     bool       `gorm:"not null;default:true" json:"is_periods_regular"`
	HasStoppedCompletely bool       `gorm:"not null;default:false" json:"has_stopped_completely"`
	ReportedCycleLength  int        `gorm:"not null;default:0" json:"reported_cycle_length"`
	CreatedAt            time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
