package db

import (
	"time"

	"github.com/cyralabs/cyra/internal/models"
	"gorm.io/gorm"
)

type CycleEventRepository struct {
	database *gorm.DB
}

func NewCycleEventRepository(database *gorm.DB) *CycleEventRepository {
	return &CycleEventRepository{database: database}
}

func (repo *CycleEventRepository) ListByUser(userID uint) ([]models.CycleEvent, error) {
	events := make([]models.CycleEvent, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *CycleEventRepository) ListByUserRange(userID uint, from time.Time, to time.Time) ([]models.CycleEvent, error) {
	events := make([]models.CycleEvent, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *CycleEventRepository) Create(event *models.CycleEvent) error {
	return repo.database.Create(event).Error
}

func (repo *CycleEventRepository) DeleteByUserAndID(userID uint, eventID uint) (int64, error) {
	result := repo.database.Where("user_id = ? AND id = ?", userID, eventID).Delete(&models.CycleEvent{})
	return result.RowsAffected, result.Error
}
