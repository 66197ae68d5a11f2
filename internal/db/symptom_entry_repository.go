package db

import (
	"time"

	"github.com/cyralabs/cyra/internal/models"
	"gorm.io/gorm"
)

type SymptomEntryRepository struct {
	database *gorm.DB
}

func NewSymptomEntryRepository(database *gorm.DB) *SymptomEntryRepository {
	return &SymptomEntryRepository{database: database}
}

func (repo *SymptomEntryRepository) ListByUser(userID uint) ([]models.SymptomEntry, error) {
	entries := make([]models.SymptomEntry, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *SymptomEntryRepository) ListByUserRange(userID uint, from time.Time, to time.Time) ([]models.SymptomEntry, error) {
	entries := make([]models.SymptomEntry, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *SymptomEntryRepository) Create(entry *models.SymptomEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *SymptomEntryRepository) DeleteByUserAndID(userID uint, entryID uint) (int64, error) {
	result := repo.database.Where("user_id = ? AND id = ?", userID, entryID).Delete(&models.SymptomEntry{})
	return result.RowsAffected, result.Error
}
