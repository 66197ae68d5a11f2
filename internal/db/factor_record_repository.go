package db

import (
	"github.com/cyralabs/cyra/internal/models"
	"gorm.io/gorm"
)

type FactorRecordRepository struct {
	database *gorm.DB
}

func NewFactorRecordRepository(database *gorm.DB) *FactorRecordRepository {
	return &FactorRecordRepository{database: database}
}

func (repo *FactorRecordRepository) ListByUser(userID uint) ([]models.FactorRecord, error) {
	records := make([]models.FactorRecord, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *FactorRecordRepository) ListByUserAndKind(userID uint, kind string) ([]models.FactorRecord, error) {
	records := make([]models.FactorRecord, 0)
	if err := repo.database.
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("date ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *FactorRecordRepository) Create(record *models.FactorRecord) error {
	return repo.database.Create(record).Error
}

func (repo *FactorRecordRepository) DeleteByUserAndID(userID uint, recordID uint) (int64, error) {
	result := repo.database.Where("user_id = ? AND id = ?", userID, recordID).Delete(&models.FactorRecord{})
	return result.RowsAffected, result.Error
}
