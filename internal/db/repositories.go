package db

import "gorm.io/gorm"

type Repositories struct {
	Users          *UserRepository
	CycleEvents    *CycleEventRepository
	SymptomEntries *SymptomEntryRepository
	FactorRecords  *FactorRecordRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(database),
		CycleEvents:    NewCycleEventRepository(database),
		SymptomEntries: NewSymptomEntryRepository(database),
		FactorRecords:  NewFactorRecordRepository(database),
	}
}
