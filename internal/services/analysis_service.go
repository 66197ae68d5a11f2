package services

import (
	"sync"
	"time"

	"github.com/cyralabs/cyra/internal/metrics"
	"github.com/cyralabs/cyra/internal/models"
	"go.uber.org/zap"
)

type AnalysisEventReader interface {
	ListByUser(userID uint) ([]models.CycleEvent, error)
}

type AnalysisEntryReader interface {
	ListByUser(userID uint) ([]models.SymptomEntry, error)
}

type AnalysisFactorReader interface {
	ListByUser(userID uint) ([]models.FactorRecord, error)
}

type AnalysisUserReader interface {
	FindByID(userID uint) (models.User, bool, error)
	ListIDs() ([]uint, error)
}

// CorrelationBundle pairs the two ranked correlation lists for one user.
type CorrelationBundle struct {
	Nutrition []FactorCorrelation `json:"nutrition"`
	Activity  []FactorCorrelation `json:"activity"`
}

// AnalysisService loads a user's history and runs the pure analysis pipeline
// over it. A snapshot cache holds the most recent scheduled recompute per
// user; on-demand requests always recompute from fresh history.
type AnalysisService struct {
	users   AnalysisUserReader
	events  AnalysisEventReader
	entries AnalysisEntryReader
	factors AnalysisFactorReader
	logger  *zap.Logger

	mu        sync.RWMutex
	snapshots map[uint]CycleAnalysis
}

func NewAnalysisService(users AnalysisUserReader, events AnalysisEventReader, entries AnalysisEntryReader, factors AnalysisFactorReader, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{
		users:     users,
		events:    events,
		entries:   entries,
		factors:   factors,
		logger:    logger,
		snapshots: make(map[uint]CycleAnalysis),
	}
}

// AnalysisForUser recomputes the full cycle analysis from persisted history.
func (service *AnalysisService) AnalysisForUser(userID uint, windowDays int, now time.Time) (CycleAnalysis, error) {
	started := time.Now()

	user, events, entries, err := service.loadHistory(userID)
	if err != nil {
		metrics.ObserveAnalysis(time.Since(started), metrics.OutcomeError)
		return CycleAnalysis{}, err
	}

	analysis := BuildCycleAnalysis(user, events, entries, windowDays, now)
	metrics.ObserveAnalysis(time.Since(started), metrics.OutcomeSuccess)
	return analysis, nil
}

// StageForUser runs only the menopause stage classifier.
func (service *AnalysisService) StageForUser(userID uint, windowDays int, now time.Time) (StageAssessment, error) {
	user, events, entries, err := service.loadHistory(userID)
	if err != nil {
		return StageAssessment{}, err
	}
	return ClassifyMenopauseStage(BuildStageProfile(user, events, entries, windowDays, now)), nil
}

// CorrelationsForUser computes the ranked nutrition and activity correlation
// lists.
func (service *AnalysisService) CorrelationsForUser(userID uint) (CorrelationBundle, error) {
	events, err := service.events.ListByUser(userID)
	if err != nil {
		return CorrelationBundle{}, err
	}
	entries, err := service.entries.ListByUser(userID)
	if err != nil {
		return CorrelationBundle{}, err
	}
	records, err := service.factors.ListByUser(userID)
	if err != nil {
		return CorrelationBundle{}, err
	}

	return CorrelationBundle{
		Nutrition: BuildNutritionCorrelations(records, entries, events),
		Activity:  BuildActivityCorrelations(records, entries, events),
	}, nil
}

// InsightsForUser runs the full pipeline and generates the ephemeral insight
// bundle.
func (service *AnalysisService) InsightsForUser(userID uint, windowDays int, now time.Time) (InsightBundle, error) {
	analysis, err := service.AnalysisForUser(userID, windowDays, now)
	if err != nil {
		return InsightBundle{}, err
	}
	correlations, err := service.CorrelationsForUser(userID)
	if err != nil {
		return InsightBundle{}, err
	}
	return GenerateInsights(analysis, correlations.Nutrition, correlations.Activity), nil
}

// RefreshSnapshots recomputes and caches the analysis for every user. Called
// by the daily scheduler; failures for one user never block the rest.
func (service *AnalysisService) RefreshSnapshots(windowDays int, now time.Time) int {
	userIDs, err := service.users.ListIDs()
	if err != nil {
		service.logger.Error("list users for snapshot refresh", zap.Error(err))
		return 0
	}

	refreshed := 0
	for _, userID := range userIDs {
		analysis, err := service.AnalysisForUser(userID, windowDays, now)
		if err != nil {
			service.logger.Warn("snapshot refresh failed",
				zap.Uint("user_id", userID),
				zap.Error(err))
			continue
		}
		service.mu.Lock()
		service.snapshots[userID] = analysis
		service.mu.Unlock()
		refreshed++
	}

	metrics.SetSnapshotCount(refreshed)
	return refreshed
}

// Snapshot returns the most recent scheduled analysis for a user, if any.
func (service *AnalysisService) Snapshot(userID uint) (CycleAnalysis, bool) {
	service.mu.RLock()
	defer service.mu.RUnlock()
	analysis, ok := service.snapshots[userID]
	return analysis, ok
}

func (service *AnalysisService) loadHistory(userID uint) (*models.User, []models.CycleEvent, []models.SymptomEntry, error) {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return nil, nil, nil, err
	}
	var userRef *models.User
	if found {
		userRef = &user
	}

	events, err := service.events.ListByUser(userID)
	if err != nil {
		return nil, nil, nil, err
	}
	entries, err := service.entries.ListByUser(userID)
	if err != nil {
		return nil, nil, nil, err
	}
	return userRef, events, entries, nil
}
