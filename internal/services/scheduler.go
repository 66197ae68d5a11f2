package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AnalysisScheduler triggers the daily snapshot refresh. The core pipeline
// itself stays callable on demand; this is scheduling glue around it.
type AnalysisScheduler struct {
	analysis   *AnalysisService
	logger     *zap.Logger
	spec       string
	windowDays int
	cron       *cron.Cron
}

func NewAnalysisScheduler(analysis *AnalysisService, logger *zap.Logger, spec string, windowDays int) *AnalysisScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spec == "" {
		spec = "0 3 * * *"
	}
	return &AnalysisScheduler{
		analysis:   analysis,
		logger:     logger,
		spec:       spec,
		windowDays: windowDays,
	}
}

// Start runs one refresh immediately, then on the cron schedule until the
// context is cancelled.
func (scheduler *AnalysisScheduler) Start(ctx context.Context) error {
	scheduler.cron = cron.New()
	if _, err := scheduler.cron.AddFunc(scheduler.spec, scheduler.refresh); err != nil {
		return err
	}

	go scheduler.refresh()
	scheduler.cron.Start()

	go func() {
		<-ctx.Done()
		scheduler.Stop()
	}()

	scheduler.logger.Info("analysis scheduler started", zap.String("spec", scheduler.spec))
	return nil
}

func (scheduler *AnalysisScheduler) Stop() {
	if scheduler.cron == nil {
		return
	}
	stopCtx := scheduler.cron.Stop()
	<-stopCtx.Done()
	scheduler.logger.Info("analysis scheduler stopped")
}

func (scheduler *AnalysisScheduler) refresh() {
	started := time.Now()
	refreshed := scheduler.analysis.RefreshSnapshots(scheduler.windowDays, time.Now())
	scheduler.logger.Info("snapshot refresh complete",
		zap.Int("users", refreshed),
		zap.Duration("took", time.Since(started)))
}
