package api

import (
	"time"

	"github.com/cyralabs/cyra/internal/db"
	"github.com/cyralabs/cyra/internal/services"
	"go.uber.org/zap"
)

const (
	authCookieName = "cyra_auth"
	contextUserKey = "current_user"

	defaultAuthTokenTTL = 7 * 24 * time.Hour
)

type Handler struct {
	repos        *db.Repositories
	auth         *services.AuthService
	analysis     *services.AnalysisService
	export       *services.ExportService
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	windowDays   int
	logger       *zap.Logger
}

type HandlerOptions struct {
	Repositories *db.Repositories
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	WindowDays   int
	Logger       *zap.Logger
	Analysis     *services.AnalysisService
}

func NewHandler(options HandlerOptions) *Handler {
	location := options.Location
	if location == nil {
		location = time.UTC
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	repos := options.Repositories
	analysis := options.Analysis
	if analysis == nil {
		analysis = services.NewAnalysisService(repos.Users, repos.CycleEvents, repos.SymptomEntries, repos.FactorRecords, logger)
	}

	return &Handler{
		repos:        repos,
		auth:         services.NewAuthService(repos.Users),
		analysis:     analysis,
		export:       services.NewExportService(repos.CycleEvents, repos.SymptomEntries),
		secretKey:    []byte(options.SecretKey),
		location:     location,
		cookieSecure: options.CookieSecure,
		windowDays:   options.WindowDays,
		logger:       logger,
	}
}

func (handler *Handler) now() time.Time {
	return time.Now().In(handler.location)
}
