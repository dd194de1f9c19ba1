package api

import (
	"time"

	"github.com/dkoroteev/stride/internal/db"
	"github.com/dkoroteev/stride/internal/services"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, cookieSecure bool) *Handler {
	if location == nil {
		location = time.UTC
	}
	handler := &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
		loginLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database)
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.runLedger = services.NewRunLedger(handler.repositories.Users, handler.repositories.Runs)
	handler.importService = services.NewImportService(handler.runLedger)
	handler.exportService = services.NewExportService(handler.repositories.Runs)
	return handler
}
