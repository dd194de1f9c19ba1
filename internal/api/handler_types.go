package api

import (
	"time"

	"github.com/dkoroteev/stride/internal/db"
	"github.com/dkoroteev/stride/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	authCookieName = "stride_session"
	contextUserKey = "current_user"

	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	loginLimiter *attemptLimiter

	repositories  *db.Repositories
	authService   *services.AuthService
	runLedger     *services.RunLedger
	importService *services.ImportService
	exportService *services.ExportService
}

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}
