package db

import (
	"errors"
	"time"

	"github.com/dkoroteev/stride/internal/models"
	"gorm.io/gorm"
)

type RunRepository struct {
	database *gorm.DB
}

func NewRunRepository(database *gorm.DB) *RunRepository {
	return &RunRepository{database: database}
}

func (repo *RunRepository) Create(run *models.Run) error {
	return repo.database.Create(run).Error
}

// FindByID reports found=false for a missing run instead of surfacing
// gorm.ErrRecordNotFound, since a dangling cursor is an expected condition
// for the ledger rather than a query failure.
func (repo *RunRepository) FindByID(runID uint) (models.Run, bool, error) {
	var run models.Run
	if err := repo.database.First(&run, runID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Run{}, false, nil
		}
		return models.Run{}, false, err
	}
	return run, true, nil
}

// UpdateMetrics writes the four run metrics back in a single update.
func (repo *RunRepository) UpdateMetrics(runID uint, duration float64, distance float64, ascended float64, descended float64) error {
	return repo.database.Model(&models.Run{}).Where("id = ?", runID).Updates(map[string]any{
		"duration":           duration,
		"distance":           distance,
		"altitude_ascended":  ascended,
		"altitude_descended": descended,
	}).Error
}

// ListByUserRange returns the user's runs ordered by date then id. Either
// bound may be nil to leave that side of the range open.
func (repo *RunRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.Run, error) {
	query := repo.database.Model(&models.Run{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	runs := make([]models.Run, 0)
	if err := query.Order("date ASC, id ASC").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
