package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dkoroteev/stride/internal/models"
)

// ErrNoOpenRun reports a non-sentinel sample arriving while the user's
// open-run cursor is unset or references a run missing from the store. The
// ledger treats this as a recoverable inconsistency: the sample is dropped and
// later samples are still accepted.
var ErrNoOpenRun = errors.New("no open run for sample")

type LedgerUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateOpenRun(userID uint, runID *uint) error
}

type LedgerRunRepository interface {
	Create(run *models.Run) error
	FindByID(runID uint) (models.Run, bool, error)
	UpdateMetrics(runID uint, duration float64, distance float64, ascended float64, descended float64) error
}

// RunLedger turns a stream of per-sample readings into persisted runs with
// cumulative altitude bookkeeping. A sample whose duration, distance and
// relative altitude are all zero marks a session boundary: it opens a fresh
// run and moves the user's cursor onto it. Every other sample updates the run
// the cursor points at.
type RunLedger struct {
	users LedgerUserRepository
	runs  LedgerRunRepository

	mu        sync.Mutex
	userLocks map[uint]*sync.Mutex
}

func NewRunLedger(users LedgerUserRepository, runs LedgerRunRepository) *RunLedger {
	return &RunLedger{
		users:     users,
		runs:      runs,
		userLocks: make(map[uint]*sync.Mutex),
	}
}

// IsSessionBoundary reports whether a sample is the reserved all-zero triple
// that begins a new run. The triple cannot represent a legitimate reading.
func IsSessionBoundary(duration float64, distance float64, relativeAltitude float64) bool {
	return duration == 0 && distance == 0 && relativeAltitude == 0
}

// RecordSample routes one reading for the user. Duration and distance are
// cumulative within the session; relativeAltitude is the signed delta since
// the previous sample. The cursor read/decide/write sequence is serialized
// per user so concurrent imports cannot lose updates.
func (ledger *RunLedger) RecordSample(userID uint, duration float64, distance float64, relativeAltitude float64, date time.Time) error {
	lock := ledger.lockForUser(userID)
	lock.Lock()
	defer lock.Unlock()

	if IsSessionBoundary(duration, distance, relativeAltitude) {
		return ledger.openRun(userID, date)
	}
	return ledger.updateOpenRun(userID, duration, distance, relativeAltitude)
}

func (ledger *RunLedger) lockForUser(userID uint) *sync.Mutex {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	lock, ok := ledger.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		ledger.userLocks[userID] = lock
	}
	return lock
}

func (ledger *RunLedger) openRun(userID uint, date time.Time) error {
	run := models.Run{UserID: userID, Date: date}
	if err := ledger.runs.Create(&run); err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	if err := ledger.users.UpdateOpenRun(userID, &run.ID); err != nil {
		return fmt.Errorf("move open-run cursor to run %d: %w", run.ID, err)
	}
	log.Printf("run %d opened for user %d", run.ID, userID)
	return nil
}

func (ledger *RunLedger) updateOpenRun(userID uint, duration float64, distance float64, relativeAltitude float64) error {
	user, err := ledger.users.FindByID(userID)
	if err != nil {
		return fmt.Errorf("load user %d: %w", userID, err)
	}
	if user.OpenRunID == nil {
		log.Printf("user %d has no open run, sample dropped", userID)
		return ErrNoOpenRun
	}

	run, found, err := ledger.runs.FindByID(*user.OpenRunID)
	if err != nil {
		return fmt.Errorf("load run %d: %w", *user.OpenRunID, err)
	}
	if !found {
		log.Printf("open-run cursor of user %d references missing run %d, sample dropped", userID, *user.OpenRunID)
		return ErrNoOpenRun
	}

	// Duration and distance are overwritten, not summed: the caller supplies
	// cumulative-within-session totals. A delta of exactly zero counts as
	// ascent, keeping both sums non-decreasing.
	ascended := run.AltitudeAscended
	descended := run.AltitudeDescended
	if relativeAltitude < 0 {
		descended += -relativeAltitude
	} else {
		ascended += relativeAltitude
	}

	if err := ledger.runs.UpdateMetrics(run.ID, duration, distance, ascended, descended); err != nil {
		return fmt.Errorf("update run %d: %w", run.ID, err)
	}
	return nil
}
