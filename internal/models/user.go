package models

import "time"

const (
	SexMale   = "male"
	SexFemale = "female"
)

// User is a locally registered account. OpenRunID is the open-run cursor: it
// points at the run currently receiving incremental samples, or is nil when no
// session is in progress. Only the run ledger moves it.
type User struct {
	ID              uint      `gorm:"primaryKey"`
	Name            string    `gorm:"not null"`
	Email           string    `gorm:"uniqueIndex;not null"`
	PasswordHash    string    `gorm:"not null"`
	DateOfBirth     time.Time `gorm:"type:date;not null"`
	Sex             string    `gorm:"not null;default:male"`
	HeightMetres    float64   `gorm:"not null;default:0"`
	WeightKilograms float64   `gorm:"not null;default:0"`
	OpenRunID       *uint
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time
}

func ValidSex(value string) bool {
	return value == SexMale || value == SexFemale
}
