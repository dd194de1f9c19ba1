package db

import "gorm.io/gorm"

type Repositories struct {
	Users *UserRepository
	Runs  *RunRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users: NewUserRepository(database),
		Runs:  NewRunRepository(database),
	}
}
