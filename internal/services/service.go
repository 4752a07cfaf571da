package services

import (
	"fyyur/internal/database"
	"fyyur/internal/repositories"
)

type Service struct {
	Transaction *TransactionService
	Lookup      *LookupService
	Scheduler   *SchedulerService
}

func New(db database.DB, repos repositories.Repository) Service {
	return Service{
		Transaction: NewTransactionService(db),
		Lookup:      NewLookupService(repos),
		Scheduler:   NewSchedulerService(),
	}
}
