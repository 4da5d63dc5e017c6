package main

import (
	"github.com/hibiken/asynq"

	loanJob "library-backend/internal/domains/loan/job"
	"library-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	overdueSweep *loanJob.OverdueSweepHandler
	dueSoon      *loanJob.DueSoonHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		overdueSweep: loanJob.NewOverdueSweepHandler(c.LoanService),
		dueSoon:      loanJob.NewDueSoonHandler(c.LoanService),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(loanJob.TypeOverdueSweep, h.overdueSweep.ProcessTask)
	mux.HandleFunc(loanJob.TypeDueSoonReminders, h.dueSoon.ProcessTask)
}
