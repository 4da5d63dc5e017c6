package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/loan/service"
	"library-backend/pkg/logger"
)

// Task types handled by the circulation worker.
const (
	TypeOverdueSweep     = "loan:overdue_sweep"
	TypeDueSoonReminders = "loan:due_soon_reminders"
)

type SweepPayload struct {
	Date time.Time `json:"date,omitempty"`
}

// OverdueSweepHandler moves past-due active loans to overdue and
// notifies each affected patron once.
type OverdueSweepHandler struct {
	loans service.Service
}

func NewOverdueSweepHandler(loans service.Service) *OverdueSweepHandler {
	return &OverdueSweepHandler{loans: loans}
}

func (h *OverdueSweepHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload SweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("unmarshal overdue sweep payload", err)
		return err
	}

	moved, err := h.loans.SweepOverdue(ctx)
	if err != nil {
		logger.Error("overdue sweep", err)
		return err
	}

	log.Info().
		Int("loans_marked_overdue", moved).
		Msg("Overdue sweep completed")
	return nil
}

// DueSoonHandler reminds patrons about active loans approaching their
// due date.
type DueSoonHandler struct {
	loans service.Service
}

func NewDueSoonHandler(loans service.Service) *DueSoonHandler {
	return &DueSoonHandler{loans: loans}
}

func (h *DueSoonHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload SweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("unmarshal due soon payload", err)
		return err
	}

	sent, err := h.loans.SendDueSoonReminders(ctx)
	if err != nil {
		logger.Error("due soon reminders", err)
		return err
	}

	log.Info().
		Int("reminders_sent", sent).
		Msg("Due date reminders completed")
	return nil
}
