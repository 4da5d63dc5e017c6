package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"library-backend/internal/domains/loan/job"
	"library-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress, redisPassword string, redisDB int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress, Password: redisPassword, DB: redisDB},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterCirculationJobs wires the recurring loan maintenance tasks.
func (s *Scheduler) RegisterCirculationJobs() error {
	if err := s.registerOverdueSweepJob(); err != nil {
		return err
	}
	return s.registerDueSoonJob()
}

// Overdue sweep runs hourly so a loan shows up overdue in reports and
// notifications within the hour it crosses its due date.
func (s *Scheduler) registerOverdueSweepJob() error {
	payload, err := json.Marshal(job.SweepPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(job.TypeOverdueSweep, payload)

	_, err = s.scheduler.Register(
		"0 * * * *",
		task,
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register OverdueSweep job", err)
		return err
	}

	logger.Info("Registered OverdueSweep: hourly", map[string]interface{}{})
	return nil
}

// Reminders go out once a day in the morning, when patrons are likely
// to read them.
func (s *Scheduler) registerDueSoonJob() error {
	payload, err := json.Marshal(job.SweepPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(job.TypeDueSoonReminders, payload)

	_, err = s.scheduler.Register(
		"0 7 * * *",
		task,
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register DueSoonReminders job", err)
		return err
	}

	logger.Info("Registered DueSoonReminders: daily at 7 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
