package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dogumharitan777/astro-api/internal/ports/jobs"
)

// DefaultRetries паузы между повторами упавшей джобы
var DefaultRetries = []time.Duration{
	1 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
}

// Scheduler управляет запуском периодических джоб
type Scheduler struct {
	jobs    []jobs.Job
	retries []time.Duration
	log     *slog.Logger
	wg      sync.WaitGroup
}

// NewScheduler создаёт новый планировщик джоб
func NewScheduler(log *slog.Logger, retries []time.Duration) *Scheduler {
	return &Scheduler{
		jobs:    make([]jobs.Job, 0),
		retries: retries,
		log:     log,
	}
}

// Register регистрирует джобу в планировщике
func (s *Scheduler) Register(job jobs.Job) {
	s.jobs = append(s.jobs, job)
	s.log.Debug("job registered", "job_name", job.Name(), "total_jobs", len(s.jobs))
}

// Start запускает все зарегистрированные джобы, сам не блокирует
func (s *Scheduler) Start(ctx context.Context) {
	if len(s.jobs) == 0 {
		s.log.Debug("no jobs registered, scheduler not started")
		return
	}

	s.log.Info("starting job scheduler", "jobs_count", len(s.jobs))

	for _, job := range s.jobs {
		job := job
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runJob(ctx, job)
		}()
	}
}

// Wait ждёт остановки всех джоб после отмены контекста
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// runJob запускает отдельную джобу в цикле
func (s *Scheduler) runJob(ctx context.Context, job jobs.Job) {
	jobName := job.Name()
	for {
		now := time.Now()
		timer := time.NewTimer(job.NextRun(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("job stopped by context", "job_name", jobName)
			return
		case <-timer.C:
			if err := s.executeJobWithRetry(ctx, job); err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				s.log.Error("job failed after all retries",
					"job_name", jobName,
					"error", err,
				)
			} else {
				s.log.Info("job executed successfully", "job_name", jobName)
			}
		}
	}
}

// executeJobWithRetry выполняет джобу и повторяет её после каждой паузы из retries
func (s *Scheduler) executeJobWithRetry(ctx context.Context, job jobs.Job) error {
	err := job.Run(ctx)
	if err == nil {
		return nil
	}
	attemptErrors := []error{fmt.Errorf("attempt 1: %w", err)}

	for i, retryDelay := range s.retries {
		s.log.Warn("job execution failed, will retry",
			"job_name", job.Name(),
			"attempt", i+1,
			"retries_remaining", len(s.retries)-i,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}

		if err = job.Run(ctx); err == nil {
			return nil
		}
		attemptErrors = append(attemptErrors, fmt.Errorf("attempt %d: %w", i+2, err))
	}

	return errors.Join(attemptErrors...)
}
