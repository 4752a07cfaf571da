package services

import (
	"context"
	"sync"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-co-op/gocron"
)

type Schedule int

const (
	Hourly Schedule = iota
	Daily           // 04:00 UTC
)

func (s Schedule) String() string {
	switch s {
	case Hourly:
		return "hourly"
	case Daily:
		return "daily"
	default:
		return "unknown"
	}
}

// Job is a named unit of background work run on a fixed schedule
type Job interface {
	Name() string
	Execute(ctx context.Context) error
	Schedule() Schedule
}

// SchedulerService owns the gocron scheduler. Job names are unique and double
// as gocron tags.
type SchedulerService struct {
	cron    *gocron.Scheduler
	jobs    map[string]Job
	log     logger.Logger
	started bool
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewSchedulerService() *SchedulerService {
	cron := gocron.NewScheduler(time.UTC)
	cron.TagsUnique()
	ctx, cancel := context.WithCancel(context.Background())

	return &SchedulerService{
		cron:   cron,
		jobs:   make(map[string]Job),
		log:    logger.New("scheduler"),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *SchedulerService) every(schedule Schedule) (*gocron.Scheduler, bool) {
	switch schedule {
	case Hourly:
		return s.cron.Every(1).Hour(), true
	case Daily:
		return s.cron.Every(1).Day().At("04:00"), true
	default:
		return nil, false
	}
}

func (s *SchedulerService) run(ctx context.Context, job Job) error {
	log := s.log.TraceFromContext(ctx).Function("run")
	started := time.Now()

	if err := job.Execute(ctx); err != nil {
		return log.Err("job failed", err, "job", job.Name())
	}

	log.Info("job finished", "job", job.Name(), "duration", time.Since(started))
	return nil
}

func (s *SchedulerService) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("AddJob")

	if _, exists := s.jobs[job.Name()]; exists {
		return log.Error("job already registered", "job", job.Name())
	}

	every, ok := s.every(job.Schedule())
	if !ok {
		return log.Error("unknown job schedule", "job", job.Name(), "schedule", int(job.Schedule()))
	}

	_, err := every.Tag(job.Name()).Do(func() {
		_ = s.run(s.jobContext(), job)
	})
	if err != nil {
		return log.Err("failed to register job with scheduler", err, "job", job.Name())
	}

	s.jobs[job.Name()] = job
	log.Info("Job registered", "job", job.Name(), "schedule", job.Schedule().String())

	return nil
}

func (s *SchedulerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("Start")

	if s.started {
		return nil
	}

	if len(s.jobs) == 0 {
		log.Info("No jobs registered, scheduler will not start")
		return nil
	}

	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}

	s.cron.StartAsync()
	s.started = true

	for _, job := range s.cron.Jobs() {
		log.Info("Job scheduled", "tags", job.Tags(), "nextRun", job.NextRun())
	}

	return nil
}

// Stop cancels running jobs and halts the scheduler. A later Start runs jobs
// with a fresh context.
func (s *SchedulerService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	s.cancel()
	s.cron.Stop()
	s.started = false

	s.log.Function("Stop").Info("Scheduler stopped")
	return nil
}

// jobContext is the context scheduled runs get; Stop cancels it
func (s *SchedulerService) jobContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *SchedulerService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *SchedulerService) GetJobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// RunJobByName executes a registered job synchronously, outside its schedule
func (s *SchedulerService) RunJobByName(ctx context.Context, jobName string) error {
	s.mu.Lock()
	job, ok := s.jobs[jobName]
	s.mu.Unlock()

	if !ok {
		return s.log.Function("RunJobByName").Error("job not found", "job", jobName)
	}

	return s.run(ctx, job)
}
