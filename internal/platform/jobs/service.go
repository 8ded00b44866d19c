package jobs

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

const (
	JobDashboardRefresh = "dashboard_refresh"

	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type RunFunc func(context.Context) (any, error)

type Run struct {
	JobType     string    `json:"jobType"`
	Status      string    `json:"status"`
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt,omitempty"`
	Error       string    `json:"error,omitempty"`
	Details     any       `json:"details,omitempty"`
	Count       int       `json:"count"`
}

type Service struct {
	queue chan job

	mu   sync.Mutex
	runs map[string]Run
}

type job struct {
	Type string
	Run  RunFunc
}

func New(queueSize int) *Service {
	if queueSize <= 0 {
		queueSize = 128
	}
	return &Service{
		queue: make(chan job, queueSize),
		runs:  map[string]Run{},
	}
}

// Start runs the queue worker until ctx is done.
func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
}

// Every enqueues run on a fixed interval until ctx is done. A non-positive
// interval disables the schedule.
func (s *Service) Every(ctx context.Context, jobType string, interval time.Duration, run RunFunc) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Enqueue(jobType, run)
			}
		}
	}()
}

func (s *Service) Enqueue(jobType string, run RunFunc) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run RunFunc) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// Runs returns the last run of every job type, ordered by type.
func (s *Service) Runs() []Run {
	s.mu.Lock()
	out := make([]Run, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, run)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].JobType < out[j].JobType })
	return out
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	s.mu.Lock()
	run := s.runs[j.Type]
	run.JobType = j.Type
	run.Status = StatusRunning
	run.StartedAt = time.Now().UTC()
	run.CompletedAt = time.Time{}
	run.Error = ""
	run.Count++
	s.runs[j.Type] = run
	s.mu.Unlock()

	details, err := j.Run(ctx)

	s.mu.Lock()
	run = s.runs[j.Type]
	run.Status = StatusCompleted
	run.Details = details
	if err != nil {
		run.Status = StatusFailed
		run.Error = err.Error()
	}
	run.CompletedAt = time.Now().UTC()
	s.runs[j.Type] = run
	s.mu.Unlock()

	return details, err
}
