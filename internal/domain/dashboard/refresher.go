package dashboard

import (
	"context"
	"time"

	"hrmsconsole/internal/platform/jobs"
	"hrmsconsole/internal/platform/store"
)

type State struct {
	Summary Summary
	Loaded  bool
}

type Refreshed struct {
	Summary Summary
}

func reduce(_ State, action Refreshed) State {
	return State{Summary: action.Summary, Loaded: true}
}

// Refresher keeps the most recent summary. Results of a refresh whose context
// ended are discarded.
type Refresher struct {
	service *Service
	state   *store.Store[State, Refreshed]
}

func NewRefresher(service *Service) *Refresher {
	return &Refresher{
		service: service,
		state:   store.New(State{}, reduce),
	}
}

func (r *Refresher) Refresh(ctx context.Context) (Summary, error) {
	summary, err := r.service.Load(ctx)
	if err != nil {
		return r.state.State().Summary, err
	}
	next, applied := r.state.DispatchIfActive(ctx, Refreshed{Summary: summary})
	if !applied {
		return next.Summary, ctx.Err()
	}
	return next.Summary, nil
}

// Latest returns the last applied summary and whether any refresh has landed.
func (r *Refresher) Latest() (Summary, bool) {
	st := r.state.State()
	return st.Summary, st.Loaded
}

// Revision counts applied refreshes, so pollers can tell whether the summary moved.
func (r *Refresher) Revision() uint64 {
	return r.state.Version()
}

// RefreshNow runs an on-demand refresh through queue so it is booked with the
// scheduled runs. A nil queue refreshes directly.
func (r *Refresher) RefreshNow(ctx context.Context, queue *jobs.Service) (Summary, error) {
	if queue == nil {
		return r.Refresh(ctx)
	}
	var summary Summary
	_, err := queue.RunNow(ctx, jobs.JobDashboardRefresh, func(ctx context.Context) (any, error) {
		var err error
		summary, err = r.Refresh(ctx)
		if err != nil {
			return nil, err
		}
		return runDetails(summary), nil
	})
	return summary, err
}

// Start schedules a refresh right away and then every interval on the jobs queue.
func (r *Refresher) Start(ctx context.Context, queue *jobs.Service, interval time.Duration) {
	queue.Enqueue(jobs.JobDashboardRefresh, r.run)
	queue.Every(ctx, jobs.JobDashboardRefresh, interval, r.run)
}

func (r *Refresher) run(ctx context.Context) (any, error) {
	summary, err := r.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return runDetails(summary), nil
}

func runDetails(summary Summary) map[string]any {
	return map[string]any{"failures": summary.Failures, "refreshedAt": summary.RefreshedAt}
}
