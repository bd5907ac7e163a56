package sync

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/deparrow/console/internal/adapter"
	"github.com/deparrow/console/internal/cache"
	"github.com/deparrow/console/models"
)

// JobsHook is the jobs domain view: a cached job list plus per-job detail,
// log and result reads, with submit/cancel mutations. Push job_update events
// merge by id into the list and detail entries; job_created forces a full
// list refetch since a partial event does not carry the list's sort
// position.
type JobsHook struct {
	hookBase
	opts    models.ListOptions
	listKey string
}

func newJobsHook(s *Session, opts models.ListOptions) *JobsHook {
	return &JobsHook{
		hookBase: newHookBase(s),
		opts:     opts,
		listKey:  keyJobsList(opts),
	}
}

// Attach subscribes the hook to job push topics and retains its list key.
func (h *JobsHook) Attach() {
	if !h.attached.CompareAndSwap(false, true) {
		return
	}
	h.retain(h.listKey)
	h.subscribe(models.TopicJobUpdate, h.onJobUpdate)
	h.subscribe(models.TopicJobCreated, h.onJobCreated)
}

func (h *JobsHook) Detach() { h.detach() }

// List returns the cached job list, loading it on first call.
func (h *JobsHook) List(ctx context.Context) ([]models.Job, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, h.listKey, func(ctx context.Context) (any, error) {
		resp, err := h.session.adapter.ListJobs(ctx, h.opts)
		if err != nil {
			return nil, err
		}
		return resp.Jobs, nil
	}, h.session.defaultOptions())
	if err != nil {
		return nil, err
	}
	return v.([]models.Job), nil
}

// Get returns one job with spec and, when finished, results.
func (h *JobsHook) Get(ctx context.Context, jobID string) (models.Job, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, keyJob(jobID), func(ctx context.Context) (any, error) {
		return h.session.adapter.GetJob(ctx, jobID)
	}, h.session.defaultOptions())
	if err != nil {
		return models.Job{}, err
	}
	return v.(models.Job), nil
}

// Logs returns the accumulated log lines of a job.
func (h *JobsHook) Logs(ctx context.Context, jobID string) (models.JobLogsResponse, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, keyJobLogs(jobID), func(ctx context.Context) (any, error) {
		return h.session.adapter.GetJobLogs(ctx, jobID)
	}, h.session.defaultOptions())
	if err != nil {
		return models.JobLogsResponse{}, err
	}
	return v.(models.JobLogsResponse), nil
}

// Results returns the outputs of a completed job.
func (h *JobsHook) Results(ctx context.Context, jobID string) (models.JobResults, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, keyJobResults(jobID), func(ctx context.Context) (any, error) {
		return h.session.adapter.GetJobResults(ctx, jobID)
	}, h.session.defaultOptions())
	if err != nil {
		return models.JobResults{}, err
	}
	return v.(models.JobResults), nil
}

// EstimateCost returns the client-side credit estimate for a spec, shown
// before submission.
func (h *JobsHook) EstimateCost(spec *models.JobSpec) float64 {
	return adapter.EstimateCreditCost(spec)
}

// Submit submits a job. On success every jobs list refetches and the wallet
// revalidates for the deducted credits.
func (h *JobsHook) Submit(ctx context.Context, spec *models.JobSpec) (models.SubmitJobResponse, error) {
	return Mutate(ctx, h.session, "submit job", func(ctx context.Context) (models.SubmitJobResponse, error) {
		return h.session.adapter.SubmitJob(ctx, spec)
	}, Effect{
		InvalidatePrefixes: []string{prefixJobsList},
		Invalidate:         []string{keyWallet, keyTransactions},
	})
}

// Cancel cancels a job. On success the job's detail and every jobs list
// refetch, and the wallet revalidates for the partial refund.
func (h *JobsHook) Cancel(ctx context.Context, jobID string) (models.CancelJobResponse, error) {
	return Mutate(ctx, h.session, "cancel job", func(ctx context.Context) (models.CancelJobResponse, error) {
		return h.session.adapter.CancelJob(ctx, jobID)
	}, Effect{
		InvalidatePrefixes: []string{prefixJobsList},
		Invalidate:         []string{keyJob(jobID), keyWallet, keyTransactions},
	})
}

func (h *JobsHook) onJobUpdate(f models.Frame) {
	ev, ok := h.decodeEvent(f)
	if !ok || ev.Job == nil {
		return
	}
	var partial models.Job
	if err := decodeRecord(ev.Job.Job, &partial); err != nil || partial.ID == "" {
		h.session.logger.Warn().Err(err).Msg("job update without decodable job record")
		return
	}

	h.session.cache.Merge(h.listKey, func(data any) (any, error) {
		jobs, _ := data.([]models.Job)
		return cache.MergeByID(jobs, partial, func(j models.Job) string { return j.ID })
	})
	h.session.cache.Merge(keyJob(partial.ID), func(data any) (any, error) {
		job, _ := data.(models.Job)
		return cache.MergeRecord(job, partial)
	})
}

func (h *JobsHook) onJobCreated(models.Frame) {
	// Created events force a full refetch: the new item's sort position is
	// not derivable from a partial payload.
	h.session.cache.InvalidatePrefix(prefixJobsList)
}

// Watch polls a job's detail view. Logs are polled only while the job is
// running; results are fetched once when it completes. Stop is idempotent
// and the watch also ends on its own once the job reaches a terminal state.
func (h *JobsHook) Watch(jobID string, interval time.Duration) *JobWatch {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	w := &JobWatch{stop: make(chan struct{}), done: make(chan struct{})}
	go h.watch(jobID, interval, w)
	return w
}

type JobWatch struct {
	stop    chan struct{}
	done    chan struct{}
	stopped atomic.Bool
}

func (w *JobWatch) Stop() {
	if w.stopped.CompareAndSwap(false, true) {
		close(w.stop)
	}
	<-w.done
}

func (h *JobsHook) watch(jobID string, interval time.Duration, w *JobWatch) {
	defer close(w.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log := h.session.logger.With().Str("job_id", jobID).Logger()

	for {
		select {
		case <-w.stop:
			return
		case <-h.ctx.Done():
			return
		case <-ticker.C:
		}

		h.session.cache.Invalidate(keyJob(jobID))
		job, err := h.Get(h.ctx, jobID)
		if err != nil {
			log.Warn().Err(err).Msg("job watch poll failed")
			continue
		}

		switch job.Status {
		case models.JobStatusRunning:
			h.session.cache.Invalidate(keyJobLogs(jobID))
			if _, err = h.Logs(h.ctx, jobID); err != nil {
				log.Warn().Err(err).Msg("job log poll failed")
			}
		case models.JobStatusCompleted:
			if _, err = h.Results(h.ctx, jobID); err != nil {
				log.Warn().Err(err).Msg("job results fetch failed")
			}
			return
		case models.JobStatusFailed, models.JobStatusCancelled:
			return
		}
	}
}
