package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/deparrow/console/internal/adapter"
	"github.com/deparrow/console/models"
)

func jobUpdatePayload(job map[string]any) map[string]any {
	return map[string]any{"job": job}
}

// ── reads ────────────────────────────────────────────────────────────────────

func TestJobsHook_ListIsCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, srv := newTestSession(t, ctrl)

	srv.EXPECT().ListJobs(gomock.Any(), models.ListOptions{}).Return(models.JobListResponse{
		Jobs: []models.Job{{ID: "j-1", Status: models.JobStatusRunning}},
	}, nil).Times(1)

	h := s.Jobs(models.ListOptions{})
	h.Attach()
	defer h.Detach()

	for i := 0; i < 3; i++ {
		jobs, err := h.List(context.Background())
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "j-1", jobs[0].ID)
	}
}

func TestJobsHook_ListKeysAreFilterScoped(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, srv := newTestSession(t, ctrl)

	all := models.ListOptions{}
	running := models.ListOptions{Status: "running"}
	srv.EXPECT().ListJobs(gomock.Any(), all).Return(models.JobListResponse{
		Jobs: []models.Job{{ID: "j-1"}, {ID: "j-2"}},
	}, nil)
	srv.EXPECT().ListJobs(gomock.Any(), running).Return(models.JobListResponse{
		Jobs: []models.Job{{ID: "j-1"}},
	}, nil)

	allJobs, err := s.Jobs(all).List(context.Background())
	require.NoError(t, err)
	runningJobs, err := s.Jobs(running).List(context.Background())
	require.NoError(t, err)

	assert.Len(t, allJobs, 2)
	assert.Len(t, runningJobs, 1)
}

// ── push merges ──────────────────────────────────────────────────────────────

func TestJobsHook_UpdateEventMergesByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, srv := newTestSession(t, ctrl)

	srv.EXPECT().ListJobs(gomock.Any(), gomock.Any()).Return(models.JobListResponse{
		Jobs: []models.Job{{ID: "j-1", Status: models.JobStatusRunning, Name: "x"}},
	}, nil).Times(1)

	h := s.Jobs(models.ListOptions{})
	h.Attach()
	defer h.Detach()

	_, err := h.List(context.Background())
	require.NoError(t, err)

	push(t, s, models.TopicJobUpdate, jobUpdatePayload(map[string]any{
		"job_id": "j-1",
		"status": "completed",
	}))

	jobs, err := h.List(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusCompleted, jobs[0].Status)
	assert.Equal(t, "x", jobs[0].Name, "fields outside the partial must survive the merge")
}

func TestJobsHook_CreatedEventForcesRefetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, srv := newTestSession(t, ctrl)

	first := srv.EXPECT().ListJobs(gomock.Any(), gomock.Any()).Return(models.JobListResponse{
		Jobs: []models.Job{{ID: "j-1"}},
	}, nil)
	srv.EXPECT().ListJobs(gomock.Any(), gomock.Any()).Return(models.JobListResponse{
		Jobs: []models.Job{{ID: "j-1"}, {ID: "j-2"}},
	}, nil).After(first)

	h := s.Jobs(models.ListOptions{})
	h.Attach()
	defer h.Detach()

	_, err := h.List(context.Background())
	require.NoError(t, err)

	push(t, s, models.TopicJobCreated, jobUpdatePayload(map[string]any{"job_id": "j-2"}))

	// Stale-while-revalidate: the first read after invalidation still serves
	// the old list while the refetch runs.
	_, err = h.List(context.Background())
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		jobs, err := h.List(context.Background())
		return err == nil && len(jobs) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestJobsHook_DetachStopsMerges(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, srv := newTestSession(t, ctrl)

	srv.EXPECT().ListJobs(gomock.Any(), gomock.Any()).Return(models.JobListResponse{
		Jobs: []models.Job{{ID: "j-1", Status: models.JobStatusRunning}},
	}, nil).Times(1)

	h := s.Jobs(models.ListOptions{})
	h.Attach()
	_, err := h.List(context.Background())
	require.NoError(t, err)

	h.Detach()

	push(t, s, models.TopicJobUpdate, jobUpdatePayload(map[string]any{
		"job_id": "j-1",
		"status": "completed",
	}))

	v, ok := s.cache.Peek(keyJobsList(models.ListOptions{}))
	require.True(t, ok)
	assert.Equal(t, models.JobStatusRunning, v.([]models.Job)[0].Status,
		"a detached hook must receive zero further dispatches")
}

// ── mutations ────────────────────────────────────────────────────────────────

func TestJobsHook_CancelInvalidatesListAndWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, srv := newTestSession(t, ctrl)

	first := srv.EXPECT().ListJobs(gomock.Any(), gomock.Any()).Return(models.JobListResponse{
		Jobs: []models.Job{{ID: "j-1", Status: models.JobStatusRunning}},
	}, nil)
	srv.EXPECT().CancelJob(gomock.Any(), "j-1").Return(models.CancelJobResponse{
		Status: "cancelled", JobID: "j-1", RefundAmount: 0.5,
	}, nil)
	srv.EXPECT().ListJobs(gomock.Any(), gomock.Any()).Return(models.JobListResponse{
		Jobs: []models.Job{{ID: "j-1", Status: models.JobStatusCancelled}},
	}, nil).After(first)

	h := s.Jobs(models.ListOptions{})
	h.Attach()
	defer h.Detach()

	_, err := h.List(context.Background())
	require.NoError(t, err)

	resp, err := h.Cancel(context.Background(), "j-1")
	require.NoError(t, err)
	assert.Equal(t, 0.5, resp.RefundAmount)

	assert.Eventually(t, func() bool {
		jobs, err := h.List(context.Background())
		return err == nil && jobs[0].Status == models.JobStatusCancelled
	}, time.Second, 5*time.Millisecond, "cancelled job must disappear from the running view")
}

func TestJobsHook_FailedMutationHasNoCacheEffect(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, srv := newTestSession(t, ctrl)

	srv.EXPECT().ListJobs(gomock.Any(), gomock.Any()).Return(models.JobListResponse{
		Jobs: []models.Job{{ID: "j-1", Status: models.JobStatusRunning}},
	}, nil).Times(1)
	srv.EXPECT().CancelJob(gomock.Any(), "j-1").
		Return(models.CancelJobResponse{}, adapter.NewAPIError(404, "job not found", ""))

	h := s.Jobs(models.ListOptions{})
	h.Attach()
	defer h.Detach()

	_, err := h.List(context.Background())
	require.NoError(t, err)

	_, err = h.Cancel(context.Background(), "j-1")
	require.Error(t, err)

	// The single ListJobs expectation proves nothing was invalidated.
	jobs, err := h.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusRunning, jobs[0].Status)

	// The failure surfaced the server message as a notification.
	select {
	case note := <-s.Notifications():
		assert.Contains(t, note.Message, "job not found")
	case <-time.After(time.Second):
		t.Fatal("expected a mutation failure notification")
	}
}

// ── state-driven polling ─────────────────────────────────────────────────────

func TestJobsHook_WatchPollsLogsWhileRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, srv := newTestSession(t, ctrl)

	srv.EXPECT().GetJob(gomock.Any(), "j-1").Return(models.Job{
		ID: "j-1", Status: models.JobStatusRunning,
	}, nil).MinTimes(2)
	srv.EXPECT().GetJobLogs(gomock.Any(), "j-1").Return(models.JobLogsResponse{
		JobID: "j-1", Lines: []string{"step 1"},
	}, nil).MinTimes(2)

	h := s.Jobs(models.ListOptions{})
	h.Attach()
	defer h.Detach()

	w := h.Watch("j-1", 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	w.Stop()
}

func TestJobsHook_WatchFetchesResultsOnceCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, srv := newTestSession(t, ctrl)

	srv.EXPECT().GetJob(gomock.Any(), "j-1").Return(models.Job{
		ID: "j-1", Status: models.JobStatusCompleted,
	}, nil).Times(1)
	srv.EXPECT().GetJobResults(gomock.Any(), "j-1").Return(models.JobResults{
		ExitCode: 0, Stdout: "done",
	}, nil).Times(1)
	// No GetJobLogs expectation: completed jobs are not log-polled.

	h := s.Jobs(models.ListOptions{})
	h.Attach()
	defer h.Detach()

	w := h.Watch("j-1", 5*time.Millisecond)
	defer w.Stop()

	assert.Eventually(t, func() bool {
		_, ok := s.cache.Peek(keyJobResults("j-1"))
		return ok
	}, time.Second, 5*time.Millisecond)
}
