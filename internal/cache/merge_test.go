package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deparrow/console/models"
)

func jobID(j models.Job) string { return j.ID }

func TestMergeRecord(t *testing.T) {
	dst := models.Job{ID: "j-1", Status: models.JobStatusRunning, Name: "train", CreditCost: 2.5}
	partial := models.Job{ID: "j-1", Status: models.JobStatusCompleted}

	got, err := MergeRecord(dst, partial)
	require.NoError(t, err)

	assert.Equal(t, models.JobStatusCompleted, got.Status)
	assert.Equal(t, "train", got.Name, "field absent from the partial is preserved")
	assert.Equal(t, 2.5, got.CreditCost)
	assert.Equal(t, models.JobStatusRunning, dst.Status, "input is not mutated")
}

func TestMergeByID(t *testing.T) {
	base := func() []models.Job {
		return []models.Job{
			{ID: "j-1", Status: models.JobStatusRunning, Name: "a"},
			{ID: "j-2", Status: models.JobStatusPending, Name: "b"},
			{ID: "j-3", Status: models.JobStatusRunning, Name: "c"},
		}
	}

	tests := []struct {
		name       string
		partial    models.Job
		wantLen    int
		wantIdx    int
		wantStatus models.JobStatus
	}{
		{
			name:       "matched id merges in place",
			partial:    models.Job{ID: "j-2", Status: models.JobStatusCancelled},
			wantLen:    3,
			wantIdx:    1,
			wantStatus: models.JobStatusCancelled,
		},
		{
			name:       "unmatched id appends",
			partial:    models.Job{ID: "j-9", Status: models.JobStatusPending},
			wantLen:    4,
			wantIdx:    3,
			wantStatus: models.JobStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MergeByID(base(), tt.partial, jobID)
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.partial.ID, got[tt.wantIdx].ID, "position preserved")
			assert.Equal(t, tt.wantStatus, got[tt.wantIdx].Status)

			// Exactly one record per id.
			seen := map[string]int{}
			for _, j := range got {
				seen[j.ID]++
			}
			for id, n := range seen {
				assert.Equal(t, 1, n, "duplicate id %s", id)
			}
		})
	}
}

func TestMergeByID_RepeatedEventsKeepLatestFields(t *testing.T) {
	list := []models.Job{{ID: "j-1", Status: models.JobStatusPending, Name: "x"}}

	var err error
	for _, status := range []models.JobStatus{
		models.JobStatusRunning,
		models.JobStatusCompleted,
	} {
		list, err = MergeByID(list, models.Job{ID: "j-1", Status: status}, jobID)
		require.NoError(t, err)
	}

	require.Len(t, list, 1)
	assert.Equal(t, models.JobStatusCompleted, list[0].Status)
	assert.Equal(t, "x", list[0].Name)
}
