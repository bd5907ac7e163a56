package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/deparrow/console/models"
)

func TestMutate_SuccessAppliesDeclaredEffect(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, _ := newTestSession(t, ctrl)

	s.cache.Set("a:1", "stale-me")
	s.cache.Set("b:1", "stale-me-too")
	s.cache.Set("b:2", "stale-me-too")

	result, err := Mutate(context.Background(), s, "test action",
		func(ctx context.Context) (string, error) { return "done", nil },
		Effect{
			Invalidate:         []string{"a:1"},
			InvalidatePrefixes: []string{"b:"},
			MergeKey:           "c:1",
		})
	require.NoError(t, err)
	assert.Equal(t, "done", result)

	v, ok := s.cache.Peek("c:1")
	require.True(t, ok)
	assert.Equal(t, "done", v)
}

func TestMutate_FailureAppliesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, _ := newTestSession(t, ctrl)

	boom := errors.New("boom")
	var calls int
	_, err := Mutate(context.Background(), s, "test action",
		func(ctx context.Context) (string, error) {
			calls++
			return "", boom
		},
		Effect{MergeKey: "c:1"})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "mutations never implicitly retry")

	_, ok := s.cache.Peek("c:1")
	assert.False(t, ok, "no cache effect on failure")
}

func TestSession_CloseReleasesSubscriptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, _ := newTestSession(t, ctrl)

	var fired int
	s.Subscribe("job_update", func(models.Frame) { fired++ })

	require.NoError(t, s.Close())

	push(t, s, "job_update", nil)
	assert.Zero(t, fired, "teardown must release every subscription transitively")
	require.NoError(t, s.Close(), "close is idempotent")
}
