// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deparrow/console/internal/logger"
	"github.com/deparrow/console/models"
)

func TestRouter_DispatchExactAndWildcard(t *testing.T) {
	r := NewRouter(logger.Nop())

	var got []string
	r.Subscribe("job_update", func(f models.Frame) { got = append(got, "exact") })
	r.Subscribe(models.TopicWildcard, func(f models.Frame) { got = append(got, "wild") })
	r.Subscribe("node_update", func(f models.Frame) { got = append(got, "other") })

	r.Dispatch(models.Frame{Type: "job_update"})

	assert.Equal(t, []string{"exact", "wild"}, got)
}

func TestRouter_RegistrationOrder(t *testing.T) {
	r := NewRouter(logger.Nop())

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		r.Subscribe("topic", func(f models.Frame) { got = append(got, i) })
	}

	r.Dispatch(models.Frame{Type: "topic"})

	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestRouter_UnsubscribeStopsDispatch(t *testing.T) {
	r := NewRouter(logger.Nop())

	calls := 0
	sub := r.Subscribe("topic", func(f models.Frame) { calls++ })

	r.Dispatch(models.Frame{Type: "topic"})
	sub.Unsubscribe()
	r.Dispatch(models.Frame{Type: "topic"})

	assert.Equal(t, 1, calls)
}

func TestRouter_UnsubscribeFromWithinCallback(t *testing.T) {
	r := NewRouter(logger.Nop())

	calls := 0
	var sub *Subscription
	sub = r.Subscribe("topic", func(f models.Frame) {
		calls++
		sub.Unsubscribe()
	})

	r.Dispatch(models.Frame{Type: "topic"})
	r.Dispatch(models.Frame{Type: "topic"})

	assert.Equal(t, 1, calls)
}

func TestRouter_UnsubscribeSiblingDuringDispatch(t *testing.T) {
	r := NewRouter(logger.Nop())

	var secondCalled bool
	var second *Subscription
	r.Subscribe("topic", func(f models.Frame) { second.Unsubscribe() })
	second = r.Subscribe("topic", func(f models.Frame) { secondCalled = true })

	r.Dispatch(models.Frame{Type: "topic"})

	assert.False(t, secondCalled, "a subscription removed mid-dispatch must not fire")
}

func TestRouter_PanicIsolation(t *testing.T) {
	r := NewRouter(logger.Nop())

	var afterCalled bool
	r.Subscribe("topic", func(f models.Frame) { panic("boom") })
	r.Subscribe("topic", func(f models.Frame) { afterCalled = true })

	r.Dispatch(models.Frame{Type: "topic"})

	assert.True(t, afterCalled, "panic in one subscriber must not stop dispatch")

	select {
	case fault := <-r.Faults():
		assert.Equal(t, "topic", fault.Topic)
		assert.ErrorContains(t, fault.Err, "boom")
	default:
		t.Fatal("expected a dispatch fault to be reported")
	}
}

func TestRouter_ReleaseAll(t *testing.T) {
	r := NewRouter(logger.Nop())

	calls := 0
	r.Subscribe("a", func(f models.Frame) { calls++ })
	r.Subscribe("b", func(f models.Frame) { calls++ })

	r.releaseAll()
	r.Dispatch(models.Frame{Type: "a"})
	r.Dispatch(models.Frame{Type: "b"})

	assert.Equal(t, 0, calls)
}

func TestFrameQueue_OverflowDropsOldest(t *testing.T) {
	q := newFrameQueue(2)

	require.False(t, q.push(models.Frame{Type: "a"}))
	require.False(t, q.push(models.Frame{Type: "b"}))
	require.True(t, q.push(models.Frame{Type: "c"}))

	out := q.drain()
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].Type)
	assert.Equal(t, "c", out[1].Type)
	assert.Equal(t, 0, q.len())
}
