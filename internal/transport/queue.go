package transport

import "github.com/deparrow/console/models"

// frameQueue is a bounded FIFO buffer for frames composed while the
// connection is not ready. Overflow drops the oldest frame so that the most
// recent intent survives; the caller is warned, never blocked.
type frameQueue struct {
	frames []models.Frame
	cap    int
}

func newFrameQueue(capacity int) *frameQueue {
	return &frameQueue{cap: capacity}
}

// push appends f, evicting the oldest frame when full. Reports whether an
// eviction happened.
func (q *frameQueue) push(f models.Frame) (dropped bool) {
	if len(q.frames) >= q.cap {
		copy(q.frames, q.frames[1:])
		q.frames = q.frames[:len(q.frames)-1]
		dropped = true
	}
	q.frames = append(q.frames, f)
	return dropped
}

// drain returns all buffered frames in FIFO order and empties the queue.
func (q *frameQueue) drain() []models.Frame {
	out := q.frames
	q.frames = nil
	return out
}

func (q *frameQueue) len() int {
	return len(q.frames)
}
