package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deparrow/console/internal/logger"
)

func TestNotify_DeliversInOrder(t *testing.T) {
	n := New(logger.Nop())
	n.Notify(Success, "credits earned", "+5.0 credits")
	n.Notify(Error, "cancel failed", "job not found")

	first := <-n.C()
	assert.Equal(t, Success, first.Level)
	assert.Equal(t, "credits earned", first.Title)
	assert.False(t, first.Time.IsZero())

	second := <-n.C()
	assert.Equal(t, Error, second.Level)
	assert.Equal(t, "job not found", second.Message)
}

func TestNotify_OverflowDropsOldest(t *testing.T) {
	n := New(logger.Nop())
	for i := 0; i < 20; i++ {
		n.Notify(Info, "n", string(rune('a'+i)))
	}

	// 16-slot buffer: the four oldest are gone, delivery never blocked.
	first := <-n.C()
	require.Equal(t, string(rune('a'+4)), first.Message)
}
