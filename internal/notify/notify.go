// SPDX-License-Identifier: Apache-2.0

// Package notify delivers one-shot user-visible notifications: credit
// earnings, mutation failures, auth expiry. Notifications are fire-and-
// forget; the UI drains the channel, and anything undrained is dropped
// oldest-first rather than blocking the sync layer.
package notify

import (
	"time"

	"github.com/deparrow/console/internal/logger"
)

type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

type Notification struct {
	Level   Level
	Title   string
	Message string
	Time    time.Time
}

type Notifier struct {
	ch     chan Notification
	logger *logger.Logger
}

func New(log *logger.Logger) *Notifier {
	return &Notifier{
		ch:     make(chan Notification, 16),
		logger: log.GetChildLogger("notify"),
	}
}

// Notify enqueues a notification, evicting the oldest undrained one when the
// buffer is full.
func (n *Notifier) Notify(level Level, title, message string) {
	note := Notification{Level: level, Title: title, Message: message, Time: time.Now()}
	for {
		select {
		case n.ch <- note:
			n.logger.Debug().
				Str("level", level.String()).
				Str("title", title).
				Msg("notification queued")
			return
		default:
			select {
			case <-n.ch:
			default:
			}
		}
	}
}

// C is the stream the UI drains.
func (n *Notifier) C() <-chan Notification {
	return n.ch
}
