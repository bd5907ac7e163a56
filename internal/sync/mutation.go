package sync

import (
	"context"
	"errors"

	"github.com/deparrow/console/internal/adapter"
	"github.com/deparrow/console/internal/notify"
)

// Effect is the cache effect a mutation declares up front. It is applied in
// full on success and not at all on failure.
type Effect struct {
	// Invalidate marks these exact keys stale.
	Invalidate []string

	// InvalidatePrefixes marks every key under these prefixes stale,
	// covering list keys regardless of their filter parameters.
	InvalidatePrefixes []string

	// MergeKey, when non-empty, stores the mutation result under this key.
	MergeKey string
}

// Mutate runs one write against the marketplace and applies the declared
// cache effect on success. It never retries: duplicating a side effect like
// job submission is worse than asking the user to press the button again.
// On failure the error is surfaced to the caller and, with the server's own
// message, as a one-shot notification.
func Mutate[T any](ctx context.Context, s *Session, action string, run func(context.Context) (T, error), effect Effect) (T, error) {
	result, err := run(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("mutation failed")
		s.notifier.Notify(notify.Error, action+" failed", mutationMessage(err))
		return result, err
	}

	for _, key := range effect.Invalidate {
		s.cache.Invalidate(key)
	}
	for _, prefix := range effect.InvalidatePrefixes {
		s.cache.InvalidatePrefix(prefix)
	}
	if effect.MergeKey != "" {
		s.cache.Set(effect.MergeKey, result)
	}

	s.logger.Debug().Str("action", action).Msg("mutation applied")
	return result, nil
}

// mutationMessage prefers the server-provided message over Go error prose.
func mutationMessage(err error) string {
	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
