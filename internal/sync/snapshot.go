package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deparrow/console/internal/store"
	"github.com/deparrow/console/models"
)

// decodeSnapshot maps a persisted cache key back to its typed value. Keys
// nobody recognises any more (renamed views, removed domains) are skipped by
// the caller.
func decodeSnapshot(key string, data []byte) (any, error) {
	unmarshal := func(dst any) (any, error) {
		if err := json.Unmarshal(data, dst); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", key, err)
		}
		return deref(dst), nil
	}

	switch {
	case strings.HasPrefix(key, prefixJobsList):
		return unmarshal(&[]models.Job{})
	case strings.HasPrefix(key, prefixJobs+"detail:"):
		return unmarshal(&models.Job{})
	case strings.HasPrefix(key, prefixJobs+"logs:"):
		return unmarshal(&models.JobLogsResponse{})
	case strings.HasPrefix(key, prefixJobs+"results:"):
		return unmarshal(&models.JobResults{})
	case strings.HasPrefix(key, prefixNodesList):
		return unmarshal(&[]models.Node{})
	case strings.HasPrefix(key, prefixNodes+"detail:"):
		return unmarshal(&models.Node{})
	case strings.HasPrefix(key, prefixNodes+"contribution:"):
		return unmarshal(&models.NodeContribution{})
	case strings.HasPrefix(key, prefixProvidersLst):
		return unmarshal(&[]models.Provider{})
	case key == keyWallet:
		return unmarshal(&models.Wallet{})
	case key == keyTransactions:
		return unmarshal(&[]models.Transaction{})
	case key == keyAgentStatus:
		return unmarshal(&models.AgentStatus{})
	case key == keyAgentChat:
		return unmarshal(&[]models.AgentMessage{})
	case key == keyNetworkStats:
		return unmarshal(&models.NetworkStats{})
	case key == keyLeaderboard:
		return unmarshal(&[]models.LeaderboardEntry{})
	default:
		return nil, fmt.Errorf("unknown snapshot key %q", key)
	}
}

func deref(v any) any {
	switch t := v.(type) {
	case *[]models.Job:
		return *t
	case *models.Job:
		return *t
	case *models.JobLogsResponse:
		return *t
	case *models.JobResults:
		return *t
	case *[]models.Node:
		return *t
	case *models.Node:
		return *t
	case *models.NodeContribution:
		return *t
	case *[]models.Provider:
		return *t
	case *models.Wallet:
		return *t
	case *[]models.Transaction:
		return *t
	case *models.AgentStatus:
		return *t
	case *[]models.AgentMessage:
		return *t
	case *models.NetworkStats:
		return *t
	case *[]models.LeaderboardEntry:
		return *t
	default:
		return v
	}
}

// RestoreSnapshots primes the cache from persisted records. Every restored
// entry is marked stale, so views render it immediately and revalidate on
// first fetch. Undecodable or unknown keys are logged and skipped.
func (s *Session) RestoreSnapshots(ctx context.Context, repo *store.SnapshotRepository) error {
	records, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshots: %w", err)
	}

	restored := 0
	for _, rec := range records {
		value, err := decodeSnapshot(rec.Key, rec.Data)
		if err != nil {
			s.logger.Debug().Err(err).Str("key", rec.Key).Msg("skipping snapshot")
			continue
		}
		s.cache.Prime(rec.Key, value, rec.FetchedAt)
		restored++
	}

	s.logger.Info().Int("restored", restored).Int("total", len(records)).Msg("snapshots restored")
	return nil
}

// PersistSnapshots writes the cache's current entries through the
// repository once, typically at shutdown.
func (s *Session) PersistSnapshots(ctx context.Context, repo *store.SnapshotRepository) error {
	return repo.Save(ctx, store.EncodeSnapshots(s.cache.Snapshots()))
}
