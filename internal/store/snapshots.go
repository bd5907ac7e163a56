package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/deparrow/console/internal/cache"
)

// Record is one persisted cache entry: the key, its JSON-encoded data, and
// the timestamp of the load that produced it.
type Record struct {
	Key       string
	Data      []byte
	FetchedAt time.Time
}

// SnapshotRepository reads and writes the snapshots table.
type SnapshotRepository struct {
	db      *DB
	builder sq.StatementBuilderType
}

func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// Save upserts records in one transaction; the whole batch lands or none of
// it does.
func (r *SnapshotRepository) Save(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, rec := range records {
		query, args, err := r.builder.
			Insert("snapshots").
			Columns("key", "data", "fetched_at", "updated_at").
			Values(rec.Key, string(rec.Data), rec.FetchedAt.UTC(), now).
			Suffix("ON CONFLICT(key) DO UPDATE SET data = excluded.data, fetched_at = excluded.fetched_at, updated_at = excluded.updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build snapshot upsert: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save snapshot %s: %w", rec.Key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}
	return nil
}

// Load returns every persisted record.
func (r *SnapshotRepository) Load(ctx context.Context) ([]Record, error) {
	query, args, err := r.builder.
		Select("key", "data", "fetched_at").
		From("snapshots").
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build snapshot select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var data string
		if err = rows.Scan(&rec.Key, &data, &rec.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		rec.Data = []byte(data)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes one key's snapshot.
func (r *SnapshotRepository) Delete(ctx context.Context, key string) error {
	query, args, err := r.builder.Delete("snapshots").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build snapshot delete: %w", err)
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

// PruneOlderThan drops snapshots whose last update is older than the cutoff,
// so a long-unused filter view does not live in the file forever.
func (r *SnapshotRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) error {
	query, args, err := r.builder.
		Delete("snapshots").
		Where(sq.Lt{"updated_at": cutoff.UTC()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build snapshot prune: %w", err)
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// EncodeSnapshots converts live cache entries to persistable records.
// Entries whose data does not marshal are skipped rather than failing the
// batch.
func EncodeSnapshots(snaps []cache.Snapshot) []Record {
	records := make([]Record, 0, len(snaps))
	for _, s := range snaps {
		data, err := json.Marshal(s.Data)
		if err != nil {
			continue
		}
		records = append(records, Record{Key: s.Key, Data: data, FetchedAt: s.FetchedAt})
	}
	return records
}
