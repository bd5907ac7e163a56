// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deparrow/console/internal/cache"
	"github.com/deparrow/console/internal/logger"
	"github.com/deparrow/console/models"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &DB{DB: conn, logger: logger.Nop()}, mock
}

func TestSnapshotRepository_SaveUpsertsInOneTx(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSnapshotRepository(db)

	records := []Record{
		{Key: "jobs:list", Data: []byte(`[{"job_id":"j-1"}]`), FetchedAt: time.Now()},
		{Key: "wallet", Data: []byte(`{"balance":10}`), FetchedAt: time.Now()},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO snapshots").
		WithArgs(records[0].Key, string(records[0].Data), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO snapshots").
		WithArgs(records[1].Key, string(records[1].Data), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), records))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_SaveRollsBackOnError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSnapshotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO snapshots").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.Save(context.Background(), []Record{
		{Key: "jobs:list", Data: []byte(`[]`), FetchedAt: time.Now()},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_SaveEmptyBatchIsNoOp(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSnapshotRepository(db)

	require.NoError(t, repo.Save(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_Load(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSnapshotRepository(db)

	fetched := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT key, data, fetched_at FROM snapshots").
		WillReturnRows(sqlmock.NewRows([]string{"key", "data", "fetched_at"}).
			AddRow("jobs:list", `[{"job_id":"j-1"}]`, fetched).
			AddRow("wallet", `{"balance":10}`, fetched))

	records, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "jobs:list", records[0].Key)
	assert.JSONEq(t, `[{"job_id":"j-1"}]`, string(records[0].Data))
	assert.Equal(t, fetched, records[1].FetchedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_Delete(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSnapshotRepository(db)

	mock.ExpectExec("DELETE FROM snapshots").
		WithArgs("wallet").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "wallet"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_PruneOlderThan(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSnapshotRepository(db)

	cutoff := time.Now().Add(-24 * time.Hour)
	mock.ExpectExec("DELETE FROM snapshots").
		WithArgs(cutoff.UTC()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.PruneOlderThan(context.Background(), cutoff))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEncodeSnapshots_SkipsUnmarshalable(t *testing.T) {
	snaps := []cache.Snapshot{
		{Key: "jobs:list", Data: []models.Job{{ID: "j-1"}}, FetchedAt: time.Now()},
		{Key: "bad", Data: func() {}, FetchedAt: time.Now()},
	}

	records := EncodeSnapshots(snaps)
	require.Len(t, records, 1)
	assert.Equal(t, "jobs:list", records[0].Key)
	assert.Contains(t, string(records[0].Data), "j-1")
}

func TestFlusher_FlushPersistsCacheEntries(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSnapshotRepository(db)

	c := cache.New(logger.Nop())
	defer c.Close()
	c.Set("wallet", models.Wallet{Balance: 12})

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO snapshots").
		WithArgs("wallet", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	f := NewFlusher(c, repo, time.Hour, logger.Nop())
	f.Flush(context.Background())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlusher_StopWithoutRunReturns(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewSnapshotRepository(db)

	c := cache.New(logger.Nop())
	defer c.Close()

	f := NewFlusher(c, repo, time.Hour, logger.Nop())

	// A teardown path can reach Stop before Run was ever called; it must
	// not block waiting on a loop that never started.
	done := make(chan struct{})
	go func() {
		f.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop must return when the loop never started")
	}
}

func TestFlusher_StopAfterRunEndsLoop(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewSnapshotRepository(db)

	c := cache.New(logger.Nop())
	defer c.Close()

	f := NewFlusher(c, repo, time.Hour, logger.Nop())
	f.Run()

	done := make(chan struct{})
	go func() {
		f.Stop()
		f.Stop() // second Stop is a no-op
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop must end the running loop")
	}
}
