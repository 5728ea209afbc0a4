package datastore

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"finicky/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// newPostgres does not dial until a query runs.
func newPostgres(t *testing.T, dsn string) *bun.DB {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() {
		//nolint:errcheck
		db.Close()
	})
	return db
}

func TestKVStoreQueries(t *testing.T) {
	store := NewKVStore(newPostgres(t, "postgres://finicky@localhost:5432/finicky?sslmode=disable"))

	get := store.getQuery(&models.KVEntry{}, "fw-a").String()
	assert.Contains(t, get, `FROM "kv_entry"`)
	assert.Contains(t, get, `"kv_entry"."value"`)
	assert.Contains(t, get, `WHERE (key = 'fw-a')`)

	set := store.setQuery(&models.KVEntry{Key: "highscore", Value: []byte{0x80}}).String()
	assert.Contains(t, set, `INSERT INTO "kv_entry"`)
	assert.Contains(t, set, `'highscore'`)
	assert.Contains(t, set, `ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)

	del := store.deleteQuery("fw-a").String()
	assert.Contains(t, del, `DELETE FROM "kv_entry"`)
	assert.Contains(t, del, `WHERE (key = 'fw-a')`)

	list := store.listKeysQuery().String()
	assert.Contains(t, list, `SELECT "kv_entry"."key" FROM "kv_entry"`)
	assert.NotContains(t, list, "WHERE")
}

func TestKVStoreQueriesQuoteKeys(t *testing.T) {
	store := NewKVStore(newPostgres(t, "postgres://finicky@localhost:5432/finicky?sslmode=disable"))

	assert.Contains(t, store.getQuery(&models.KVEntry{}, "fw-'; DROP TABLE kv_entry; --").String(), `'fw-''; DROP TABLE kv_entry; --'`)
	assert.Contains(t, store.deleteQuery("o'brien").String(), `'o''brien'`)
}

// TestKVStorePostgres needs a reachable database in TEST_DB_DSN.
func TestKVStorePostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	db := newPostgres(t, dsn)
	ctx := context.Background()
	require.NoError(t, CreateTableKVEntry(ctx, db))
	_, err := db.NewTruncateTable().Model((*models.KVEntry)(nil)).Exec(ctx)
	require.NoError(t, err)

	store := NewKVStore(db)

	_, found, err := store.Get(ctx, "fw-a")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "fw-a", []byte{1}))
	require.NoError(t, store.Set(ctx, "fw-a", []byte{2}))
	require.NoError(t, store.Set(ctx, DBKeyHighScore, []byte{3}))

	b, found, err := store.Get(ctx, "fw-a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte{2}, b)

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fw-a", DBKeyHighScore}, keys)

	require.NoError(t, store.Delete(ctx, "fw-a"))
	keys, err = store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{DBKeyHighScore}, keys)
}
