package datastore

import (
	"context"
	"database/sql"
	"errors"

	"finicky/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableKVEntry(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.KVEntry)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

// KVStore keeps the game state in a postgres table instead of redis.
type KVStore struct {
	db *bun.DB
}

func NewKVStore(db *bun.DB) *KVStore {
	return &KVStore{db}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry models.KVEntry
	err := s.getQuery(&entry, key).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return entry.Value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.setQuery(&models.KVEntry{Key: key, Value: value}).Exec(ctx)
	return err
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	_, err := s.deleteQuery(key).Exec(ctx)
	return err
}

func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.listKeysQuery().Scan(ctx, &keys)
	if err != nil {
		return nil, err
	}

	return keys, nil
}

func (s *KVStore) getQuery(entry *models.KVEntry, key string) *bun.SelectQuery {
	return s.db.NewSelect().Model(entry).Where("key = ?", key)
}

// setQuery upserts, so a Set on an existing key replaces its value.
func (s *KVStore) setQuery(entry *models.KVEntry) *bun.InsertQuery {
	return s.db.NewInsert().
		Model(entry).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value")
}

func (s *KVStore) deleteQuery(key string) *bun.DeleteQuery {
	return s.db.NewDelete().Model((*models.KVEntry)(nil)).Where("key = ?", key)
}

func (s *KVStore) listKeysQuery() *bun.SelectQuery {
	return s.db.NewSelect().Model((*models.KVEntry)(nil)).Column("key")
}
