package datastore

import (
	"context"

	"finicky/internal/interfaces"
	"finicky/internal/models"

	"github.com/vmihailenco/msgpack/v5"
)

const DBKeyHighScore = "highscore"

// GetHighScores loads every stored entry keyed by ulid; an absent key is an empty board.
func GetHighScores(ctx context.Context, store interfaces.KVStore) (map[string]*models.HighScore, error) {
	b, found, err := store.Get(ctx, DBKeyHighScore)
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string]*models.HighScore{}, nil
	}

	v := map[string]*models.HighScore{}
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func SaveHighScores(ctx context.Context, store interfaces.KVStore, v map[string]*models.HighScore) error {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}

	return store.Set(ctx, DBKeyHighScore, b)
}

func DeleteHighScores(ctx context.Context, store interfaces.KVStore) error {
	return store.Delete(ctx, DBKeyHighScore)
}
