package datastore

import (
	"context"
	"strings"

	"finicky/internal/interfaces"
	"finicky/internal/models"

	"github.com/vmihailenco/msgpack/v5"
)

const scorecardKeyPrefix = "fw-"

func DBKeyScorecard(ulid string) string {
	return scorecardKeyPrefix + ulid
}

func IsScorecardKey(key string) bool {
	return strings.HasPrefix(key, scorecardKeyPrefix)
}

// GetScorecard returns nil, nil when no scorecard was stored yet.
func GetScorecard(ctx context.Context, store interfaces.KVStore, ulid string) (*models.Scorecard, error) {
	b, found, err := store.Get(ctx, DBKeyScorecard(ulid))
	if err != nil || !found {
		return nil, err
	}

	var v *models.Scorecard
	err = msgpack.Unmarshal(b, &v)
	return v, err
}

func SaveScorecard(ctx context.Context, store interfaces.KVStore, v *models.Scorecard) error {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}

	return store.Set(ctx, DBKeyScorecard(v.ULID), b)
}
