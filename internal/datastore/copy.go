package datastore

import (
	"context"
	"fmt"

	"finicky/internal/interfaces"
)

func IsGameKey(key string) bool {
	return IsScorecardKey(key) || key == DBKeyHighScore
}

// CopyGameKeys copies every scorecard and the high score table from one store
// to another, overwriting what the target holds under the same keys.
func CopyGameKeys(ctx context.Context, from interfaces.KVStore, to interfaces.KVStore) (int, error) {
	keys, err := from.ListKeys(ctx)
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, key := range keys {
		if !IsGameKey(key) {
			continue
		}

		value, found, err := from.Get(ctx, key)
		if err != nil {
			return copied, fmt.Errorf("reading %s: %w", key, err)
		}
		if !found {
			continue
		}

		if err := to.Set(ctx, key, value); err != nil {
			return copied, fmt.Errorf("writing %s: %w", key, err)
		}
		copied++
	}

	return copied, nil
}
