package services

import (
	"context"
	"fmt"

	"finicky/internal/datastore"
	"finicky/internal/interfaces"
	"finicky/internal/pkg/caching"

	"github.com/samber/do"
	"go.uber.org/zap"
)

type ServiceReset struct {
	container *do.Injector
	store     interfaces.KVStore
	cache     caching.Cache
	logger    *zap.Logger
}

func NewServiceReset(container *do.Injector) (*ServiceReset, error) {
	store, err := do.Invoke[interfaces.KVStore](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	logger, err := do.Invoke[*zap.Logger](container)
	if err != nil {
		return nil, err
	}

	return &ServiceReset{container, store, cache, logger}, nil
}

// Reset wipes every scorecard and the high score table. It returns how many
// scorecards were deleted.
func (service *ServiceReset) Reset(ctx context.Context) (int, error) {
	keys, err := service.store.ListKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: listing keys: %w", ErrStoreUnavailable, err)
	}

	deleted := 0
	for _, key := range keys {
		if !datastore.IsScorecardKey(key) {
			continue
		}
		if err := service.store.Delete(ctx, key); err != nil {
			return deleted, fmt.Errorf("%w: deleting %s: %w", ErrStoreUnavailable, key, err)
		}
		deleted++
	}

	if err := datastore.DeleteHighScores(ctx, service.store); err != nil {
		return deleted, fmt.Errorf("%w: resetting high score: %w", ErrStoreUnavailable, err)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyHighScoreTable())

	service.logger.Info("game state reset", zap.Int("scorecards", deleted))
	return deleted, nil
}
