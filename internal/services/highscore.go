package services

import (
	"context"
	"fmt"
	"sort"

	"finicky/internal/datastore"
	"finicky/internal/interfaces"
	"finicky/internal/models"
	"finicky/internal/pkg/caching"
	"finicky/internal/pkg/toui"

	"github.com/samber/do"
	"go.uber.org/zap"
)

type ServiceHighScore struct {
	container *do.Injector
	store     interfaces.KVStore
	cache     caching.Cache
	locker    Locker
	logger    *zap.Logger
}

func NewServiceHighScore(container *do.Injector) (*ServiceHighScore, error) {
	store, err := do.Invoke[interfaces.KVStore](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	locker, err := do.Invoke[Locker](container)
	if err != nil {
		return nil, err
	}

	logger, err := do.Invoke[*zap.Logger](container)
	if err != nil {
		return nil, err
	}

	return &ServiceHighScore{container, store, cache, locker, logger}, nil
}

// GetHighScores returns the visible table, cached for a few seconds.
func (service *ServiceHighScore) GetHighScores(ctx context.Context) ([]*models.HighScore, error) {
	callback := func() ([]*models.HighScore, error) {
		scores, err := datastore.GetHighScores(ctx, service.store)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return TopHighScores(scores), nil
	}

	table, err := caching.UseCache(ctx, service.cache, DBKeyHighScoreTable(), CACHE_TTL_5_SECONDS, callback)
	if err != nil {
		return nil, err
	}
	if table == nil {
		table = []*models.HighScore{}
	}
	return table, nil
}

// SubmitScore upserts entry, ranks it against the stored table and drops it
// again when it misses the top HIGH_SCORE_TABLE_SIZE. Entries that made the
// table once stay stored after being outranked; they only vanish from the
// visible table.
func (service *ServiceHighScore) SubmitScore(ctx context.Context, entry *models.HighScore) (*models.HighScoreResult, error) {
	if entry == nil || entry.ULID == "" {
		return nil, ErrInvalidEntry
	}
	id, err := toui.Parse(entry.ULID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	entry = &models.HighScore{Score: entry.Score, Username: entry.Username, ULID: id.String()}

	unlock, err := service.locker.Lock(ctx, LockKeyHighScore())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHighScoreLock, err)
	}
	defer unlock()

	scores, err := datastore.GetHighScores(ctx, service.store)
	if err != nil {
		return nil, fmt.Errorf("%w: loading high scores: %w", ErrStoreUnavailable, err)
	}

	scores[entry.ULID] = entry
	if err := datastore.SaveHighScores(ctx, service.store, scores); err != nil {
		return nil, fmt.Errorf("%w: saving high scores: %w", ErrStoreUnavailable, err)
	}

	table := TopHighScores(scores)
	rank := 0
	for i, item := range table {
		if item.ULID == entry.ULID {
			rank = i + 1
			break
		}
	}

	if rank == 0 {
		service.logger.Info("not a high score", zap.String("ulid", entry.ULID), zap.Int("score", entry.Score))
		if err := service.deleteHighScore(ctx, entry.ULID); err != nil {
			return nil, err
		}
	} else {
		service.logger.Info("new high score", zap.String("ulid", entry.ULID), zap.Int("score", entry.Score), zap.Int("rank", rank))
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyHighScoreTable())

	return &models.HighScoreResult{
		IsHighScore:    rank > 0,
		Rank:           rank,
		HighScoreTable: table,
	}, nil
}

func (service *ServiceHighScore) deleteHighScore(ctx context.Context, ulid string) error {
	scores, err := datastore.GetHighScores(ctx, service.store)
	if err != nil {
		return fmt.Errorf("%w: loading high scores: %w", ErrStoreUnavailable, err)
	}

	delete(scores, ulid)
	if err := datastore.SaveHighScores(ctx, service.store, scores); err != nil {
		return fmt.Errorf("%w: saving high scores: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// TopHighScores sorts by score, highest first, and keeps HIGH_SCORE_TABLE_SIZE
// entries. Equal scores keep the earlier session (smaller ulid) first.
func TopHighScores(scores map[string]*models.HighScore) []*models.HighScore {
	table := make([]*models.HighScore, 0, len(scores))
	for _, score := range scores {
		table = append(table, score)
	}

	sort.Slice(table, func(i, j int) bool {
		if table[i].Score != table[j].Score {
			return table[i].Score > table[j].Score
		}
		return table[i].ULID < table[j].ULID
	})

	if len(table) > HIGH_SCORE_TABLE_SIZE {
		table = table[:HIGH_SCORE_TABLE_SIZE]
	}
	return table
}
