package services

import (
	"context"
	"fmt"

	"finicky/internal/datastore"
	"finicky/internal/models"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Tally records one answer for a live session. Wrong answers are accepted and
// change nothing. A correct answer bumps the food counter (when the food is
// known) and the total.
//
// Without a RedsyncLocker this is a plain read-then-write: concurrent tallies
// on the same session can overwrite each other.
func (service *ServiceScorecard) Tally(ctx context.Context, rawULID string, food string, correct bool) (ulid.ULID, error) {
	id, err := service.ValidateSession(rawULID)
	if err != nil {
		return id, err
	}

	if !correct {
		return id, nil
	}

	unlock, err := service.locker.Lock(ctx, LockKeyScorecard(id.String()))
	if err != nil {
		return id, fmt.Errorf("%w: %w", ErrScorecardLock, err)
	}
	defer unlock()

	scorecard := service.loadScorecard(ctx, id.String())
	scorecard.Count(models.Food(food))

	if err := datastore.SaveScorecard(ctx, service.store, scorecard); err != nil {
		return id, fmt.Errorf("%w: saving scorecard: %w", ErrStoreUnavailable, err)
	}

	service.logger.Debug("tallied score",
		zap.String("ulid", id.String()),
		zap.String("food", food),
		zap.Int("total", scorecard.Total),
	)
	return id, nil
}
