package services

import (
	"context"
	"fmt"
	"time"

	"finicky/internal/datastore"
	"finicky/internal/interfaces"
	"finicky/internal/models"
	"finicky/internal/pkg/toui"

	"github.com/oklog/ulid/v2"
	"github.com/samber/do"
	"go.uber.org/zap"
)

type ServiceScorecard struct {
	container *do.Injector
	store     interfaces.KVStore
	locker    Locker
	logger    *zap.Logger
	now       func() time.Time
}

func NewServiceScorecard(container *do.Injector) (*ServiceScorecard, error) {
	store, err := do.Invoke[interfaces.KVStore](container)
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

	return &ServiceScorecard{container, store, locker, logger, time.Now}, nil
}

// GetScorecard never fails: a malformed id, a missing record or a store error
// all come back as an empty scorecard.
func (service *ServiceScorecard) GetScorecard(ctx context.Context, rawULID string) *models.Scorecard {
	id, err := toui.Parse(rawULID)
	if err != nil {
		service.logger.Debug("scorecard requested for malformed ulid", zap.String("ulid", rawULID), zap.Error(err))
		return models.NewScorecard(rawULID)
	}

	return service.loadScorecard(ctx, id.String())
}

func (service *ServiceScorecard) loadScorecard(ctx context.Context, id string) *models.Scorecard {
	scorecard, err := datastore.GetScorecard(ctx, service.store, id)
	if err != nil {
		service.logger.Warn("error fetching scorecard", zap.String("ulid", id), zap.Error(err))
		return models.NewScorecard(id)
	}
	if scorecard == nil {
		return models.NewScorecard(id)
	}

	return scorecard
}

// ValidateSession parses the session id and checks it is still inside the
// game window. The window end itself is accepted.
func (service *ServiceScorecard) ValidateSession(rawULID string) (ulid.ULID, error) {
	id, err := toui.Parse(rawULID)
	if err != nil {
		return id, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	expiry := toui.CreatedAt(id).Add(GAME_DURATION)
	if service.now().After(expiry) {
		return id, ErrSessionExpired
	}

	return id, nil
}
