package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"finicky/internal/datastore"
	"finicky/internal/interfaces"
	"finicky/internal/models"
	"finicky/internal/pkg/toui"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyScenario(t *testing.T) {
	env := newTestEnv(t)
	env.withStore(env.store)

	startedAt := time.Now()
	id := newULID(t, startedAt)
	service := env.scorecards(t, startedAt.Add(5*time.Second))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := service.Tally(ctx, id, "chicken", true)
		require.NoError(t, err)
	}
	_, err := service.Tally(ctx, id, "fish", false)
	require.NoError(t, err)

	scorecard := service.GetScorecard(ctx, id)
	assert.Equal(t, &models.Scorecard{ULID: id, Chicken: 3, Total: 3}, scorecard)
}

func TestTallyUnknownFoodOnlyCountsTotal(t *testing.T) {
	env := newTestEnv(t)
	env.withStore(env.store)

	startedAt := time.Now()
	id := newULID(t, startedAt)
	service := env.scorecards(t, startedAt)
	ctx := context.Background()

	_, err := service.Tally(ctx, id, "beef", true)
	require.NoError(t, err)
	_, err = service.Tally(ctx, id, "tofu", true)
	require.NoError(t, err)

	scorecard := service.GetScorecard(ctx, id)
	assert.Equal(t, 1, scorecard.Beef)
	assert.Equal(t, 0, scorecard.Chicken)
	assert.Equal(t, 0, scorecard.Fish)
	assert.Equal(t, 0, scorecard.Veg)
	assert.Equal(t, 2, scorecard.Total)
}

func TestTallyWrongAnswerDoesNotWrite(t *testing.T) {
	env := newTestEnv(t)
	env.withStore(env.store)

	startedAt := time.Now()
	id := newULID(t, startedAt)
	service := env.scorecards(t, startedAt)

	parsed, err := service.Tally(context.Background(), id, "veg", false)
	require.NoError(t, err)
	assert.Equal(t, id, parsed.String())

	stored, err := datastore.GetScorecard(context.Background(), env.store, id)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestTallySessionWindow(t *testing.T) {
	env := newTestEnv(t)
	env.withStore(env.store)

	startedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	id := newULID(t, startedAt)
	parsed, err := toui.Parse(id)
	require.NoError(t, err)
	createdAt := toui.CreatedAt(parsed)

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"fresh", createdAt.Add(time.Second), nil},
		{"last millisecond", createdAt.Add(GAME_DURATION - time.Millisecond), nil},
		{"window end is inclusive", createdAt.Add(GAME_DURATION), nil},
		{"just after window", createdAt.Add(GAME_DURATION + time.Millisecond), ErrSessionExpired},
		{"long expired", createdAt.Add(time.Hour), ErrSessionExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := env.scorecards(t, tt.now)
			_, err := service.Tally(context.Background(), id, "fish", true)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestTallyInvalidSession(t *testing.T) {
	env := newTestEnv(t)
	env.withStore(env.store)
	service := env.scorecards(t, time.Now())

	for _, raw := range []string{"", "not-a-ulid", "01ARZ3NDEKTSV4RRFFQ69G5FA", "01ARZ3NDEKTSV4RRFFQ69G5FAVX"} {
		_, err := service.Tally(context.Background(), raw, "fish", true)
		assert.ErrorIs(t, err, ErrInvalidSession, raw)
		assert.NotErrorIs(t, err, ErrSessionExpired, raw)
	}
}

func TestTallyWriteFailurePropagates(t *testing.T) {
	env := newTestEnv(t)
	env.withStore(&failingStore{KVStore: env.store, failSet: true})

	startedAt := time.Now()
	service := env.scorecards(t, startedAt)

	_, err := service.Tally(context.Background(), newULID(t, startedAt), "fish", true)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestTallyReadFailureStartsFromZero(t *testing.T) {
	env := newTestEnv(t)
	store := &failingStore{KVStore: env.store}
	env.withStore(store)

	startedAt := time.Now()
	id := newULID(t, startedAt)
	service := env.scorecards(t, startedAt)
	ctx := context.Background()

	_, err := service.Tally(ctx, id, "fish", true)
	require.NoError(t, err)
	_, err = service.Tally(ctx, id, "fish", true)
	require.NoError(t, err)

	store.failGet = true
	_, err = service.Tally(ctx, id, "veg", true)
	require.NoError(t, err)

	stored, err := datastore.GetScorecard(ctx, env.store, id)
	require.NoError(t, err)
	assert.Equal(t, &models.Scorecard{ULID: id, Veg: 1, Total: 1}, stored)
}

// barrierStore holds every scorecard read until `readers` reads are in flight.
type barrierStore struct {
	interfaces.KVStore
	readers sync.WaitGroup
}

func (s *barrierStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, found, err := s.KVStore.Get(ctx, key)
	s.readers.Done()
	s.readers.Wait()
	return value, found, err
}

func TestTallyConcurrentLostUpdate(t *testing.T) {
	env := newTestEnv(t)
	store := &barrierStore{KVStore: env.store}
	store.readers.Add(2)
	env.withStore(store)

	startedAt := time.Now()
	id := newULID(t, startedAt)
	service := env.scorecards(t, startedAt)

	var wg sync.WaitGroup
	for _, food := range []string{"fish", "beef"} {
		wg.Add(1)
		go func(food string) {
			defer wg.Done()
			_, err := service.Tally(context.Background(), id, food, true)
			assert.NoError(t, err)
		}(food)
	}
	wg.Wait()

	stored, err := datastore.GetScorecard(context.Background(), env.store, id)
	require.NoError(t, err)
	// both tallies read the empty scorecard, the last write wins
	assert.Equal(t, 1, stored.Total)
	assert.Equal(t, 1, stored.Fish+stored.Beef)
}

// slowStore widens the window between read and write.
type slowStore struct {
	interfaces.KVStore
}

func (s *slowStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	time.Sleep(10 * time.Millisecond)
	return s.KVStore.Get(ctx, key)
}

func TestTallyStrictWritesKeepsEveryUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.withStore(&slowStore{env.store})
	do.OverrideValue[Locker](env.injector, NewRedsyncLocker(redsync.New(goredis.NewPool(env.client))))

	startedAt := time.Now()
	id := newULID(t, startedAt)
	service := env.scorecards(t, startedAt)

	const tallies = 5
	var wg sync.WaitGroup
	for i := 0; i < tallies; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Tally(context.Background(), id, "chicken", true)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	scorecard := service.GetScorecard(context.Background(), id)
	assert.Equal(t, tallies, scorecard.Chicken)
	assert.Equal(t, tallies, scorecard.Total)
}
