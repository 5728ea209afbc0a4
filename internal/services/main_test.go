package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"finicky/internal/datastore/redis_store"
	"finicky/internal/interfaces"
	"finicky/internal/pkg/caching"
	"finicky/internal/pkg/toui"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errStoreDown = errors.New("store down")

type testEnv struct {
	injector *do.Injector
	redis    *miniredis.Miniredis
	client   redis.UniversalClient
	store    interfaces.KVStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		//nolint:errcheck
		client.Close()
	})

	cache, err := caching.NewCacheRedis(client, false)
	require.NoError(t, err)

	env := &testEnv{
		injector: do.New(),
		redis:    mr,
		client:   client,
		store:    redis_store.NewStore(client),
	}
	do.ProvideValue[caching.Cache](env.injector, cache)
	do.ProvideValue[Locker](env.injector, NoopLocker{})
	do.ProvideValue(env.injector, zap.NewNop())
	return env
}

// withStore registers store as the KVStore; it must be called before any service is invoked.
func (env *testEnv) withStore(store interfaces.KVStore) *testEnv {
	do.ProvideValue[interfaces.KVStore](env.injector, store)
	return env
}

func (env *testEnv) scorecards(t *testing.T, now time.Time) *ServiceScorecard {
	t.Helper()
	service, err := NewServiceScorecard(env.injector)
	require.NoError(t, err)
	service.now = func() time.Time { return now }
	return service
}

func (env *testEnv) highScores(t *testing.T) *ServiceHighScore {
	t.Helper()
	service, err := NewServiceHighScore(env.injector)
	require.NoError(t, err)
	return service
}

func newULID(t *testing.T, at time.Time) string {
	t.Helper()
	return toui.New(at).String()
}

// failingStore wraps a store and fails the operations that are switched on.
type failingStore struct {
	interfaces.KVStore
	failGet    bool
	failSet    bool
	failDelete bool
	failList   bool
}

func (s *failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.failGet {
		return nil, false, errStoreDown
	}
	return s.KVStore.Get(ctx, key)
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet {
		return errStoreDown
	}
	return s.KVStore.Set(ctx, key, value)
}

func (s *failingStore) Delete(ctx context.Context, key string) error {
	if s.failDelete {
		return errStoreDown
	}
	return s.KVStore.Delete(ctx, key)
}

func (s *failingStore) ListKeys(ctx context.Context) ([]string, error) {
	if s.failList {
		return nil, errStoreDown
	}
	return s.KVStore.ListKeys(ctx)
}
