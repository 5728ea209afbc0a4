package container

import (
	"database/sql"
	"errors"
	"os"
	"strconv"

	"finicky/internal/datastore"
	"finicky/internal/datastore/redis_store"
	"finicky/internal/interfaces"
	"finicky/internal/pkg/caching"
	"finicky/internal/pkg/limiter"
	"finicky/internal/pkg/logger"
	"finicky/internal/services"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
)

const (
	STORE_DRIVER_REDIS    = "redis"
	STORE_DRIVER_POSTGRES = "postgres"

	DEFAULT_TALLY_RATE_LIMIT_PER_SECOND = 50
)

// NewContainer wires every service from the environment. vs must hold the
// required envs; optional ones are read and defaulted here.
func NewContainer(vs map[string]string) *do.Injector {
	injector := do.New()
	for _, key := range []string{
		"API_MODE", "API_ORIGINS", "STORE_DRIVER", "STRICT_WRITES", "REDIS_LOCAL_CACHE",
		"TALLY_RATE_LIMIT_PER_SECOND", "RESET_SCHEDULE", "LOG_LEVEL",
	} {
		vs[key] = os.Getenv(key)
	}

	if vs["API_MODE"] == "" {
		vs["API_MODE"] = "production"
	}
	if vs["API_ORIGINS"] == "" {
		vs["API_ORIGINS"] = "*"
	}
	if vs["STORE_DRIVER"] == "" {
		vs["STORE_DRIVER"] = STORE_DRIVER_REDIS
	}
	if vs["TALLY_RATE_LIMIT_PER_SECOND"] == "" {
		vs["TALLY_RATE_LIMIT_PER_SECOND"] = strconv.Itoa(DEFAULT_TALLY_RATE_LIMIT_PER_SECOND)
	}

	do.ProvideNamedValue(injector, "envs", vs)

	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		return logger.New(vs["LOG_LEVEL"])
	})

	do.ProvideNamed(injector, "redis-db", func(i *do.Injector) (redis.UniversalClient, error) {
		return initRedis("CLUSTER_REDIS_URL", "REDIS_URL")
	})

	do.ProvideNamed(injector, "redis-cache", func(i *do.Injector) (redis.UniversalClient, error) {
		return initRedis("CLUSTER_REDIS_CACHE", "REDIS_CACHE")
	})

	do.ProvideNamed(injector, "redis-limiter", func(i *do.Injector) (redis.UniversalClient, error) {
		return initRedis("CLUSTER_REDIS_LIMITER", "REDIS_LIMITER")
	})

	do.ProvideNamed(injector, "redis-mutex", func(i *do.Injector) (redis.UniversalClient, error) {
		return initRedis("CLUSTER_REDIS_MUTEX", "REDIS_MUTEX")
	})

	do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(os.Getenv("DB_DSN")),
			pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
		))

		return bun.NewDB(sqldb, pgdialect.New()), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.KVStore, error) {
		if vs["STORE_DRIVER"] == STORE_DRIVER_POSTGRES {
			postgresDB, err := do.Invoke[*bun.DB](i)
			if err != nil {
				return nil, err
			}
			return datastore.NewKVStore(postgresDB), nil
		}

		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-db")
		if err != nil {
			return nil, err
		}
		return redis_store.NewStore(dbRedis), nil
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache")
		if err != nil {
			return nil, err
		}

		withLocalCache, _ := strconv.ParseBool(vs["REDIS_LOCAL_CACHE"])
		return caching.NewCacheRedis(dbRedis, withLocalCache)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Limiter, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-limiter")
		if err != nil {
			return nil, err
		}

		return limiter.NewLimiter(dbRedis)
	})

	do.Provide(injector, func(i *do.Injector) (*redsync.Redsync, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-mutex")
		if err != nil {
			return nil, err
		}

		pool := goredis.NewPool(dbRedis)
		return redsync.New(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (services.Locker, error) {
		strict, _ := strconv.ParseBool(vs["STRICT_WRITES"])
		if !strict {
			return services.NoopLocker{}, nil
		}

		rs, err := do.Invoke[*redsync.Redsync](i)
		if err != nil {
			return nil, err
		}
		return services.NewRedsyncLocker(rs), nil
	})

	do.Provide(injector, services.NewServiceSession)
	do.Provide(injector, services.NewServiceScorecard)
	do.Provide(injector, services.NewServiceHighScore)
	do.Provide(injector, services.NewServiceReset)

	return injector
}

// initRedis resolves a role specific redis first (cluster, then single node)
// and falls back to the game store's redis so one instance can serve every role.
func initRedis(clusterEnv string, urlEnv string) (redis.UniversalClient, error) {
	for _, candidate := range [][2]string{
		{clusterEnv, urlEnv},
		{"CLUSTER_REDIS_URL", "REDIS_URL"},
	} {
		if clusterURL := os.Getenv(candidate[0]); clusterURL != "" {
			clusterOpts, err := redis.ParseClusterURL(clusterURL)
			if err != nil {
				return nil, err
			}
			return redis.NewClusterClient(clusterOpts), nil
		}
		if url := os.Getenv(candidate[1]); url != "" {
			return db.InitRedis(&db.RedisConfig{
				URL: url,
			})
		}
	}

	return nil, errors.New("no redis configured, set REDIS_URL")
}
