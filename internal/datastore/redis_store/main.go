package redis_store

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

const scanCount = 100

// Store is the default KVStore: plain GET/SET/DEL on a single node or cluster.
type Store struct {
	client redis.UniversalClient
}

func NewStore(client redis.UniversalClient) *Store {
	return &Store{client}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return b, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	clusterClient, ok := s.client.(*redis.ClusterClient)
	if !ok {
		return scanKeys(ctx, s.client)
	}

	var (
		mu   sync.Mutex
		keys []string
	)
	err := clusterClient.ForEachMaster(ctx, func(ctx context.Context, c *redis.Client) error {
		found, err := scanKeys(ctx, c)
		if err != nil {
			return err
		}
		mu.Lock()
		keys = append(keys, found...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return keys, nil
}

func scanKeys(ctx context.Context, cmd redis.Cmdable) ([]string, error) {
	var keys []string
	iter := cmd.Scan(ctx, 0, "*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}
