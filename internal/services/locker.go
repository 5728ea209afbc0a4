package services

import (
	"context"

	"github.com/go-redsync/redsync/v4"
)

// Locker guards a read-modify-write on one store key.
//
// The default NoopLocker keeps the store single-writer-per-key: two concurrent
// tallies for one session may both read the same scorecard and the last write
// wins. RedsyncLocker serializes them across processes instead.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}

type RedsyncLocker struct {
	rs *redsync.Redsync
}

func NewRedsyncLocker(rs *redsync.Redsync) *RedsyncLocker {
	return &RedsyncLocker{rs}
}

func (l *RedsyncLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.rs.NewMutex(key)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		// nolint:errcheck
		mutex.Unlock()
	}, nil
}
