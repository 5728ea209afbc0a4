package services

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSession   = errors.New("invalid session")
	ErrSessionExpired   = errors.New("session is expired")
	ErrInvalidEntry     = errors.New("invalid high score entry")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrScorecardLock    = errors.New("scorecard locked")
	ErrHighScoreLock    = errors.New("high score table locked")
)

const (
	GAME_DURATION = 30 * time.Second

	MENU_MAX_OFFSET = 30_000
	MENU_MIN_STEP   = 1000
	MENU_MAX_STEP   = 3000

	HIGH_SCORE_TABLE_SIZE = 10

	CACHE_TTL_5_SECONDS = 5 * time.Second
)

func LockKeyScorecard(ulid string) string {
	return fmt.Sprintf("lock:scorecard:%s", ulid)
}

func LockKeyHighScore() string {
	return "lock:highscore"
}

func DBKeyHighScoreTable() string {
	return "cache:highscore:table"
}

func LimitKeyClient(route string, ip string) string {
	return fmt.Sprintf("limit:%s:%s", route, ip)
}
