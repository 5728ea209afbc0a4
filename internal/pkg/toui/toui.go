// Package toui issues and inspects the time-ordered session identifiers (ULIDs).
package toui

import (
	"time"

	"github.com/oklog/ulid/v2"
)

func New(now time.Time) ulid.ULID {
	return ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy())
}

func Parse(s string) (ulid.ULID, error) {
	return ulid.Parse(s)
}

// CreatedAt recovers the creation instant, millisecond precision.
func CreatedAt(id ulid.ULID) time.Time {
	return ulid.Time(id.Time())
}
