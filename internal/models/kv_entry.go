package models

import (
	"github.com/uptrace/bun"
)

type KVEntry struct {
	bun.BaseModel `bun:"table:kv_entry"`
	Key           string `bun:"key,pk"`
	Value         []byte `bun:"value,type:bytea"`
}
