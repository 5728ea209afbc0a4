package pkg

import (
	"math/rand"
	"strings"
)

// RandomIntInclusive returns a number in [min, max].
func RandomIntInclusive(min, max int) int {
	return rand.Intn(max-min+1) + min
}

func IsTruthy(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "t")
}
