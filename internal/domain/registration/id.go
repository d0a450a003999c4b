package registration

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID returns a human-readable registration id:
// "EVT-" + base36 millisecond timestamp + "-" + 5 random base36 chars,
// uppercased.
//
// Uniqueness is probabilistic only (timestamp + randomness). There is no
// check-and-retry against the store; a collision falls back to
// last-write-wins. Accepted limitation.
func NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}

	return strings.ToUpper("EVT-" + ts + "-" + string(suffix))
}
