package selector

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// RandSource is the randomness the selector draws from. *rand.Rand satisfies it.
type RandSource interface {
	// Intn returns a uniform int in [0, n). n > 0.
	Intn(n int) int
}

// NewSeededSource returns a deterministic source for seed. Use one per call.
func NewSeededSource(seed int64) RandSource {
	return rand.New(rand.NewSource(seed))
}

// NewSeed returns a fresh seed for production calls
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]) &^ (1 << 63))
}
