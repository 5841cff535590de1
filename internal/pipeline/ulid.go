package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Simple ULID generator that doesn't require external dependencies.
// ULIDs are 26-character Crockford Base32 encoded strings with a
// 48-bit millisecond timestamp prefix, so job IDs sort by creation time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func generateULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in first 6 bytes (big-endian 48-bit).
	binary.BigEndian.PutUint64(b[:8], ts<<16)
	// Random in remaining 10 bytes.
	rand.Read(b[6:])
	// Embed sequence in bytes 6-7 to ensure uniqueness within same ms.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeBase32(b)
}

// encodeBase32 encodes 128 bits as 26 Crockford Base32 characters,
// reading 5 bits at a time from the top. 26*5 = 130, so the first
// character carries only 3 data bits (two zero pad bits in front).
func encodeBase32(b [16]byte) string {
	var out [26]byte
	bitPos := -2
	for i := range out {
		var idx int
		for j := 0; j < 5; j++ {
			idx <<= 1
			p := bitPos + j
			if p >= 0 && b[p/8]&(1<<(7-p%8)) != 0 {
				idx |= 1
			}
		}
		out[i] = crockford[idx]
		bitPos += 5
	}
	return string(out[:])
}
