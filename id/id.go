package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// Seed a PRNG from crypto/rand so ULID entropy is unpredictable.
	// ulid.Monotonic keeps IDs minted within the same millisecond
	// lexicographically increasing, which is what the ledger relies on to
	// break same-date ties by append order.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string (time-sortable identifier).
//
// Ledger records are identified by ULIDs: sorting two IDs lexicographically
// sorts them by append time, so "the later-appended record wins" reduces to
// a plain string comparison.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), mono)
	if err != nil {
		// Errors are extremely unlikely unless time goes backwards or entropy fails.
		panic(err)
	}
	return id.String()
}

// Less reports whether a was minted before b. ULID strings are fixed-width
// and base32-encoded, so mint order is plain lexicographic order.
func Less(a, b string) bool { return a < b }

// Compare orders two IDs by mint time: negative when a was minted before b,
// zero when equal, positive otherwise.
func Compare(a, b string) int { return strings.Compare(a, b) }
