package grocery

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for newly created items.
type IDGenerator func() ID

// Supported id strategies.
const (
	IDStrategyUUID      = "uuid"
	IDStrategyTimestamp = "timestamp"
)

// NewUUID returns a random (version 4) UUID.
func NewUUID() ID {
	return ID(uuid.NewString())
}

var lastTimestampID atomic.Int64

// NewTimestampID returns the current Unix time in milliseconds, bumped so that
// every id handed out by this process is strictly greater than the previous one.
func NewTimestampID() ID {
	for {
		now := time.Now().UnixMilli()
		last := lastTimestampID.Load()
		if now <= last {
			now = last + 1
		}
		if lastTimestampID.CompareAndSwap(last, now) {
			return ID(strconv.FormatInt(now, 10))
		}
	}
}

// ParseIDStrategy maps a strategy name to its generator. An empty name selects UUIDs.
func ParseIDStrategy(name string) (IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", IDStrategyUUID:
		return NewUUID, nil
	case IDStrategyTimestamp:
		return NewTimestampID, nil
	default:
		return nil, fmt.Errorf("grocery: unknown id strategy %q", name)
	}
}
