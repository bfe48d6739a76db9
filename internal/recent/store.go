// Package recent remembers which self-care suggestions each user has seen
// lately, so the generator can rotate variants instead of repeating one.
// Entries live for a fixed window (48 hours by default).
package recent

import (
	"context"
	"time"
)

// DefaultWindow is how long a recorded suggestion counts as recent
const DefaultWindow = 48 * time.Hour

// Store is a per-user, time-windowed set of suggestion keys
type Store interface {
	// Since returns the keys recorded for userID at or after since, each
	// with the last time it was recorded
	Since(ctx context.Context, userID string, since time.Time) (map[string]time.Time, error)
	// Record marks keys as suggested to userID at the given time
	Record(ctx context.Context, userID string, at time.Time, keys ...string) error
}
