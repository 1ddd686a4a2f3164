package dash

import (
	"time"

	"github.com/askervik/stevedore/internal/snapshot"
)

// runningTTL bounds how long a cached running-set may be reused even
// for the same container slice.
const runningTTL = 3000 * time.Millisecond

// RunningSet caches the set of running container IDs so that repeated
// filtering of the same snapshot does not reclassify every status
// string. The cache key is slice identity, not value equality: a hit
// requires the same backing array (and length) as the last computation,
// within the TTL.
//
// Contract: callers must hand Ensure a fresh slice whenever status data
// may have changed, or call Clear first. Mutating records in place
// behind the same slice will not be noticed until the TTL lapses.
type RunningSet struct {
	now func() time.Time

	src        []snapshot.ContainerRecord
	computedAt time.Time
	ids        map[string]struct{}
}

// NewRunningSet creates a cache using the given clock. A nil clock
// means time.Now; tests inject their own to step through the TTL.
func NewRunningSet(now func() time.Time) *RunningSet {
	if now == nil {
		now = time.Now
	}
	return &RunningSet{now: now}
}

// sameSlice reports whether a and b share identity: same length and
// same backing array start. Empty slices never match, which only costs
// a trivial recompute.
func sameSlice(a, b []snapshot.ContainerRecord) bool {
	return len(a) == len(b) && len(a) > 0 && &a[0] == &b[0]
}

// Ensure returns the set of running container IDs for items, reusing
// the cached set when items is the same slice as last time and the TTL
// has not lapsed. The returned map is shared; callers must not mutate it.
func (r *RunningSet) Ensure(items []snapshot.ContainerRecord) map[string]struct{} {
	now := r.now()
	if r.ids != nil && sameSlice(items, r.src) && now.Sub(r.computedAt) < runningTTL {
		return r.ids
	}

	ids := make(map[string]struct{}, len(items))
	for _, c := range items {
		if IsRunning(c.Status) {
			ids[c.ID] = struct{}{}
		}
	}
	r.src = items
	r.computedAt = now
	r.ids = ids
	return ids
}

// Clear drops the cached set; the next Ensure recomputes regardless of
// TTL or slice identity. This is the escape hatch for callers that
// mutate records in place.
func (r *RunningSet) Clear() {
	r.src = nil
	r.computedAt = time.Time{}
	r.ids = nil
}
