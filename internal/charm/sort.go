// ABOUTME: Shared ordering helper for KV-backed record lists.
package charm

import (
	"sort"
	"time"
)

// sortByDate orders records most recent first, same-day oldest-created
// first, matching the other backends' list order.
func sortByDate[T any](records []*T, key func(*T) (time.Time, time.Time)) {
	sort.SliceStable(records, func(i, j int) bool {
		di, ci := key(records[i])
		dj, cj := key(records[j])
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return ci.Before(cj)
	})
}
