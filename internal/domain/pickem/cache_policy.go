package pickem

import "time"

// DefaultCacheBuffer is how long after kickoff a match is assumed final.
const DefaultCacheBuffer = 8 * time.Hour

// WeekComplete reports whether every match kicked off strictly before
// now minus buffer. A week with no matches is never complete.
func WeekComplete(matches []Match, now time.Time, buffer time.Duration) bool {
	if len(matches) == 0 {
		return false
	}
	cutoff := now.Add(-buffer)
	for _, m := range matches {
		if !m.Kickoff.Before(cutoff) {
			return false
		}
	}
	return true
}

// ShouldCache decides whether a freshly computed score may be persisted.
// Cached records never transition back, so a record with unreadable stored
// picks stays live until it is repaired.
func ShouldCache(record WeekPicks, matches []Match, now time.Time, buffer time.Duration) bool {
	if record.PickRecordID == nil || record.IsCached() || record.Unreadable || record.FeatureUnreadable {
		return false
	}
	return WeekComplete(matches, now, buffer)
}
