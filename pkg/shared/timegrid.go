package shared

import "time"

// WeekStart returns the Monday 00:00 UTC that begins d's ISO week.
func WeekStart(d time.Time) time.Time {
	d = d.UTC()
	day := d.Weekday()
	// time.Sunday == 0; treat Monday == 1 .. Sunday == 7 for offset math.
	offset := int(day)
	if offset == 0 {
		offset = 7
	}
	monday := d.AddDate(0, 0, -(offset - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekEnd returns the last instant (23:59:59.999) of the week that starts at start.
func WeekEnd(start time.Time) time.Time {
	return start.AddDate(0, 0, 7).Add(-time.Millisecond)
}

// Bucket is one weekly planning bucket [Start, End].
type Bucket struct {
	Start time.Time
	End   time.Time
}

// WeeklyBuckets returns n contiguous weekly buckets starting at WeekStart(start).
func WeeklyBuckets(start time.Time, n int) []Bucket {
	base := WeekStart(start)
	buckets := make([]Bucket, 0, n)
	for i := 0; i < n; i++ {
		s := base.AddDate(0, 0, 7*i)
		buckets = append(buckets, Bucket{Start: s, End: WeekEnd(s)})
	}
	return buckets
}

// BucketIndex returns the index of the bucket that contains instant t, given
// the planning start date, or -1 if t falls before the week containing
// start. There is no upper bound on the index (callers clamp against
// horizon length themselves).
func BucketIndex(start, t time.Time) int {
	base := WeekStart(start)
	t = t.UTC()
	if t.Before(base) {
		return -1
	}
	days := int(t.Sub(base).Hours() / 24)
	return days / 7
}

// InWeek reports whether t falls within [weekStart, weekStart+7d).
func InWeek(weekStart, t time.Time) bool {
	end := weekStart.AddDate(0, 0, 7)
	return !t.Before(weekStart) && t.Before(end)
}
