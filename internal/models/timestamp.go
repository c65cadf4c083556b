package models

import "time"

// TimestampLayout matches the millisecond UTC form browsers produce, so
// stored timestamps sort lexicographically in time order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
