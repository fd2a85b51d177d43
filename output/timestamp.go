package output

import "time"

const timestampLayout = "20060102150405"

// Timestamp formats t as YYYYMMDDHHMMSS using t's own location.
func Timestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// Now is Timestamp of the current local time.
func Now() string {
	return Timestamp(time.Now())
}
