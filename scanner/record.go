package scanner

import (
	"time"
)

// FileRecord describes one visited entry. It lives only as long as the
// match decision for that entry.
type FileRecord struct {
	Path       string
	IsDir      bool
	Created    time.Time
	HasCreated bool
}

// Window is a closed creation-time range. A nil bound is unbounded.
type Window struct {
	Start *time.Time
	End   *time.Time
}

func (w Window) Unbounded() bool {
	return w.Start == nil && w.End == nil
}

// Contains reports whether the record's creation instant falls inside the
// window. Records without a creation instant only match an unbounded window.
func (w Window) Contains(rec FileRecord) bool {
	if !rec.HasCreated {
		return w.Unbounded()
	}
	if w.Start != nil && rec.Created.Before(*w.Start) {
		return false
	}
	if w.End != nil && rec.Created.After(*w.End) {
		return false
	}
	return true
}
