package dsdneo

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Canonical one-line event record, timestamped with a strftime layout so
// the log format is operator-configurable the way the teacher's APRS
// igate log timestamps are, rather than hardcoding Go's reference-time
// layout string.

var defaultEventTimeFormat = mustCompileStrftime("%Y-%m-%d %H:%M:%S")

func mustCompileStrftime(layout string) *strftime.Strftime {
	f, err := strftime.New(layout)
	if err != nil {
		panic(err)
	}
	return f
}

// EventRecord is one formatted trunking/decode event line.
type EventRecord struct {
	Time   time.Time
	Source string
	Text   string
}

// FormatEventRecord renders a record using the package's strftime layout.
func FormatEventRecord(r EventRecord) string {
	ts := defaultEventTimeFormat.FormatString(r.Time)
	return fmt.Sprintf("%s [%s] %s", ts, r.Source, r.Text)
}

// EventRing is a small bounded ring of recent event records for UI/log
// consumers to poll without re-parsing a growing log file.
type EventRing struct {
	buf   []EventRecord
	cap   int
	head  int
	count int
}

func NewEventRing(capacity int) *EventRing {
	if capacity < 1 {
		capacity = 1
	}
	return &EventRing{buf: make([]EventRecord, capacity), cap: capacity}
}

func (r *EventRing) Push(rec EventRecord) {
	idx := (r.head + r.count) % r.cap
	r.buf[idx] = rec
	if r.count == r.cap {
		r.head = (r.head + 1) % r.cap
	} else {
		r.count++
	}
}

// Recent returns the buffered records, oldest first.
func (r *EventRing) Recent() []EventRecord {
	out := make([]EventRecord, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.head+i)%r.cap]
	}
	return out
}
