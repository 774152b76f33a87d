package prof

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Entry is one labeled timing measurement.
type Entry struct {
	Label string
	Dur   time.Duration
}

var (
	mu     sync.Mutex
	record []Entry
)

// Track records the duration since start under the given label. Intended as
// `defer prof.Track(time.Now(), "keystream")`.
func Track(start time.Time, label string) {
	elapsed := time.Since(start)
	mu.Lock()
	record = append(record, Entry{Label: label, Dur: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns the collected entries and clears the record.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}

// Report writes one line per entry, aggregating repeated labels into a
// count and a total.
func Report(w io.Writer, entries []Entry) {
	type agg struct {
		count int
		total time.Duration
	}
	order := make([]string, 0, len(entries))
	sums := make(map[string]*agg)
	for _, e := range entries {
		a, ok := sums[e.Label]
		if !ok {
			a = &agg{}
			sums[e.Label] = a
			order = append(order, e.Label)
		}
		a.count++
		a.total += e.Dur
	}
	for _, label := range order {
		a := sums[label]
		fmt.Fprintf(w, "%-24s %4d call(s)  total %v  avg %v\n", label, a.count, a.total, a.total/time.Duration(a.count))
	}
}
