package stream

import (
	"fmt"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Tracker counts records by fingerprint so repeated documents can be
// reported or dropped. It is safe for concurrent use.
//
// An unbounded tracker remembers every fingerprint. A windowed tracker
// remembers only the most recently seen ones, so a repeat outside the
// window counts as new.
type Tracker struct {
	mu sync.RWMutex

	entries map[uint64]*Entry
	window  *lru.Cache[uint64, *Entry] // nil for unbounded trackers
	evicted int
}

// Entry holds what a Tracker knows about one fingerprint.
type Entry struct {
	Hash      uint64
	FirstLine int // Line of the first record with this fingerprint
	LastLine  int
	Count     int
}

// NewTracker creates an empty unbounded tracker.
func NewTracker() *Tracker {
	return &Tracker{
		entries: make(map[uint64]*Entry),
	}
}

// NewWindowTracker creates a tracker that remembers at most size
// fingerprints, evicting the least recently seen.
func NewWindowTracker(size int) (*Tracker, error) {
	t := &Tracker{}
	window, err := lru.NewWithEvict(size, func(uint64, *Entry) {
		// Runs inside Observe, under t.mu.
		t.evicted++
	})
	if err != nil {
		return nil, fmt.Errorf("stream: tracker window: %w", err)
	}
	t.window = window
	return t, nil
}

// Observe records rec and reports whether its fingerprint was new.
// The record must come from a reader created WithCanonical.
func (t *Tracker) Observe(rec *Record) (first bool, err error) {
	if rec.Canonical == "" {
		return false, fmt.Errorf("stream: record on line %d has no fingerprint", rec.Line)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.get(rec.Hash)
	if !ok {
		e = &Entry{Hash: rec.Hash, FirstLine: rec.Line}
		if t.window != nil {
			t.window.Add(rec.Hash, e)
		} else {
			t.entries[rec.Hash] = e
		}
	}
	e.Count++
	e.LastLine = rec.Line
	return !ok, nil
}

func (t *Tracker) get(hash uint64) (*Entry, bool) {
	if t.window != nil {
		return t.window.Get(hash)
	}
	e, ok := t.entries[hash]
	return e, ok
}

// Lookup returns a copy of the entry for hash.
func (t *Tracker) Lookup(hash uint64) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var e *Entry
	var ok bool
	if t.window != nil {
		e, ok = t.window.Peek(hash)
	} else {
		e, ok = t.entries[hash]
	}
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Len returns the number of distinct fingerprints currently remembered.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.window != nil {
		return t.window.Len()
	}
	return len(t.entries)
}

// Evicted returns how many fingerprints a windowed tracker has forgotten.
func (t *Tracker) Evicted() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.evicted
}

// Duplicates returns remembered entries seen more than once, ordered by
// first line.
func (t *Tracker) Duplicates() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	all := t.entries
	if t.window != nil {
		all = make(map[uint64]*Entry, t.window.Len())
		for _, e := range t.window.Values() {
			all[e.Hash] = e
		}
	}

	var dups []Entry
	for _, e := range all {
		if e.Count > 1 {
			dups = append(dups, *e)
		}
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].FirstLine < dups[j].FirstLine })
	return dups
}

// Reset forgets every fingerprint.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.window != nil {
		t.window.Purge()
	} else {
		t.entries = make(map[uint64]*Entry)
	}
	t.evicted = 0
}
