package stream

import (
	"strings"
	"sync"
	"testing"

	"github.com/go-quicktest/qt"
)

func readCanonical(t *testing.T, input string) []*Record {
	t.Helper()
	r, err := NewReader(strings.NewReader(input), WithCanonical())
	qt.Assert(t, qt.IsNil(err))
	records, err := r.ReadAll()
	qt.Assert(t, qt.IsNil(err))
	return records
}

func TestTracker_Observe(t *testing.T) {
	records := readCanonical(t, "(a: 1, b: 2)\n[1]\n(b: 2, a: 1)\n[1]\n[1]\nnull\n")
	tracker := NewTracker()

	var firsts []bool
	for _, rec := range records {
		first, err := tracker.Observe(rec)
		qt.Assert(t, qt.IsNil(err))
		firsts = append(firsts, first)
	}
	qt.Assert(t, qt.DeepEquals(firsts, []bool{true, true, false, false, false, true}))
	qt.Assert(t, qt.Equals(tracker.Len(), 3))

	e, ok := tracker.Lookup(records[1].Hash)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(e, Entry{Hash: records[1].Hash, FirstLine: 2, LastLine: 5, Count: 3}))

	_, ok = tracker.Lookup(0)
	qt.Assert(t, qt.IsFalse(ok))

	dups := tracker.Duplicates()
	qt.Assert(t, qt.HasLen(dups, 2))
	qt.Assert(t, qt.Equals(dups[0].FirstLine, 1))
	qt.Assert(t, qt.Equals(dups[0].Count, 2))
	qt.Assert(t, qt.Equals(dups[1].FirstLine, 2))

	tracker.Reset()
	qt.Assert(t, qt.Equals(tracker.Len(), 0))
}

func TestTracker_RequiresCanonical(t *testing.T) {
	_, err := NewTracker().Observe(&Record{Line: 7})
	qt.Assert(t, qt.ErrorMatches(err, "stream: record on line 7 has no fingerprint"))
}

func TestTracker_Concurrent(t *testing.T) {
	records := readCanonical(t, "1\n2\n3\n1\n")
	tracker := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, rec := range records {
				if _, err := tracker.Observe(rec); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()

	qt.Assert(t, qt.Equals(tracker.Len(), 3))
	e, _ := tracker.Lookup(records[0].Hash)
	qt.Assert(t, qt.Equals(e.Count, 16))
}

func TestTracker_Window(t *testing.T) {
	records := readCanonical(t, "1\n2\n2\n3\n1\n")
	tracker, err := NewWindowTracker(2)
	qt.Assert(t, qt.IsNil(err))

	var firsts []bool
	for _, rec := range records {
		first, err := tracker.Observe(rec)
		qt.Assert(t, qt.IsNil(err))
		firsts = append(firsts, first)
	}
	// "1" fell out of the window before it was seen again.
	qt.Assert(t, qt.DeepEquals(firsts, []bool{true, true, false, true, true}))
	qt.Assert(t, qt.Equals(tracker.Len(), 2))
	qt.Assert(t, qt.Equals(tracker.Evicted(), 2))

	_, ok := tracker.Lookup(records[1].Hash)
	qt.Assert(t, qt.IsFalse(ok))
	e, ok := tracker.Lookup(records[4].Hash)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(e.FirstLine, 5))

	qt.Assert(t, qt.HasLen(tracker.Duplicates(), 0))

	tracker.Reset()
	qt.Assert(t, qt.Equals(tracker.Len(), 0))
	qt.Assert(t, qt.Equals(tracker.Evicted(), 0))
}

func TestTracker_WindowSize(t *testing.T) {
	_, err := NewWindowTracker(0)
	qt.Assert(t, qt.ErrorMatches(err, "stream: tracker window: .*"))
}
