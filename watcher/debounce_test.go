// Debounce coalescing tests: multiple events on the same path within
// the window collapse into the final event's action.
package watcher

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerCoalescesToLastAction(t *testing.T) {
	var mu sync.Mutex
	var dispatched []action

	d := newDebouncer(60*time.Millisecond, func(path string, act action) {
		mu.Lock()
		dispatched = append(dispatched, act)
		mu.Unlock()
	})
	defer d.Close()

	d.mark("/a.txt", actionUpsert)
	d.mark("/a.txt", actionUpsert)
	d.mark("/a.txt", actionRemove)

	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(dispatched) != 1 {
		t.Fatalf("dispatched %d actions, want exactly 1 (coalesced)", len(dispatched))
	}
	if dispatched[0] != actionRemove {
		t.Errorf("dispatched action = %v, want actionRemove (the final event within the window)", dispatched[0])
	}
}

func TestDebouncerResetsDeadlineOnNewEvent(t *testing.T) {
	var mu sync.Mutex
	var count int

	window := 80 * time.Millisecond
	d := newDebouncer(window, func(path string, act action) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	defer d.Close()

	d.mark("/a.txt", actionUpsert)
	time.Sleep(window / 2)
	d.mark("/a.txt", actionUpsert) // resets the deadline before the first would fire

	time.Sleep(window/2 + 20*time.Millisecond)
	mu.Lock()
	stillZero := count == 0
	mu.Unlock()
	if !stillZero {
		t.Errorf("dispatch fired before the reset deadline elapsed")
	}

	time.Sleep(window)
	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("count = %d after full window, want 1", count)
	}
}

func TestDebouncerHandlesDistinctPathsIndependently(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]action)

	d := newDebouncer(50*time.Millisecond, func(path string, act action) {
		mu.Lock()
		seen[path] = act
		mu.Unlock()
	})
	defer d.Close()

	d.mark("/a.txt", actionUpsert)
	d.mark("/b.txt", actionRemove)

	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if seen["/a.txt"] != actionUpsert {
		t.Errorf("/a.txt = %v, want actionUpsert", seen["/a.txt"])
	}
	if seen["/b.txt"] != actionRemove {
		t.Errorf("/b.txt = %v, want actionRemove", seen["/b.txt"])
	}
}
