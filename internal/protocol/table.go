package protocol

import (
	"sync"
	"sync/atomic"
)

// Result is the outcome delivered to a waiting caller. Exactly one of
// Value/Err is meaningful.
type Result struct {
	Value any
	Err   error
}

// pendingCommand tracks an in-flight command awaiting its response.
// The done channel has capacity 1 and is written to exactly once, by
// whichever removal path wins the entry from the table.
type pendingCommand struct {
	id          int64
	action      string
	description string
	done        chan Result
}

func newPendingCommand(id int64, action, description string) *pendingCommand {
	return &pendingCommand{
		id:          id,
		action:      action,
		description: description,
		done:        make(chan Result, 1),
	}
}

// complete delivers the outcome. The caller must own the entry, i.e. have
// removed it from the table via take or drain.
func (p *pendingCommand) complete(res Result) {
	p.done <- res
}

// idAllocator produces strictly increasing command ids starting at 1.
// Safe for concurrent use; ids are never reused within a client's lifetime.
type idAllocator struct {
	last atomic.Int64
}

func (a *idAllocator) next() int64 {
	return a.last.Add(1)
}

// pendingTable maps in-flight command ids to their waiting continuations.
// It is the correlation core's only shared mutable state besides the id
// counter. A single coarse lock suffices: every operation is O(1) and
// non-blocking.
type pendingTable struct {
	mu      sync.Mutex
	entries map[int64]*pendingCommand
}

func newPendingTable() *pendingTable {
	return &pendingTable{entries: make(map[int64]*pendingCommand, 10)}
}

// register inserts a new entry. The allocator guarantees the id is not
// already present.
func (t *pendingTable) register(p *pendingCommand) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[p.id] = p
}

// take atomically removes and returns the entry for id. Both the response
// path and the timeout path call take; whichever calls first wins the entry
// and completes it. The loser observes absence and performs no further
// action.
func (t *pendingTable) take(id int64) (*pendingCommand, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.entries[id]
	if ok {
		delete(t.entries, id)
	}

	return p, ok
}

// size reports the number of in-flight commands, for diagnostics.
func (t *pendingTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// drain removes and returns every entry. Used for the terminal
// connection-closed sweep so no caller waits forever.
func (t *pendingTable) drain() []*pendingCommand {
	t.mu.Lock()
	defer t.mu.Unlock()

	remaining := make([]*pendingCommand, 0, len(t.entries))
	for _, p := range t.entries {
		remaining = append(remaining, p)
	}

	clear(t.entries)

	return remaining
}
