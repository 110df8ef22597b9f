package app

import (
	"sort"
	"sync"

	"github.com/example/hrdesk/internal/core/salaryhistory"
)

// PositionLocks serializes work that selects and writes the open salary
// records of one position. Salary changes and assignments to the same
// position take the same lock; different positions proceed in parallel.
type PositionLocks struct {
	mu    sync.Mutex
	locks map[string]*positionLock
}

type positionLock struct {
	mu   sync.Mutex
	refs int
}

// NewPositionLocks creates an empty lock set.
func NewPositionLocks() *PositionLocks {
	return &PositionLocks{locks: make(map[string]*positionLock)}
}

// Lock blocks until positionID is free and returns its unlock function.
func (p *PositionLocks) Lock(positionID string) (unlock func()) {
	p.mu.Lock()
	l, ok := p.locks[positionID]
	if !ok {
		l = &positionLock{}
		p.locks[positionID] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, positionID)
		}
		p.mu.Unlock()
	}
}

// LockAll locks every distinct non-empty ID in a fixed order and returns a
// function releasing them all. Callers holding several positions must use it
// instead of nested Lock calls.
func (p *PositionLocks) LockAll(positionIDs ...string) (unlock func()) {
	seen := make(map[string]bool, len(positionIDs))
	ids := make([]string, 0, len(positionIDs))
	for _, id := range positionIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return salaryhistory.CompareIDs(ids[i], ids[j]) < 0
	})

	unlocks := make([]func(), 0, len(ids))
	for _, id := range ids {
		unlocks = append(unlocks, p.Lock(id))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}
