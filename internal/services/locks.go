package services

import (
	"fmt"
	"sync"
)

// KeyedMutex serializes writers per entity key ("order:7", "table:3").
// Transition validation and the guarded write must be atomic relative to
// other transition attempts on the same order, and the manual table toggle
// must not race an order-driven occupancy change on the same table.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSharedLocks creates the lock set. One instance must be shared by every
// service that writes orders or tables.
func NewSharedLocks() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func orderLockKey(orderID int64) string {
	return fmt.Sprintf("order:%d", orderID)
}

func tableLockKey(tableID int64) string {
	return fmt.Sprintf("table:%d", tableID)
}
