package rules

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ReactionItem is a queued reaction awaiting resolution. Its Resolve
// closure executes the bound effect against the LKI-snapshotted source; the
// live source may have left play since the emblem was created.
type ReactionItem struct {
	ID          string
	Controller  string
	Description string
	EmblemID    string

	// Available reports whether the reaction can currently be resolved;
	// nil means always available.
	Available func() bool
	Resolve   func() error
	// OnPurge is called when the item is discarded unresolved.
	OnPurge func()
}

// ReactionManager resolves queued reactions in priority order. Resolution
// proceeds round-robin from the first player: the first player found with an
// available reaction resolves exactly one, then the scan restarts from the
// first player. A full pass with no resolution terminates the drain and
// purges whatever is left.
type ReactionManager struct {
	mu    sync.Mutex
	items []ReactionItem
	bus   *EventBus
}

// NewReactionManager creates an empty manager.
func NewReactionManager(bus *EventBus) *ReactionManager {
	return &ReactionManager{bus: bus}
}

// Queue adds a reaction to the queue. Chained reactions queued during a
// drain are picked up by the next scan without special-casing.
func (rm *ReactionManager) Queue(item ReactionItem) string {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	rm.items = append(rm.items, item)
	if rm.bus != nil {
		rm.bus.Publish(NewEvent(EventReactionQueued, item.Controller, item.EmblemID))
	}
	return item.ID
}

// Pending returns the queued reactions in queue order.
func (rm *ReactionManager) Pending() []ReactionItem {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	out := make([]ReactionItem, len(rm.items))
	copy(out, rm.items)
	return out
}

// Len returns the number of queued reactions.
func (rm *ReactionManager) Len() int {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return len(rm.items)
}

// ResolveAll drains the queue in initiative order. After each resolution the
// between callback runs (the engine re-adjudicates passives there) and the
// scan restarts from the first player. Leftover unavailable reactions are
// purged. Terminates in finite steps for any finite queue: every iteration
// either removes an item or ends the loop.
func (rm *ReactionManager) ResolveAll(initiative []string, between func() error) error {
	for {
		item, ok := rm.takeNextAvailable(initiative)
		if !ok {
			rm.purge()
			return nil
		}
		if err := item.Resolve(); err != nil {
			return fmt.Errorf("resolving reaction %s: %w", item.ID, err)
		}
		if rm.bus != nil {
			rm.bus.Publish(NewEvent(EventReactionPlayed, item.Controller, item.EmblemID))
		}
		if between != nil {
			if err := between(); err != nil {
				return err
			}
		}
	}
}

// takeNextAvailable scans players in initiative order and removes the first
// available reaction of the first player who has one.
func (rm *ReactionManager) takeNextAvailable(initiative []string) (ReactionItem, bool) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	for _, playerID := range initiative {
		for i, item := range rm.items {
			if item.Controller != playerID {
				continue
			}
			if item.Available != nil && !item.Available() {
				continue
			}
			rm.items = append(rm.items[:i], rm.items[i+1:]...)
			return item, true
		}
	}
	return ReactionItem{}, false
}

func (rm *ReactionManager) purge() {
	rm.mu.Lock()
	purged := rm.items
	rm.items = nil
	rm.mu.Unlock()
	for _, item := range purged {
		if item.OnPurge != nil {
			item.OnPurge()
		}
	}
}
