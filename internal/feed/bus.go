package feed

import (
	"log"
	"sync"
)

const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ClaimChange describes one row-level change on the claims table.
type ClaimChange struct {
	GameID  uint   `json:"game_id"`
	ClaimID uint   `json:"claim_id"`
	Op      string `json:"op"`
}

type subscriber func(ClaimChange)

// Bus fans claim changes out to subscribers filtered by game.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[uint]map[int]subscriber
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[uint]map[int]subscriber),
	}
}

// Subscribe registers fn for changes on gameID and returns a cancel func.
func (b *Bus) Subscribe(gameID uint, fn func(ClaimChange)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	group := b.subs[gameID]
	if group == nil {
		group = make(map[int]subscriber)
		b.subs[gameID] = group
	}
	group[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			group := b.subs[gameID]
			delete(group, id)
			if len(group) == 0 {
				delete(b.subs, gameID)
			}
		})
	}
}

func (b *Bus) Publish(change ClaimChange) {
	b.mu.RLock()
	group := b.subs[change.GameID]
	fns := make([]subscriber, 0, len(group))
	for _, fn := range group {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()
	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("feed subscriber panic game_id=%d error=%v", change.GameID, r)
				}
			}()
			fn(change)
		}()
	}
}

// Subscribers reports how many subscribers are registered for gameID.
func (b *Bus) Subscribers(gameID uint) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[gameID])
}
