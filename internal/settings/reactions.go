package settings

import (
	"sync"
)

// Change describes a single setting edit
type Change struct {
	Key string
	Old Value
	New Value
}

// Reaction is invoked around a setting edit
type Reaction func(Change)

// Reactions is the registry of before/after change subscribers
type Reactions struct {
	mu     sync.RWMutex
	before map[string][]Reaction
	after  map[string][]Reaction
}

// NewReactions creates an empty reaction registry
func NewReactions() *Reactions {
	return &Reactions{
		before: make(map[string][]Reaction),
		after:  make(map[string][]Reaction),
	}
}

// OnBeforeChange subscribes fn to run before key is written
func (r *Reactions) OnBeforeChange(key string, fn Reaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.before[key] = append(r.before[key], fn)
}

// OnChange subscribes fn to run after key is written and persisted
func (r *Reactions) OnChange(key string, fn Reaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.after[key] = append(r.after[key], fn)
}

// Reset drops every subscription
func (r *Reactions) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.before = make(map[string][]Reaction)
	r.after = make(map[string][]Reaction)
}

func (r *Reactions) fireBefore(c Change) {
	for _, fn := range r.snapshot(r.before, c.Key) {
		fn(c)
	}
}

func (r *Reactions) fireAfter(c Change) {
	for _, fn := range r.snapshot(r.after, c.Key) {
		fn(c)
	}
}

func (r *Reactions) snapshot(m map[string][]Reaction, key string) []Reaction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Reaction(nil), m[key]...)
}
