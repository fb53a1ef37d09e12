package core

import "sync"

// ListenerID identifies a registration so it can be removed later.
type ListenerID uint64

type registration[L any] struct {
	id       ListenerID
	listener L
}

// Registry is an ordered, mutex-guarded set of listeners.
// Snapshot returns a copy, so registrations made while a snapshot is being
// iterated are only seen by later snapshots.
type Registry[L any] struct {
	mu      sync.Mutex
	next    ListenerID
	entries []registration[L]
}

func (r *Registry[L]) Add(l L) ListenerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.entries = append(r.entries, registration[L]{id: r.next, listener: l})
	return r.next
}

// Remove reports whether id was registered.
func (r *Registry[L]) Remove(id ListenerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == id {
			// copy into a fresh slice; older snapshots may still alias entries
			out := make([]registration[L], 0, len(r.entries)-1)
			out = append(out, r.entries[:i]...)
			r.entries = append(out, r.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry[L]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry[L]) Snapshot() []L {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]L, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.listener
	}
	return out
}
