// Package names tracks the set of manifold names currently in use, so that
// no two live manifolds in a process ever share a name.
package names

import "sync"

// Registry is a set of in-use names guarded by a single lock. Contention is
// rare (names change only at construction, destruction and rename), so one
// coarse lock over the whole table is enough.
type Registry struct {
	mu   sync.Mutex
	used map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{used: make(map[string]struct{})}
}

// Default is the registry manifold constructors fall back to when none is
// supplied. Tests that need isolation create their own via NewRegistry.
var Default = NewRegistry()

// Register claims name. It fails with *DuplicateNameError if the name is
// already held by a live manifold.
func (r *Registry) Register(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.used[name]; ok {
		return &DuplicateNameError{Name: name}
	}
	r.used[name] = struct{}{}
	return nil
}

// Unregister releases name. It fails with *NotFoundError if the name was
// never registered or has already been released.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.used[name]; !ok {
		return &NotFoundError{Name: name}
	}
	delete(r.used, name)
	return nil
}

// Rename atomically releases old and claims new. Renaming a name to itself
// is a no-op. On failure neither name changes ownership.
func (r *Registry) Rename(old, new string) error {
	if old == new {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.used[old]; !ok {
		return &NotFoundError{Name: old}
	}
	if _, ok := r.used[new]; ok {
		return &DuplicateNameError{Name: new}
	}
	delete(r.used, old)
	r.used[new] = struct{}{}
	return nil
}

// InUse reports whether name is currently registered.
func (r *Registry) InUse(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.used[name]
	return ok
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.used)
}
