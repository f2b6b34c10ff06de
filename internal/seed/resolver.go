package seed

import "sync"

// Resolver maps dataset names to the ids the store assigned during one run.
// A Resolver belongs to a single run and is safe for concurrent use.
type Resolver struct {
	mu             sync.RWMutex
	categories     map[string]string
	customizations map[string]string
	menus          map[string]string
}

// NewResolver returns an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{
		categories:     map[string]string{},
		customizations: map[string]string{},
		menus:          map[string]string{},
	}
}

func (r *Resolver) set(m map[string]string, name, id string) {
	r.mu.Lock()
	m[name] = id
	r.mu.Unlock()
}

func (r *Resolver) get(m map[string]string, name string) (string, bool) {
	r.mu.RLock()
	id, ok := m[name]
	r.mu.RUnlock()
	return id, ok
}

// SetCategory records the id of the named category.
func (r *Resolver) SetCategory(name, id string) { r.set(r.categories, name, id) }

// CategoryID returns the id of the named category.
func (r *Resolver) CategoryID(name string) (string, bool) { return r.get(r.categories, name) }

// SetCustomization records the id of the named customization.
func (r *Resolver) SetCustomization(name, id string) { r.set(r.customizations, name, id) }

// CustomizationID returns the id of the named customization.
func (r *Resolver) CustomizationID(name string) (string, bool) { return r.get(r.customizations, name) }

// SetMenu records the id of the named menu item.
func (r *Resolver) SetMenu(name, id string) { r.set(r.menus, name, id) }

// MenuID returns the id of the named menu item.
func (r *Resolver) MenuID(name string) (string, bool) { return r.get(r.menus, name) }
