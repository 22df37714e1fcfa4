// registry.go holds the process-wide list of extensions.
//
// Extensions call Register from init(), so the list is complete before
// main() runs. Duplicate names panic, as database/sql.Register does.

package extension

import "sync"

var (
	mu         sync.RWMutex
	extensions []Extension
)

// Register adds e to the registry. Panics if the name is already taken.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	if find(e.Name()) != nil {
		panic("extension already registered: " + e.Name())
	}
	extensions = append(extensions, e)
}

// All returns the registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Extension(nil), extensions...)
}

// Get returns the extension called name, or nil.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	return find(name)
}

// Names lists registered extension names in registration order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, len(extensions))
	for i, e := range extensions {
		names[i] = e.Name()
	}
	return names
}

// find expects mu to be held.
func find(name string) Extension {
	for _, e := range extensions {
		if e.Name() == name {
			return e
		}
	}
	return nil
}
