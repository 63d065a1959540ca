package codec

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the available codecs
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec // key can be either name or UID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

var defaultRegistry = NewRegistry()

// Register registers a codec in the default registry
func Register(c Codec) error {
	return defaultRegistry.Register(c)
}

// Get retrieves a codec by name or UID from the default registry
func Get(nameOrUID string) (Codec, error) {
	return defaultRegistry.Get(nameOrUID)
}

// List returns all codecs of the default registry
func List() []Codec {
	return defaultRegistry.List()
}

// Register registers a codec using both its name and UID.
// A later registration under the same key replaces the earlier one.
func (r *Registry) Register(c Codec) error {
	if c == nil {
		return fmt.Errorf("%w: nil codec", ErrInvalidParameter)
	}
	if c.Name() == "" || c.UID() == "" {
		return fmt.Errorf("%w: codec needs both a name and a UID", ErrInvalidParameter)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[c.Name()] = c
	r.codecs[c.UID()] = c
	return nil
}

// Get retrieves a codec by name or UID
func (r *Registry) Get(nameOrUID string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.codecs[nameOrUID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCodecNotFound, nameOrUID)
	}
	return c, nil
}

// List returns all registered codecs, deduplicated and sorted by name
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Codec]bool)
	codecs := make([]Codec, 0, len(r.codecs)/2)

	for _, c := range r.codecs {
		if !seen[c] {
			seen[c] = true
			codecs = append(codecs, c)
		}
	}

	sort.Slice(codecs, func(i, j int) bool {
		return codecs[i].Name() < codecs[j].Name()
	})
	return codecs
}
