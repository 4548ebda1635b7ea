package skill

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotRegistered is returned by Resolve for unknown skill names.
var ErrNotRegistered = errors.New("skill not registered")

// Info describes a registered skill for API listings.
type Info struct {
	Name      string `json:"name"`
	CostLevel int    `json:"cost_level"`
	DataType  string `json:"data_type"`
}

// Registry holds named skill descriptors. Registration is last-write-wins;
// there is no removal, the registry lives for the process.
type Registry struct {
	mu     sync.RWMutex
	skills map[string]Descriptor
}

// NewRegistry creates an empty skill registry.
func NewRegistry() *Registry {
	return &Registry{
		skills: make(map[string]Descriptor),
	}
}

// Register stores a descriptor under name, overwriting any prior one.
func (r *Registry) Register(name string, s Skill, costLevel int, dataType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skills[name] = Descriptor{
		Name:      name,
		Skill:     s,
		CostLevel: costLevel,
		DataType:  dataType,
	}
}

// Resolve returns the descriptor registered under name, or an error wrapping
// ErrNotRegistered.
func (r *Registry) Resolve(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.skills[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("skill %q: %w", name, ErrNotRegistered)
	}
	return d, nil
}

// List returns information about all registered skills, sorted by name for
// a stable API response.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.skills))
	for _, d := range r.skills {
		infos = append(infos, Info{
			Name:      d.Name,
			CostLevel: d.CostLevel,
			DataType:  d.DataType,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Len returns the number of registered skills.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.skills)
}
