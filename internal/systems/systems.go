package systems

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed systems.toml
var systemsTOML []byte

// System describes one catalog platform and the directory names it claims.
type System struct {
	ID   int      `toml:"id"`
	Name string   `toml:"name"`
	Dirs []string `toml:"dirs"`
}

// Registry resolves systems by catalog ID or by directory alias. It is
// immutable after construction; build it once during startup and pass it down.
type Registry struct {
	byID  map[int]System
	byDir map[string]System
	list  []System
}

type document struct {
	Systems []System `toml:"systems"`
}

// Load parses the embedded systems resource into a Registry.
func Load() (*Registry, error) {
	var doc document
	if err := toml.Unmarshal(systemsTOML, &doc); err != nil {
		return nil, fmt.Errorf("parse systems resource: %w", err)
	}
	return New(doc.Systems)
}

// New builds a Registry from the provided systems. Later duplicates of an ID
// or directory alias are rejected so the resource stays unambiguous.
func New(list []System) (*Registry, error) {
	reg := &Registry{
		byID:  make(map[int]System, len(list)),
		byDir: make(map[string]System),
		list:  make([]System, 0, len(list)),
	}
	for _, sys := range list {
		if sys.ID <= 0 {
			return nil, fmt.Errorf("system %q has invalid id %d", sys.Name, sys.ID)
		}
		if strings.TrimSpace(sys.Name) == "" {
			return nil, fmt.Errorf("system %d has no name", sys.ID)
		}
		if _, exists := reg.byID[sys.ID]; exists {
			return nil, fmt.Errorf("duplicate system id %d", sys.ID)
		}
		reg.byID[sys.ID] = sys
		for _, dir := range sys.Dirs {
			dir = strings.TrimSpace(dir)
			if dir == "" {
				continue
			}
			if other, exists := reg.byDir[dir]; exists {
				return nil, fmt.Errorf("directory alias %q claimed by systems %d and %d", dir, other.ID, sys.ID)
			}
			reg.byDir[dir] = sys
		}
		reg.list = append(reg.list, sys)
	}
	return reg, nil
}

// ByID resolves a system by its catalog ID.
func (r *Registry) ByID(id int) (System, bool) {
	sys, ok := r.byID[id]
	return sys, ok
}

// ByDir resolves a system by a directory name. Matching is exact, the way
// collection layouts name their per-system folders.
func (r *Registry) ByDir(name string) (System, bool) {
	sys, ok := r.byDir[name]
	return sys, ok
}

// All returns every registered system in resource order.
func (r *Registry) All() []System {
	out := make([]System, len(r.list))
	copy(out, r.list)
	return out
}

// Len reports the number of registered systems.
func (r *Registry) Len() int {
	return len(r.list)
}
