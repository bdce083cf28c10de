// Package stand implements the ability engine for a single stand user:
// a target roster, the bombs (effects) attached to it, and the three
// ability tiers that place, retarget, and reset them.
package stand

import (
	"iter"
	"maps"
	"math"
	"slices"
)

// TargetID uniquely identifies a target on the battlefield.
type TargetID uint32

// Vec3 is a position in battlefield space.
type Vec3 struct{ X, Y, Z float64 }

func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Len() float64    { return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z) }

// Distance returns the Euclidean distance between a and b.
func (a Vec3) Distance(b Vec3) float64 { return a.Sub(b).Len() }

// Target is anything a bomb can be attached to.
type Target struct {
	ID       TargetID
	Name     string
	Position Vec3
	Health   int
	Heat     float64 // Body temperature, used for heat-seeking selection
	Alive    bool
}

// FullHealth is the health a target is restored to by a reality reset.
const FullHealth = 100

// setHealth keeps Alive consistent with Health. Health never drops below 0.
func (t *Target) setHealth(hp int) {
	if hp < 0 {
		hp = 0
	}
	t.Health = hp
	t.Alive = hp > 0
}

// Registry holds the targets known to an engine, keyed by id.
type Registry struct {
	targets map[TargetID]*Target
}

// NewRegistry creates an empty target registry.
func NewRegistry() *Registry {
	return &Registry{targets: make(map[TargetID]*Target)}
}

// Register inserts or replaces a target by id.
// Alive is derived from Health so the two never disagree.
func (r *Registry) Register(t Target) {
	t.setHealth(t.Health)
	r.targets[t.ID] = &t
}

// Lookup returns a copy of the target with the given id.
func (r *Registry) Lookup(id TargetID) (Target, error) {
	t, ok := r.targets[id]
	if !ok {
		return Target{}, opError("lookup", id, ErrNotFound)
	}
	return *t, nil
}

// Has reports whether a target is registered.
func (r *Registry) Has(id TargetID) bool {
	_, ok := r.targets[id]
	return ok
}

// Count returns the number of registered targets.
func (r *Registry) Count() int {
	return len(r.targets)
}

// AllAlive yields a copy of every alive target. Order is unspecified.
// The sequence can be ranged over more than once.
func (r *Registry) AllAlive() iter.Seq[Target] {
	return func(yield func(Target) bool) {
		for _, t := range r.targets {
			if !t.Alive {
				continue
			}
			if !yield(*t) {
				return
			}
		}
	}
}

// IDs returns every registered id in ascending order.
func (r *Registry) IDs() []TargetID {
	return slices.Sorted(maps.Keys(r.targets))
}

// get returns the live pointer for engine-internal mutation.
func (r *Registry) get(id TargetID) *Target {
	return r.targets[id]
}
