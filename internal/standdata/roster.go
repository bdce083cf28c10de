package standdata

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/standbattle/internal/stand"
)

// TargetDef defines a battlefield target loaded from YAML.
type TargetDef struct {
	ID       uint32     `yaml:"id"`       // Unique identifier, must be non-zero
	Name     string     `yaml:"name"`     // Display name
	Position [3]float64 `yaml:"position"` // x, y, z
	Health   int        `yaml:"health"`   // Starting health
	Heat     float64    `yaml:"heat"`     // Body temperature
	Color    string     `yaml:"color"`    // Hex color code (e.g., "#00FF00")
}

// Target converts the definition into an engine target.
func (d *TargetDef) Target() stand.Target {
	return stand.Target{
		ID:       stand.TargetID(d.ID),
		Name:     d.Name,
		Position: stand.Vec3{X: d.Position[0], Y: d.Position[1], Z: d.Position[2]},
		Health:   d.Health,
		Heat:     d.Heat,
		Alive:    d.Health > 0,
	}
}

// TCellColor returns the color as a tcell.Color.
func (d *TargetDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(d.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// RosterFile represents the structure of roster.yaml.
type RosterFile struct {
	Targets []TargetDef `yaml:"targets"`
}

// Roster holds loaded target definitions with lookup by id.
type Roster struct {
	targets []TargetDef
	byID    map[uint32]*TargetDef
}

// NewRoster creates a roster, rejecting zero or duplicate ids.
func NewRoster(targets []TargetDef) (*Roster, error) {
	r := &Roster{
		targets: targets,
		byID:    make(map[uint32]*TargetDef, len(targets)),
	}
	for i := range targets {
		id := targets[i].ID
		if id == 0 {
			return nil, fmt.Errorf("target %q has no id", targets[i].Name)
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("duplicate target id %d", id)
		}
		r.byID[id] = &targets[i]
	}
	return r, nil
}

// LoadRoster loads the embedded roster.yaml.
func LoadRoster() (*Roster, error) {
	file, err := Load[RosterFile]("roster.yaml")
	if err != nil {
		return nil, err
	}
	return rosterFrom(file, "roster.yaml")
}

// LoadRosterFile loads a roster from a YAML file on disk.
func LoadRosterFile(path string) (*Roster, error) {
	file, err := LoadFile[RosterFile](path)
	if err != nil {
		return nil, err
	}
	return rosterFrom(file, path)
}

func rosterFrom(file RosterFile, name string) (*Roster, error) {
	if len(file.Targets) == 0 {
		return nil, errors.New("no targets loaded from " + name)
	}
	return NewRoster(file.Targets)
}

// GetByID returns the target definition with the given id, or nil if not found.
func (r *Roster) GetByID(id uint32) *TargetDef {
	return r.byID[id]
}

// Targets returns engine targets for every definition, in file order.
func (r *Roster) Targets() []stand.Target {
	out := make([]stand.Target, len(r.targets))
	for i := range r.targets {
		out[i] = r.targets[i].Target()
	}
	return out
}

// Color returns the display color for a target id, or white if unknown.
func (r *Roster) Color(id stand.TargetID) tcell.Color {
	if def := r.byID[uint32(id)]; def != nil {
		return def.TCellColor()
	}
	return tcell.ColorWhite
}

// All returns all target definitions.
func (r *Roster) All() []TargetDef {
	return r.targets
}

// Count returns the number of targets in the roster.
func (r *Roster) Count() int {
	return len(r.targets)
}
