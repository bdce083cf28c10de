package standdata

import (
	"fmt"

	"github.com/samdwyer/standbattle/internal/stand"
)

// StatsDef holds letter grades as written in profile.yaml.
type StatsDef struct {
	DestructivePower     string `yaml:"destructivePower"`
	Speed                string `yaml:"speed"`
	Range                string `yaml:"range"`
	Durability           string `yaml:"durability"`
	Precision            string `yaml:"precision"`
	DevelopmentPotential string `yaml:"developmentPotential"`
}

// Profile describes the stand user.
type Profile struct {
	User  string   `yaml:"user"`
	Stand string   `yaml:"stand"`
	Cry   string   `yaml:"cry"`
	Stats StatsDef `yaml:"stats"`
}

// LoadProfile loads the embedded profile.yaml.
func LoadProfile() (*Profile, error) {
	p, err := Load[Profile]("profile.yaml")
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// StandStats parses the letter grades. Empty grades fall back to the
// default profile.
func (p *Profile) StandStats() (stand.Stats, error) {
	s := stand.DefaultStats()
	fields := []struct {
		name  string
		grade string
		dst   *stand.Rank
	}{
		{"destructivePower", p.Stats.DestructivePower, &s.DestructivePower},
		{"speed", p.Stats.Speed, &s.Speed},
		{"range", p.Stats.Range, &s.Range},
		{"durability", p.Stats.Durability, &s.Durability},
		{"precision", p.Stats.Precision, &s.Precision},
		{"developmentPotential", p.Stats.DevelopmentPotential, &s.DevelopmentPotential},
	}
	for _, f := range fields {
		if f.grade == "" {
			continue
		}
		r, err := stand.ParseRank(f.grade)
		if err != nil {
			return stand.Stats{}, fmt.Errorf("profile stat %s: %w", f.name, err)
		}
		*f.dst = r
	}
	return s, nil
}
