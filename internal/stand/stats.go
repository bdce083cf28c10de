package stand

import "fmt"

// Rank is a stand parameter grade from E (1) to A (5).
type Rank uint8

const (
	RankE Rank = iota + 1
	RankD
	RankC
	RankB
	RankA
)

// String returns the letter grade.
func (r Rank) String() string {
	switch r {
	case RankA:
		return "A"
	case RankB:
		return "B"
	case RankC:
		return "C"
	case RankD:
		return "D"
	case RankE:
		return "E"
	default:
		return "?"
	}
}

// ParseRank converts a letter grade into a Rank.
func ParseRank(s string) (Rank, error) {
	switch s {
	case "A", "a":
		return RankA, nil
	case "B", "b":
		return RankB, nil
	case "C", "c":
		return RankC, nil
	case "D", "d":
		return RankD, nil
	case "E", "e":
		return RankE, nil
	default:
		return 0, fmt.Errorf("invalid rank %q", s)
	}
}

// Stats is the six-parameter stand profile.
type Stats struct {
	DestructivePower     Rank
	Speed                Rank
	Range                Rank
	Durability           Rank
	Precision            Rank
	DevelopmentPotential Rank
}

// DefaultStats returns the canonical profile: close range, heavy hitting.
func DefaultStats() Stats {
	return Stats{
		DestructivePower:     RankA,
		Speed:                RankB,
		Range:                RankD,
		Durability:           RankB,
		Precision:            RankB,
		DevelopmentPotential: RankA,
	}
}

// ProjectedDamage is the damage a blast of the given power would deal at
// distance, falling off linearly to nothing at 10 units. Detonate does not
// apply it; it is for previews.
func ProjectedDamage(power uint32, distance float64) uint32 {
	if distance < 0 {
		distance = 0
	}
	falloff := 1 - min(distance/10, 1)
	return uint32(float64(power) * falloff)
}
