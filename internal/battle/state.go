package battle

// Phase is the stage of the scripted battle.
type Phase int

const (
	// PhaseSetup registers the roster.
	PhaseSetup Phase = iota
	// PhaseFirstBomb places and detonates the direct bomb.
	PhaseFirstBomb
	// PhaseHeatSeeking deploys and ticks the heat-seeking bomb.
	PhaseHeatSeeking
	// PhaseRealityReset locks a target and resets everyone else.
	PhaseRealityReset
	// PhaseDone reports the final status.
	PhaseDone
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseFirstBomb:
		return "first_bomb"
	case PhaseHeatSeeking:
		return "sheer_heart_attack"
	case PhaseRealityReset:
		return "bites_the_dust"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Title is the banner shown when the phase begins.
func (p Phase) Title() string {
	switch p {
	case PhaseSetup:
		return "Battlefield"
	case PhaseFirstBomb:
		return "Battle Phase 1: Primary Bomb"
	case PhaseHeatSeeking:
		return "Battle Phase 2: Sheer Heart Attack"
	case PhaseRealityReset:
		return "Battle Phase 3: Bites the Dust"
	case PhaseDone:
		return "Final Battle Status"
	default:
		return ""
	}
}
