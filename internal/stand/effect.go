package stand

import "time"

// EffectKind is the ability tier that produced an effect.
type EffectKind int

const (
	// EffectDirect is the first bomb: a single touch-placed charge.
	EffectDirect EffectKind = iota
	// EffectHeatSeeking is the autonomous bomb that chases the hottest target.
	EffectHeatSeeking
	// EffectRealityReset marks the target exempt from a reality reset.
	EffectRealityReset
)

// Power values are fixed per kind.
const (
	DirectPower       uint32 = 100
	HeatSeekingPower  uint32 = 80
	RealityResetPower uint32 = 200
)

// String returns a human-readable kind name.
func (k EffectKind) String() string {
	switch k {
	case EffectDirect:
		return "direct"
	case EffectHeatSeeking:
		return "heat_seeking"
	case EffectRealityReset:
		return "reality_reset"
	default:
		return "unknown"
	}
}

// Power returns the fixed power of the kind, or 0 for unknown kinds.
func (k EffectKind) Power() uint32 {
	switch k {
	case EffectDirect:
		return DirectPower
	case EffectHeatSeeking:
		return HeatSeekingPower
	case EffectRealityReset:
		return RealityResetPower
	default:
		return 0
	}
}

// Gesture is the hand motion that activates an ability tier.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureThumbPress
	GestureFingerSnap
	GestureHandClench
)

// String returns a human-readable gesture name.
func (g Gesture) String() string {
	switch g {
	case GestureThumbPress:
		return "thumb press"
	case GestureFingerSnap:
		return "finger snap"
	case GestureHandClench:
		return "hand clench"
	default:
		return "none"
	}
}

// Gesture returns the activation gesture for the kind.
func (k EffectKind) Gesture() Gesture {
	switch k {
	case EffectDirect:
		return GestureThumbPress
	case EffectHeatSeeking:
		return GestureFingerSnap
	case EffectRealityReset:
		return GestureHandClench
	default:
		return GestureNone
	}
}

// Effect is an ability instance attached to exactly one target.
type Effect struct {
	Kind      EffectKind
	TargetID  TargetID
	CreatedAt time.Time
	Active    bool
	Power     uint32
	Fuse      time.Duration // Zero means no timer is armed
}

func newEffect(kind EffectKind, id TargetID, now time.Time) *Effect {
	return &Effect{
		Kind:      kind,
		TargetID:  id,
		CreatedAt: now,
		Active:    true,
		Power:     kind.Power(),
	}
}

// Due reports whether an armed fuse has run out at the given time.
func (e Effect) Due(now time.Time) bool {
	return e.Fuse > 0 && now.Sub(e.CreatedAt) >= e.Fuse
}
