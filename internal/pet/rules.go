// Package pet implements the virtual pet session: bounded happiness rules,
// a periodic decay tick, and fire-and-forget persistence of every change.
// It has no knowledge of the terminal; the platform layer renders State and
// calls the action entry points.
package pet

// Action is a change applied to the pet, either by the user or by the decay timer.
type Action int

const (
	ActionNone Action = iota
	ActionMakeHappy
	ActionSwipe
	ActionPet
	ActionGiveTreat
	ActionDecay
)

// String returns the stable name used in logs and the action journal.
func (a Action) String() string {
	switch a {
	case ActionMakeHappy:
		return "make_happy"
	case ActionSwipe:
		return "swipe"
	case ActionPet:
		return "pet"
	case ActionGiveTreat:
		return "give_treat"
	case ActionDecay:
		return "decay"
	default:
		return "none"
	}
}

// ParseAction is the inverse of Action.String.
func ParseAction(name string) Action {
	for _, a := range []Action{ActionMakeHappy, ActionSwipe, ActionPet, ActionGiveTreat, ActionDecay} {
		if a.String() == name {
			return a
		}
	}
	return ActionNone
}

// State is the in-memory session state.
type State struct {
	Happiness int
	Treats    int
}

// Rules holds the tunable numbers behind every action.
type Rules struct {
	MaxHappiness     int  // Upper bound for MakeHappy and Pet
	MinHappiness     int  // Lower bound for Swipe and decay
	DefaultHappiness int  // Value used when nothing is stored yet
	StartingTreats   int  // Treats granted per session
	MakeHappyDelta   int  // Added by MakeHappy
	SwipeDelta       int  // Subtracted by Swipe
	PetDelta         int  // Added by Pet
	TreatDelta       int  // Added by GiveTreat
	DecayStep        int  // Subtracted by each decay tick
	CapTreats        bool // Apply MaxHappiness to GiveTreat as well
}

// DefaultRules returns the stock pet rules.
func DefaultRules() Rules {
	return Rules{
		MaxHappiness:     150,
		MinHappiness:     0,
		DefaultHappiness: 100,
		StartingTreats:   5,
		MakeHappyDelta:   10,
		SwipeDelta:       10,
		PetDelta:         5,
		TreatDelta:       20,
		DecayStep:        3,
		CapTreats:        false,
	}
}

// effect describes how one action changes state and which feedback it triggers.
type effect struct {
	delta         int
	capped        bool
	floored       bool
	consumesTreat bool
	haptic        HapticStyle
	sound         bool
}

func (r Rules) effect(a Action) effect {
	switch a {
	case ActionMakeHappy:
		return effect{delta: r.MakeHappyDelta, capped: true, haptic: HapticSelection, sound: true}
	case ActionSwipe:
		return effect{delta: -r.SwipeDelta, floored: true, haptic: HapticSelection, sound: true}
	case ActionPet:
		return effect{delta: r.PetDelta, capped: true, haptic: HapticLight}
	case ActionGiveTreat:
		return effect{delta: r.TreatDelta, capped: r.CapTreats, consumesTreat: true, haptic: HapticMedium, sound: true}
	case ActionDecay:
		return effect{delta: -r.DecayStep, floored: true}
	default:
		return effect{}
	}
}

// Next returns the state after applying a to s.
// The second result is false when the action is a no-op (unknown action, or
// a treat with none left); s is then returned unchanged.
func (r Rules) Next(s State, a Action) (State, bool) {
	if a == ActionNone || a > ActionDecay {
		return s, false
	}

	fx := r.effect(a)
	if fx.consumesTreat && s.Treats <= 0 {
		return s, false
	}

	next := s
	next.Happiness = s.Happiness + fx.delta
	// Caps apply to the result, so a treat-inflated value above the cap
	// falls back to the cap on the next capped action.
	if fx.capped && next.Happiness > r.MaxHappiness {
		next.Happiness = r.MaxHappiness
	}
	if fx.floored && next.Happiness < r.MinHappiness {
		next.Happiness = r.MinHappiness
	}
	if fx.consumesTreat {
		next.Treats--
	}
	return next, true
}
