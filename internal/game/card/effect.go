package card

import "fmt"

// Verb is the closed set of operations an effect step can perform. The
// processor matches verbs exhaustively; an unknown verb is a ruleset fault,
// not a runtime condition.
type Verb int

const (
	// VerbDraw draws Amount cards for the resolving controller, or for each
	// player in initiative order when EachPlayer is set.
	VerbDraw Verb = iota
	// VerbDiscard makes the affected player discard Amount cards of their
	// choice from hand.
	VerbDiscard
	// VerbModifyStatistic adds Amount to the Terrain statistic of the
	// step's targets (all terrains when AllTerrains is set). Passive-layer
	// verb: mutates derived characteristics only.
	VerbModifyStatistic
	// VerbSetStatistic overrides the Terrain statistic of the step's
	// targets to Amount. Passive-layer verb.
	VerbSetStatistic
	// VerbGainKeyword grants Keyword to the step's targets.
	VerbGainKeyword
	// VerbLoseKeyword removes Keyword from the step's targets.
	VerbLoseKeyword
	// VerbLoseAbilities strips all abilities from the step's targets.
	VerbLoseAbilities
	// VerbSetType overrides the type of the step's targets to ObjectType.
	VerbSetType
	// VerbGrantStatus adds Status to the step's targets.
	VerbGrantStatus
	// VerbRemoveStatus removes Status from the step's targets.
	VerbRemoveStatus
	// VerbAddCounters places Amount counters of CounterKind on the step's
	// targets.
	VerbAddCounters
	// VerbMoveToZone relocates the step's targets to Zone.
	VerbMoveToZone
	// VerbAdvanceExpedition moves the controller's Axis expedition forward
	// Amount steps.
	VerbAdvanceExpedition
	// VerbQueueReaction enqueues a new reaction emblem carrying Steps,
	// bound to the resolving source.
	VerbQueueReaction
)

var verbNames = map[Verb]string{
	VerbDraw:              "DRAW",
	VerbDiscard:           "DISCARD",
	VerbModifyStatistic:   "MODIFY_STATISTIC",
	VerbSetStatistic:      "SET_STATISTIC",
	VerbGainKeyword:       "GAIN_KEYWORD",
	VerbLoseKeyword:       "LOSE_KEYWORD",
	VerbLoseAbilities:     "LOSE_ABILITIES",
	VerbSetType:           "SET_TYPE",
	VerbGrantStatus:       "GRANT_STATUS",
	VerbRemoveStatus:      "REMOVE_STATUS",
	VerbAddCounters:       "ADD_COUNTERS",
	VerbMoveToZone:        "MOVE_TO_ZONE",
	VerbAdvanceExpedition: "ADVANCE_EXPEDITION",
	VerbQueueReaction:     "QUEUE_REACTION",
}

func (v Verb) String() string {
	if name, ok := verbNames[v]; ok {
		return name
	}
	return fmt.Sprintf("VERB_%d", int(v))
}

// TargetScope identifies which objects a step operates on.
type TargetScope int

const (
	// ScopeSelf targets the step's own source object. Passive steps default
	// to self unless an explicit non-self target is defined.
	ScopeSelf TargetScope = iota
	// ScopeChosen targets the objects bound at play time (or prompted for
	// during resolution).
	ScopeChosen
	// ScopeAllAllied targets every in-play object the controller controls.
	ScopeAllAllied
	// ScopeAllEnemy targets every in-play object an opponent controls.
	ScopeAllEnemy
	// ScopeAll targets every in-play object.
	ScopeAll
)

// TargetSpec constrains a step's targets.
type TargetSpec struct {
	Scope   TargetScope
	OfType  Type // filter; only meaningful when HasType is set
	HasType bool
}

// SelectsType reports whether the spec filters by the given type.
func (ts TargetSpec) SelectsType(t Type) bool {
	return ts.HasType && ts.OfType == t
}

// EffectStep is one verb of an effect script together with its typed
// parameters. Only the fields relevant to the verb are meaningful.
type EffectStep struct {
	Verb Verb

	Amount      int
	Terrain     Terrain
	AllTerrains bool
	Keyword     Keyword
	Status      Status
	ObjectType  Type
	Counter     CounterKind
	Zone        ZoneID
	Axis        ExpeditionAxis
	Steps       []EffectStep // nested script for VerbQueueReaction

	Target     TargetSpec
	EachPlayer bool
	Optional   bool

	// CanBeModified gates the step-modifier pipeline; injected steps keep
	// this false to stop recursive modification.
	CanBeModified bool
}

// Effect is an ordered list of steps executed by the effect processor.
type Effect []EffectStep

// Clone returns a deep copy of the effect script.
func (e Effect) Clone() Effect {
	if e == nil {
		return nil
	}
	out := make(Effect, len(e))
	for i, step := range e {
		out[i] = step
		out[i].Steps = Effect(step.Steps).Clone()
	}
	return out
}
