package card

// CostModifierKind orders the arithmetic applied during cost computation.
type CostModifierKind int

const (
	CostIncrease CostModifierKind = iota
	CostDecrease
	CostSet
	CostMinimum
	CostMaximum
)

func (k CostModifierKind) String() string {
	switch k {
	case CostIncrease:
		return "INCREASE"
	case CostDecrease:
		return "DECREASE"
	case CostSet:
		return "SET"
	case CostMinimum:
		return "MINIMUM"
	case CostMaximum:
		return "MAXIMUM"
	}
	return "UNKNOWN"
}

// CostContext describes the play attempt a cost modifier is tested against.
type CostContext struct {
	CardName   string
	CardType   Type
	PlayerID   string
	OriginZone ZoneID
}

// CostModifier adjusts the computed cost of playing a card. Modifiers are
// derived from currently active passive abilities, never stored on state.
type CostModifier struct {
	ID     string
	Kind   CostModifierKind
	Amount int

	// AppliesTo filters play attempts; nil applies to all.
	AppliesTo func(CostContext) bool
}

// Applies reports whether the modifier covers the given play attempt.
func (m CostModifier) Applies(ctx CostContext) bool {
	return m.AppliesTo == nil || m.AppliesTo(ctx)
}

// StepModifierKind distinguishes how a modifier interacts with a step.
type StepModifierKind int

const (
	// ReplaceStep substitutes the original step entirely. Replacement is
	// exclusive: only the highest-priority replacement runs, and additive
	// modifiers are skipped.
	ReplaceStep StepModifierKind = iota
	// AddStepBefore injects steps ahead of the original.
	AddStepBefore
	// AddStepAfter injects steps after the original.
	AddStepAfter
)

func (k StepModifierKind) String() string {
	switch k {
	case ReplaceStep:
		return "REPLACE_STEP"
	case AddStepBefore:
		return "ADD_STEP_BEFORE"
	case AddStepAfter:
		return "ADD_STEP_AFTER"
	}
	return "UNKNOWN"
}

// StepModifier rewrites effect steps as they execute. Like cost modifiers,
// these are recomputed from active passives for every step.
type StepModifier struct {
	ID       string
	SourceID string
	Kind     StepModifierKind
	Priority int

	// Verb is the application criteria's verb match.
	Verb Verb
	// Condition is an optional extra criterion over the step being
	// executed; nil means any step with a matching verb.
	Condition func(EffectStep) bool

	// Steps are the injected (or replacing) steps. They keep
	// CanBeModified=false unless the content explicitly re-enables it.
	Steps Effect
}

// Matches reports whether the modifier's application criteria cover the step.
func (m StepModifier) Matches(step EffectStep) bool {
	if m.Verb != step.Verb {
		return false
	}
	return m.Condition == nil || m.Condition(step)
}
