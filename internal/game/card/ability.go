package card

// AbilityType classifies how an ability is used.
type AbilityType int

const (
	// AbilityPassive continuously rewrites derived characteristics while its
	// source is in play.
	AbilityPassive AbilityType = iota
	// AbilityReaction queues an emblem into Limbo when its trigger fires.
	AbilityReaction
	// AbilityQuickAction is activated during the Afternoon without ending
	// the acting player's turn.
	AbilityQuickAction
	// AbilitySupport is usable while its source sits in Reserve.
	AbilitySupport
	// AbilityEffectSource carries the bound effect of a Spell.
	AbilityEffectSource
)

func (t AbilityType) String() string {
	switch t {
	case AbilityPassive:
		return "PASSIVE"
	case AbilityReaction:
		return "REACTION"
	case AbilityQuickAction:
		return "QUICK_ACTION"
	case AbilitySupport:
		return "SUPPORT"
	case AbilityEffectSource:
		return "EFFECT_SOURCE"
	}
	return "UNKNOWN"
}

// Trigger names the state change a Reaction ability listens for.
type Trigger string

const (
	TriggerNone          Trigger = ""
	TriggerAtNoon        Trigger = "AT_NOON"
	TriggerCardPlayed    Trigger = "CARD_PLAYED"
	TriggerTurnAdvanced  Trigger = "TURN_ADVANCED"
	TriggerDayAdvanced   Trigger = "DAY_ADVANCED"
	TriggerCardDrawn     Trigger = "CARD_DRAWN"
	TriggerManaExpanded  Trigger = "MANA_EXPANDED"
	TriggerExpeditionWon Trigger = "EXPEDITION_PROGRESSED"
)

// CharacteristicKey names a characteristic an ability's condition or effect
// text reads. Used by the adjudicator's dependency relation.
type CharacteristicKey int

const (
	ReadsStatistics CharacteristicKey = iota
	ReadsKeywords
	ReadsType
)

// Ability is an instantiated ability bound to a game object.
type Ability struct {
	ID   string
	Type AbilityType
	Text string

	// Trigger applies to Reaction abilities only.
	Trigger Trigger

	// Condition gates the ability. It is evaluated against the live board
	// each time the ability is considered; nil means unconditional.
	Condition func(source *GameObject, board []*GameObject) bool

	// Reads declares which characteristics the condition or effect text
	// depends on, driving passive dependency ordering.
	Reads []CharacteristicKey

	// Steps is the ability's effect script.
	Steps Effect

	// Passive abilities may additionally derive modifiers instead of (or
	// alongside) direct characteristic steps.
	CostModifiers []CostModifier
	StepModifiers []StepModifier
}

// ReadsKey reports whether the ability declares a read of the given key.
func (a *Ability) ReadsKey(key CharacteristicKey) bool {
	for _, k := range a.Reads {
		if k == key {
			return true
		}
	}
	return false
}

// Clone returns a deep copy; Condition funcs are shared, never mutated.
func (a *Ability) Clone() *Ability {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Steps = a.Steps.Clone()
	cp.Reads = append([]CharacteristicKey(nil), a.Reads...)
	cp.CostModifiers = append([]CostModifier(nil), a.CostModifiers...)
	cp.StepModifiers = append([]StepModifier(nil), a.StepModifiers...)
	return &cp
}
