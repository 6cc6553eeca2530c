package card

import "fmt"

// TargetRequirement declares a target a card demands at play time.
type TargetRequirement struct {
	Name     string
	OfType   Type
	HasType  bool
	Opposing bool // target must be controlled by an opponent
	Optional bool
}

// Mode is one choice of a multi-modal card. A card with modes requires a
// mode selection at play time; its steps replace the definition's base
// effect for that play.
type Mode struct {
	Name  string
	Steps Effect
}

// Definition is the immutable template a game object instantiates. Many
// objects may reference one definition.
type Definition struct {
	ID      string
	Name    string
	Type    Type
	Faction Faction
	Rarity  Rarity

	HandCost    string // e.g. "{2}" or "{1}{F}"
	ReserveCost string

	Statistics Statistics
	Keywords   KeywordSet

	Targets []TargetRequirement
	Modes   []Mode

	// Abilities are templates; instantiation clones them onto the object.
	Abilities []*Ability
}

// Validate checks internal consistency of the template. A broken definition
// is a data fault, not a play-time condition.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("definition has no id")
	}
	if d.Name == "" {
		return fmt.Errorf("definition %s has no name", d.ID)
	}
	if _, ok := typeNames[d.Type]; !ok {
		return fmt.Errorf("definition %s has unknown type %d", d.ID, int(d.Type))
	}
	for i, m := range d.Modes {
		if len(m.Steps) == 0 {
			return fmt.Errorf("definition %s mode %d has no steps", d.ID, i)
		}
	}
	return nil
}

// BaseCharacteristics builds the characteristics a fresh object starts from.
func (d *Definition) BaseCharacteristics() Characteristics {
	keywords := d.Keywords
	if keywords == nil {
		keywords = make(KeywordSet)
	}
	return Characteristics{
		Name:       d.Name,
		Type:       d.Type,
		Faction:    d.Faction,
		Statistics: d.Statistics,
		Keywords:   keywords.Clone(),
	}
}

// EffectSteps returns the bound effect for a play, honoring a mode selection.
// Mode index -1 means no mode chosen.
func (d *Definition) EffectSteps(mode int) (Effect, error) {
	if len(d.Modes) > 0 {
		if mode < 0 || mode >= len(d.Modes) {
			return nil, fmt.Errorf("card %s requires a mode in [0,%d)", d.Name, len(d.Modes))
		}
		return d.Modes[mode].Steps.Clone(), nil
	}
	if mode >= 0 {
		return nil, fmt.Errorf("card %s has no modes", d.Name)
	}
	for _, ab := range d.Abilities {
		if ab.Type == AbilityEffectSource {
			return ab.Steps.Clone(), nil
		}
	}
	return nil, nil
}
