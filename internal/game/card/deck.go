package card

import "fmt"

// Deck building limits. The engine never validates decks during play; this
// helper exists for lobby layers and as a fixture check in engine tests.
const (
	DeckSize  = 39 // non-hero cards
	MaxCopies = 3  // per card name
	MaxRares  = 15
)

// Deck is a hero plus its card list.
type Deck struct {
	Hero  *Definition
	Cards []*Definition
}

// Validate checks legality of a constructed deck: exactly one hero, 39
// non-hero cards of the hero's faction or Neutral, at most 3 copies by name,
// and at most 15 rares.
func (d *Deck) Validate() error {
	if d.Hero == nil {
		return fmt.Errorf("deck has no hero")
	}
	if d.Hero.Type != TypeHero {
		return fmt.Errorf("%s is not a hero", d.Hero.Name)
	}
	if len(d.Cards) != DeckSize {
		return fmt.Errorf("deck has %d cards, want %d", len(d.Cards), DeckSize)
	}

	copies := make(map[string]int)
	rares := 0
	for _, def := range d.Cards {
		if def.Type == TypeHero {
			return fmt.Errorf("deck contains a second hero: %s", def.Name)
		}
		if def.Faction != d.Hero.Faction && def.Faction != FactionNeutral {
			return fmt.Errorf("%s (%s) is outside hero faction %s", def.Name, def.Faction, d.Hero.Faction)
		}
		copies[def.Name]++
		if copies[def.Name] > MaxCopies {
			return fmt.Errorf("more than %d copies of %s", MaxCopies, def.Name)
		}
		if def.Rarity == RarityRare {
			rares++
		}
	}
	if rares > MaxRares {
		return fmt.Errorf("deck has %d rares, limit is %d", rares, MaxRares)
	}
	return nil
}
