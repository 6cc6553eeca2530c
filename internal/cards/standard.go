// Package cards ships a small built-in card pool used by the demo server
// and as a convenient source of legal decks.
package cards

import (
	"fmt"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
)

// Standard returns the built-in definitions. The pool is intentionally
// small; real pools come from external data through the registry interface.
func Standard() []*card.Definition {
	return []*card.Definition{
		{
			ID:      "CORE_H_SIERRA",
			Name:    "Sierra, Pathfinder",
			Type:    card.TypeHero,
			Faction: card.FactionAxiom,
			Rarity:  card.RarityCommon,
			Abilities: []*card.Ability{
				{
					ID:   "sierra-rally",
					Type: card.AbilityPassive,
					Text: "Allied Characters have +1 Forest.",
					Steps: card.Effect{
						{
							Verb:    card.VerbModifyStatistic,
							Amount:  1,
							Terrain: card.TerrainForest,
							Target: card.TargetSpec{
								Scope:   card.ScopeAllAllied,
								OfType:  card.TypeCharacter,
								HasType: true,
							},
						},
					},
				},
			},
		},
		{
			ID:      "CORE_H_KORO",
			Name:    "Koro, Tidecaller",
			Type:    card.TypeHero,
			Faction: card.FactionAxiom,
			Rarity:  card.RarityCommon,
			Abilities: []*card.Ability{
				{
					ID:      "koro-undertow",
					Type:    card.AbilityReaction,
					Text:    "At Noon, put a Boost counter on Koro.",
					Trigger: card.TriggerAtNoon,
					Steps: card.Effect{
						{
							Verb:    card.VerbAddCounters,
							Amount:  1,
							Counter: card.CounterBoost,
							Target:  card.TargetSpec{Scope: card.ScopeSelf},
						},
					},
				},
			},
		},
		{
			ID:         "CORE_C_SCOUT",
			Name:       "Forest Scout",
			Type:       card.TypeCharacter,
			Faction:    card.FactionAxiom,
			Rarity:     card.RarityCommon,
			HandCost:   "{1}",
			Statistics: card.Statistics{Forest: 1, Water: 1},
		},
		{
			ID:         "CORE_C_WARDEN",
			Name:       "Mountain Warden",
			Type:       card.TypeCharacter,
			Faction:    card.FactionAxiom,
			Rarity:     card.RarityCommon,
			HandCost:   "{2}",
			Statistics: card.Statistics{Mountain: 2, Water: 1},
			Keywords:   card.KeywordSet{card.KeywordTough: {}},
		},
		{
			ID:          "CORE_C_COLOSSUS",
			Name:        "Tidal Colossus",
			Type:        card.TypeCharacter,
			Faction:     card.FactionNeutral,
			Rarity:      card.RarityRare,
			HandCost:    "{4}",
			ReserveCost: "{5}",
			Statistics:  card.Statistics{Forest: 1, Mountain: 1, Water: 3},
			Keywords:    card.KeywordSet{card.KeywordEternal: {}},
		},
		{
			ID:         "CORE_C_HERALD",
			Name:       "Dawn Herald",
			Type:       card.TypeCharacter,
			Faction:    card.FactionAxiom,
			Rarity:     card.RarityCommon,
			HandCost:   "{3}",
			Statistics: card.Statistics{Forest: 2, Mountain: 1},
			Abilities: []*card.Ability{
				{
					ID:      "herald-greeting",
					Type:    card.AbilityReaction,
					Text:    "At Noon, put a Boost counter on Dawn Herald.",
					Trigger: card.TriggerAtNoon,
					Steps: card.Effect{
						{
							Verb:    card.VerbAddCounters,
							Amount:  1,
							Counter: card.CounterBoost,
							Target:  card.TargetSpec{Scope: card.ScopeSelf},
						},
					},
				},
			},
		},
		{
			ID:         "CORE_C_TRACKER",
			Name:       "Mire Tracker",
			Type:       card.TypeCharacter,
			Faction:    card.FactionAxiom,
			Rarity:     card.RarityCommon,
			HandCost:   "{1}",
			Statistics: card.Statistics{Forest: 1},
		},
		{
			ID:         "CORE_C_SENTINEL",
			Name:       "Stone Sentinel",
			Type:       card.TypeCharacter,
			Faction:    card.FactionNeutral,
			Rarity:     card.RarityCommon,
			HandCost:   "{3}",
			Statistics: card.Statistics{Mountain: 3},
			Keywords:   card.KeywordSet{card.KeywordTough: {}},
		},
		{
			ID:          "CORE_C_SKIFF",
			Name:        "River Skiff",
			Type:        card.TypeCharacter,
			Faction:     card.FactionNeutral,
			Rarity:      card.RarityCommon,
			HandCost:    "{2}",
			ReserveCost: "{3}",
			Statistics:  card.Statistics{Water: 2},
			Abilities: []*card.Ability{
				{
					ID:   "skiff-ferry",
					Type: card.AbilitySupport,
					Text: "From Reserve: draw a card.",
					Steps: card.Effect{
						{Verb: card.VerbDraw, Amount: 1, CanBeModified: true},
					},
				},
			},
		},
		{
			ID:         "CORE_C_CARTOGRAPHER",
			Name:       "Cartographer",
			Type:       card.TypeCharacter,
			Faction:    card.FactionAxiom,
			Rarity:     card.RarityCommon,
			HandCost:   "{2}",
			Statistics: card.Statistics{Forest: 1, Water: 1},
			Abilities: []*card.Ability{
				{
					ID:   "cartographer-survey",
					Type: card.AbilityQuickAction,
					Text: "Put a Boost counter on Cartographer.",
					Steps: card.Effect{
						{
							Verb:          card.VerbAddCounters,
							Amount:        1,
							Counter:       card.CounterBoost,
							Target:        card.TargetSpec{Scope: card.ScopeSelf},
							CanBeModified: true,
						},
					},
				},
			},
		},
		{
			ID:       "CORE_S_GUST",
			Name:     "Sudden Gust",
			Type:     card.TypeSpell,
			Faction:  card.FactionAxiom,
			Rarity:   card.RarityCommon,
			HandCost: "{1}",
			Targets: []card.TargetRequirement{
				{Name: "character", OfType: card.TypeCharacter, HasType: true},
			},
			Abilities: []*card.Ability{
				{
					ID:   "gust-effect",
					Type: card.AbilityEffectSource,
					Text: "Target Character falls Asleep.",
					Steps: card.Effect{
						{
							Verb:          card.VerbGrantStatus,
							Status:        card.StatusAsleep,
							Target:        card.TargetSpec{Scope: card.ScopeChosen},
							CanBeModified: true,
						},
					},
				},
			},
		},
		{
			ID:       "CORE_S_WIND",
			Name:     "Second Wind",
			Type:     card.TypeSpell,
			Faction:  card.FactionNeutral,
			Rarity:   card.RarityCommon,
			HandCost: "{2}",
			Keywords: card.KeywordSet{card.KeywordCooldown: {}},
			Abilities: []*card.Ability{
				{
					ID:   "wind-effect",
					Type: card.AbilityEffectSource,
					Text: "Draw 2 cards.",
					Steps: card.Effect{
						{Verb: card.VerbDraw, Amount: 2, CanBeModified: true},
					},
				},
			},
		},
		{
			ID:       "CORE_S_RALLY",
			Name:     "Rallying Call",
			Type:     card.TypeSpell,
			Faction:  card.FactionAxiom,
			Rarity:   card.RarityRare,
			HandCost: "{2}",
			Modes: []card.Mode{
				{
					Name: "Fortify",
					Steps: card.Effect{
						{
							Verb:    card.VerbAddCounters,
							Amount:  1,
							Counter: card.CounterBoost,
							Target: card.TargetSpec{
								Scope:   card.ScopeAllAllied,
								OfType:  card.TypeCharacter,
								HasType: true,
							},
							CanBeModified: true,
						},
					},
				},
				{
					Name: "March",
					Steps: card.Effect{
						{
							Verb:          card.VerbAdvanceExpedition,
							Amount:        1,
							Axis:          card.AxisHero,
							CanBeModified: true,
						},
					},
				},
			},
		},
		{
			ID:       "CORE_L_BEACON",
			Name:     "Beacon Tower",
			Type:     card.TypeLandmarkPermanent,
			Faction:  card.FactionNeutral,
			Rarity:   card.RarityCommon,
			HandCost: "{2}",
			Abilities: []*card.Ability{
				{
					ID:   "beacon-discount",
					Type: card.AbilityPassive,
					Text: "Spells cost {1} less to play.",
					CostModifiers: []card.CostModifier{
						{
							ID:     "beacon-discount",
							Kind:   card.CostDecrease,
							Amount: 1,
							AppliesTo: func(ctx card.CostContext) bool {
								return ctx.CardType == card.TypeSpell
							},
						},
					},
				},
			},
		},
		{
			ID:       "CORE_P_BANNER",
			Name:     "Expedition Banner",
			Type:     card.TypeExpeditionPermanent,
			Faction:  card.FactionNeutral,
			Rarity:   card.RarityCommon,
			HandCost: "{1}",
			Abilities: []*card.Ability{
				{
					ID:   "banner-inspire",
					Type: card.AbilityPassive,
					Text: "Allied Characters have +1 Mountain.",
					Steps: card.Effect{
						{
							Verb:    card.VerbModifyStatistic,
							Amount:  1,
							Terrain: card.TerrainMountain,
							Target: card.TargetSpec{
								Scope:   card.ScopeAllAllied,
								OfType:  card.TypeCharacter,
								HasType: true,
							},
						},
					},
				},
			},
		},
	}
}

// DemoDeck assembles a legal deck around the given hero from the built-in
// pool: three copies each of the non-Hero commons and rares until the deck
// size is reached.
func DemoDeck(heroID string) (card.Deck, error) {
	pool := Standard()
	byID := make(map[string]*card.Definition, len(pool))
	for _, def := range pool {
		byID[def.ID] = def
	}
	hero, ok := byID[heroID]
	if !ok || hero.Type != card.TypeHero {
		return card.Deck{}, fmt.Errorf("unknown hero %s", heroID)
	}

	deck := card.Deck{Hero: hero}
	for len(deck.Cards) < card.DeckSize {
		added := false
		for _, def := range pool {
			if def.Type == card.TypeHero {
				continue
			}
			if def.Faction != hero.Faction && def.Faction != card.FactionNeutral {
				continue
			}
			if countByName(deck.Cards, def.Name) >= card.MaxCopies {
				continue
			}
			deck.Cards = append(deck.Cards, def)
			added = true
			if len(deck.Cards) == card.DeckSize {
				break
			}
		}
		if !added {
			return card.Deck{}, fmt.Errorf("built-in pool too small for a %d-card deck", card.DeckSize)
		}
	}
	if err := deck.Validate(); err != nil {
		return card.Deck{}, err
	}
	return deck, nil
}

func countByName(defs []*card.Definition, name string) int {
	n := 0
	for _, def := range defs {
		if def.Name == name {
			n++
		}
	}
	return n
}
