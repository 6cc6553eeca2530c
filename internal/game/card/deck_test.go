package card

import (
	"fmt"
	"strings"
	"testing"
)

func axiomHero() *Definition {
	return &Definition{ID: "hero", Name: "Test Hero", Type: TypeHero, Faction: FactionAxiom}
}

// legalDeck builds an Axiom hero plus 39 Axiom/Neutral cards: 13 names at 3
// copies each, 5 rare names (15 rares total).
func legalDeck() Deck {
	deck := Deck{Hero: axiomHero()}
	for name := 0; name < 13; name++ {
		faction := FactionAxiom
		if name%2 == 0 {
			faction = FactionNeutral
		}
		rarity := RarityCommon
		if name < 5 {
			rarity = RarityRare
		}
		for n := 0; n < MaxCopies; n++ {
			deck.Cards = append(deck.Cards, &Definition{
				ID:      fmt.Sprintf("c%d-%d", name, n),
				Name:    fmt.Sprintf("Card %d", name),
				Type:    TypeCharacter,
				Faction: faction,
				Rarity:  rarity,
			})
		}
	}
	return deck
}

func TestDeckValidateLegal(t *testing.T) {
	deck := legalDeck()
	if err := deck.Validate(); err != nil {
		t.Fatalf("legal deck rejected: %v", err)
	}
}

func TestDeckValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Deck)
		wantErr string
	}{
		{
			name:    "no hero",
			mutate:  func(d *Deck) { d.Hero = nil },
			wantErr: "no hero",
		},
		{
			name:    "hero slot holds a character",
			mutate:  func(d *Deck) { d.Hero.Type = TypeCharacter },
			wantErr: "not a hero",
		},
		{
			name:    "wrong size",
			mutate:  func(d *Deck) { d.Cards = d.Cards[:len(d.Cards)-1] },
			wantErr: "want 39",
		},
		{
			name: "second hero",
			mutate: func(d *Deck) {
				d.Cards[0] = &Definition{ID: "x", Name: "Impostor", Type: TypeHero, Faction: FactionAxiom}
			},
			wantErr: "second hero",
		},
		{
			name: "off-faction card",
			mutate: func(d *Deck) {
				d.Cards[0] = &Definition{ID: "x", Name: "Outsider", Type: TypeCharacter, Faction: FactionYzmir}
			},
			wantErr: "outside hero faction",
		},
		{
			name: "four copies by name",
			mutate: func(d *Deck) {
				d.Cards[0] = &Definition{ID: "x", Name: "Card 12", Type: TypeCharacter, Faction: FactionAxiom}
			},
			wantErr: "copies",
		},
		{
			name: "sixteen rares",
			mutate: func(d *Deck) {
				// Card 5 is a common name; promote its copies' first slot.
				for i, def := range d.Cards {
					if def.Name == "Card 5" {
						cp := *def
						cp.Rarity = RarityRare
						d.Cards[i] = &cp
						return
					}
				}
			},
			wantErr: "rares",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := legalDeck()
			tt.mutate(&deck)
			err := deck.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
