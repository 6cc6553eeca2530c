package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
)

func TestStandardPoolIsWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range Standard() {
		require.NoError(t, def.Validate(), "definition %s", def.ID)
		assert.False(t, seen[def.ID], "duplicate id %s", def.ID)
		seen[def.ID] = true
	}
}

func TestDemoDeckIsLegal(t *testing.T) {
	for _, heroID := range []string{"CORE_H_SIERRA", "CORE_H_KORO"} {
		deck, err := DemoDeck(heroID)
		require.NoError(t, err, "hero %s", heroID)
		require.NoError(t, deck.Validate())
		assert.Equal(t, heroID, deck.Hero.ID)
		assert.Len(t, deck.Cards, card.DeckSize)
	}
}

func TestDemoDeckRejectsNonHeroes(t *testing.T) {
	_, err := DemoDeck("CORE_C_SCOUT")
	assert.Error(t, err)

	_, err = DemoDeck("NO_SUCH_CARD")
	assert.Error(t, err)
}
