package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
	"github.com/alteredfree/altered-engine-go/internal/game/rules"
	"github.com/alteredfree/altered-engine-go/internal/game/zone"
)

// installStepModifiers puts a landmark carrying the modifiers into p1's
// play area so the per-step pipeline picks them up.
func installStepModifiers(t *testing.T, g *Game, mods ...card.StepModifier) {
	t.Helper()
	def := &card.Definition{
		ID:   "REWRITER",
		Name: "Rewriter",
		Type: card.TypeLandmarkPermanent,
		Abilities: []*card.Ability{{
			ID:            "rw",
			Type:          card.AbilityPassive,
			StepModifiers: mods,
		}},
	}
	obj := card.NewObject(def, "p1")
	require.NoError(t, g.store.Enter(obj, zone.Of(card.ZoneLandmark, "p1")))
}

func heroContext(t *testing.T, g *Game, playerID string) effectContext {
	t.Helper()
	heroes := g.store.In(zone.Of(card.ZoneHero, playerID))
	require.Len(t, heroes, 1)
	return effectContext{controller: playerID, source: heroes[0].SnapshotLKI()}
}

// promptRecorder confirms every optional step and remembers the prompts in
// the order they were asked.
type promptRecorder struct {
	AutoDecider
	prompts []string
}

func (d *promptRecorder) ConfirmOptional(_ context.Context, _ string, prompt string) (bool, error) {
	d.prompts = append(d.prompts, prompt)
	return true, nil
}

func TestReplaceStepIsExclusive(t *testing.T) {
	filler := characterFixture("FILLER", "{1}", card.Statistics{Forest: 1})
	g := fixtureGame(t, testOptions(), &AutoDecider{SkipExpand: true}, copies(filler, 10), copies(filler, 10))

	installStepModifiers(t, g,
		card.StepModifier{ID: "weak", Kind: card.ReplaceStep, Priority: 1, Verb: card.VerbDraw,
			Steps: card.Effect{{Verb: card.VerbDraw, Amount: 2}}},
		card.StepModifier{ID: "strong", Kind: card.ReplaceStep, Priority: 5, Verb: card.VerbDraw,
			Steps: card.Effect{{Verb: card.VerbDraw, Amount: 3}}},
		card.StepModifier{ID: "extra", Kind: card.AddStepBefore, Priority: 0, Verb: card.VerbDraw,
			Steps: card.Effect{{Verb: card.VerbDraw, Amount: 10}}},
	)

	before := len(handOf(g, "p1"))
	err := g.executeEffect(context.Background(), heroContext(t, g, "p1"),
		card.Effect{{Verb: card.VerbDraw, Amount: 1, CanBeModified: true}})
	require.NoError(t, err)

	// Only the highest-priority replacement runs; the original draw and
	// every additive modifier are discarded.
	assert.Equal(t, before+3, len(handOf(g, "p1")))
}

func TestStepModifierInjectionOrder(t *testing.T) {
	filler := characterFixture("FILLER", "{1}", card.Statistics{Forest: 1})
	recorder := &promptRecorder{AutoDecider: AutoDecider{SkipExpand: true}}
	g := fixtureGame(t, testOptions(), recorder, copies(filler, 10), copies(filler, 10))

	installStepModifiers(t, g,
		card.StepModifier{ID: "after", Kind: card.AddStepAfter, Priority: 2, Verb: card.VerbDraw,
			Steps: card.Effect{{Verb: card.VerbRemoveStatus, Status: card.StatusAsleep, Optional: true,
				Target: card.TargetSpec{Scope: card.ScopeSelf}}}},
		card.StepModifier{ID: "before", Kind: card.AddStepBefore, Priority: 1, Verb: card.VerbDraw,
			Steps: card.Effect{{Verb: card.VerbGrantStatus, Status: card.StatusAsleep, Optional: true,
				Target: card.TargetSpec{Scope: card.ScopeSelf}}}},
	)

	err := g.executeEffect(context.Background(), heroContext(t, g, "p1"),
		card.Effect{{Verb: card.VerbDraw, Amount: 1, Optional: true, CanBeModified: true}})
	require.NoError(t, err)

	require.Len(t, recorder.prompts, 3)
	assert.Contains(t, recorder.prompts[0], card.VerbGrantStatus.String())
	assert.Contains(t, recorder.prompts[1], card.VerbDraw.String())
	assert.Contains(t, recorder.prompts[2], card.VerbRemoveStatus.String())
}

func TestInjectedStepsRecurseThroughPipeline(t *testing.T) {
	filler := characterFixture("FILLER", "{1}", card.Statistics{Forest: 1})
	g := fixtureGame(t, testOptions(), &AutoDecider{SkipExpand: true}, copies(filler, 10), copies(filler, 10))

	installStepModifiers(t, g,
		card.StepModifier{ID: "inject", Kind: card.AddStepBefore, Priority: 1, Verb: card.VerbGrantStatus,
			Steps: card.Effect{{Verb: card.VerbDraw, Amount: 1, CanBeModified: true}}},
		card.StepModifier{ID: "double", Kind: card.ReplaceStep, Priority: 1, Verb: card.VerbDraw,
			Steps: card.Effect{{Verb: card.VerbDraw, Amount: 2}}},
	)

	before := len(handOf(g, "p1"))
	err := g.executeEffect(context.Background(), heroContext(t, g, "p1"),
		card.Effect{{Verb: card.VerbGrantStatus, Status: card.StatusAsleep, CanBeModified: true,
			Target: card.TargetSpec{Scope: card.ScopeSelf}}})
	require.NoError(t, err)

	// The injected modifiable draw is itself replaced by the doubler.
	assert.Equal(t, before+2, len(handOf(g, "p1")))
	hero := g.store.In(zone.Of(card.ZoneHero, "p1"))[0]
	assert.True(t, hero.HasStatus(card.StatusAsleep))
}

func TestInjectedStepsDefaultNonModifiable(t *testing.T) {
	filler := characterFixture("FILLER", "{1}", card.Statistics{Forest: 1})
	g := fixtureGame(t, testOptions(), &AutoDecider{SkipExpand: true}, copies(filler, 10), copies(filler, 10))

	installStepModifiers(t, g,
		card.StepModifier{ID: "inject", Kind: card.AddStepBefore, Priority: 1, Verb: card.VerbGrantStatus,
			Steps: card.Effect{{Verb: card.VerbDraw, Amount: 1}}},
		card.StepModifier{ID: "double", Kind: card.ReplaceStep, Priority: 1, Verb: card.VerbDraw,
			Steps: card.Effect{{Verb: card.VerbDraw, Amount: 2}}},
	)

	before := len(handOf(g, "p1"))
	err := g.executeEffect(context.Background(), heroContext(t, g, "p1"),
		card.Effect{{Verb: card.VerbGrantStatus, Status: card.StatusAsleep, CanBeModified: true,
			Target: card.TargetSpec{Scope: card.ScopeSelf}}})
	require.NoError(t, err)

	// The injected draw stays non-modifiable, so the doubler never fires.
	assert.Equal(t, before+1, len(handOf(g, "p1")))
}

func TestEachPlayerStepSettlesBetweenPlayers(t *testing.T) {
	watcher := &card.Definition{
		ID: "WATCHER", Name: "Watcher", Type: card.TypeCharacter, Faction: card.FactionAxiom,
		HandCost:   "{1}",
		Statistics: card.Statistics{Forest: 1},
		Abilities: []*card.Ability{{
			ID:      "echo",
			Type:    card.AbilityReaction,
			Trigger: card.TriggerCardDrawn,
			Steps: card.Effect{{
				Verb:    card.VerbAddCounters,
				Amount:  1,
				Counter: card.CounterBoost,
				Target:  card.TargetSpec{Scope: card.ScopeSelf},
			}},
		}},
	}
	filler := characterFixture("FILLER", "{1}", card.Statistics{Forest: 1})
	g := fixtureGame(t, testOptions(), &AutoDecider{SkipExpand: true}, copies(filler, 10), copies(filler, 10))

	deployCharacter(t, g, watcher, "p1", card.AxisHero)

	var trace []string
	g.Bus().Subscribe(func(evt rules.Event) {
		switch evt.Type {
		case rules.EventCardDrawn:
			trace = append(trace, "drawn:"+evt.PlayerID)
		case rules.EventReactionPlayed:
			trace = append(trace, "reaction:"+evt.PlayerID)
		}
	})

	err := g.executeEffect(context.Background(), heroContext(t, g, "p1"),
		card.Effect{{Verb: card.VerbDraw, Amount: 1, EachPlayer: true}})
	require.NoError(t, err)

	// Players draw in initiative order, and the reaction queued by each
	// draw resolves before the next player's sub-resolution.
	assert.Equal(t, []string{"drawn:p1", "reaction:p1", "drawn:p2", "reaction:p1"}, trace)
}
