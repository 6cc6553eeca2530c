// Package game is the rule-adjudication core: an explicit context struct
// carrying all state, a four-stage card-play pipeline, the day-phase cycle,
// and the effect interpreter. Execution is single-threaded and cooperative;
// suspension happens only at decision-provider calls.
package game

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
	"github.com/alteredfree/altered-engine-go/internal/game/effects"
	"github.com/alteredfree/altered-engine-go/internal/game/rules"
	"github.com/alteredfree/altered-engine-go/internal/game/zone"
)

// Options configure a game.
type Options struct {
	// VictoryThreshold is the hero+companion position sum that ends the
	// game at Night's victory check.
	VictoryThreshold int
	// MorningDraw is how many cards each player draws during Morning.
	MorningDraw int
	// InitialHand is the opening hand size dealt during Setup.
	InitialHand int
	// ReserveLimit and LandmarkLimit default hero zone limits.
	ReserveLimit  int
	LandmarkLimit int
	// Seed drives deck shuffling; equal seeds replay identically.
	Seed int64
}

// DefaultOptions returns the standard ruleset parameters.
func DefaultOptions() Options {
	return Options{
		VictoryThreshold: 7,
		MorningDraw:      2,
		InitialHand:      6,
		ReserveLimit:     2,
		LandmarkLimit:    3,
	}
}

// Seat describes one player joining a game.
type Seat struct {
	PlayerID string
	Name     string
	Deck     card.Deck
}

// Game is the explicit game context: every operation receives its state
// through this struct, never through ambient globals.
type Game struct {
	logger   *zap.Logger
	opts     Options
	registry CardRegistry
	decider  DecisionProvider

	store       *zone.Store
	bus         *rules.EventBus
	phases      *rules.PhaseManager
	turns       *rules.TurnManager
	reactions   *rules.ReactionManager
	adjudicator *effects.Adjudicator

	players map[string]*Player
	order   []string // fixed seating order

	// firstPlayer rotates at each Morning's Succeed step.
	firstPlayer string

	ended          bool
	winner         string
	tiebreakerMode bool

	// currentCtx is the context of the in-flight engine operation; see
	// bindCtx. Single-threaded execution makes a plain field safe.
	currentCtx context.Context
}

// NewGame assembles a game from seats. Decks are instantiated into Deck
// zones (shuffled by the seed), heroes into Hero zones, and opening hands
// dealt. The game sits in Setup until Start is called.
func NewGame(opts Options, seats []Seat, registry CardRegistry, decider DecisionProvider, logger *zap.Logger) (*Game, error) {
	if len(seats) < 2 {
		return nil, fmt.Errorf("need at least two seats, got %d", len(seats))
	}
	if registry == nil {
		return nil, fmt.Errorf("nil card registry")
	}
	if decider == nil {
		return nil, fmt.Errorf("nil decision provider")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bus := rules.NewEventBus()
	g := &Game{
		logger:      logger,
		opts:        opts,
		registry:    registry,
		decider:     decider,
		store:       zone.NewStore(),
		bus:         bus,
		phases:      rules.NewPhaseManager(bus),
		reactions:   rules.NewReactionManager(bus),
		adjudicator: effects.NewAdjudicator(logger),
		players:     make(map[string]*Player),
	}

	g.store.AddZone(zone.Shared(card.ZoneExpedition), zone.Visible)
	g.store.AddZone(zone.Shared(card.ZoneLimbo), zone.Visible)

	rng := rand.New(rand.NewSource(opts.Seed))
	for _, seat := range seats {
		if _, dup := g.players[seat.PlayerID]; dup {
			return nil, fmt.Errorf("duplicate player id %s", seat.PlayerID)
		}
		p := &Player{
			ID:            seat.PlayerID,
			Name:          seat.Name,
			ReserveLimit:  opts.ReserveLimit,
			LandmarkLimit: opts.LandmarkLimit,
		}
		g.players[p.ID] = p
		g.order = append(g.order, p.ID)

		for _, id := range []card.ZoneID{card.ZoneDeck, card.ZoneHand, card.ZoneMana} {
			g.store.AddZone(zone.Of(id, p.ID), zone.Hidden)
		}
		for _, id := range []card.ZoneID{card.ZoneReserve, card.ZoneLandmark, card.ZoneDiscard, card.ZoneHero} {
			g.store.AddZone(zone.Of(id, p.ID), zone.Visible)
		}

		if err := g.dealSeat(seat, rng); err != nil {
			return nil, err
		}
	}

	g.firstPlayer = g.order[0]
	g.turns = rules.NewTurnManager(g.order, bus)
	g.registerPhaseHandlers()
	g.registerReactionTriggers()
	return g, nil
}

func (g *Game) dealSeat(seat Seat, rng *rand.Rand) error {
	if seat.Deck.Hero == nil {
		return fmt.Errorf("seat %s has no hero", seat.PlayerID)
	}
	hero := card.NewObject(seat.Deck.Hero, seat.PlayerID)
	if err := g.store.Enter(hero, zone.Of(card.ZoneHero, seat.PlayerID)); err != nil {
		return err
	}

	defs := append([]*card.Definition(nil), seat.Deck.Cards...)
	rng.Shuffle(len(defs), func(i, j int) { defs[i], defs[j] = defs[j], defs[i] })

	deckRef := zone.Of(card.ZoneDeck, seat.PlayerID)
	for _, def := range defs {
		obj := card.NewObject(def, seat.PlayerID)
		if err := g.store.Enter(obj, deckRef); err != nil {
			return err
		}
	}

	for i := 0; i < g.opts.InitialHand; i++ {
		if err := g.drawCard(seat.PlayerID); err != nil {
			return err
		}
	}
	return nil
}

// Start runs the day cycle from Setup through the first Afternoon. Day 1
// skips the Morning steps entirely.
func (g *Game) Start() error {
	if g.phases.Phase() != rules.PhaseSetup {
		return fmt.Errorf("game already started")
	}
	return g.phases.Advance()
}

// Phase returns the phase currently in progress.
func (g *Game) Phase() rules.DayPhase { return g.phases.Phase() }

// Day returns the current day number.
func (g *Game) Day() int { return g.phases.Day() }

// FirstPlayer returns the player holding initiative today.
func (g *Game) FirstPlayer() string { return g.firstPlayer }

// CurrentPlayer returns the player whose turn it is during Afternoon, or
// empty outside of it.
func (g *Game) CurrentPlayer() string {
	if !g.turns.Active() {
		return ""
	}
	return g.turns.CurrentPlayer()
}

// Ended reports whether the game has concluded.
func (g *Game) Ended() bool { return g.ended }

// Winner returns the winning player once the game has ended.
func (g *Game) Winner() string { return g.winner }

// TiebreakerMode reports whether the flagged alternate resolution state is
// active.
func (g *Game) TiebreakerMode() bool { return g.tiebreakerMode }

// Bus exposes the event bus for subscribers (UI, logging, triggers).
func (g *Game) Bus() *rules.EventBus { return g.bus }

// Player returns a player's engine state.
func (g *Game) Player(id string) (*Player, bool) {
	p, ok := g.players[id]
	return p, ok
}

// initiative returns all players starting from the first player, in seating
// order.
func (g *Game) initiative() []string {
	idx := 0
	for i, id := range g.order {
		if id == g.firstPlayer {
			idx = i
			break
		}
	}
	out := make([]string, 0, len(g.order))
	for i := 0; i < len(g.order); i++ {
		out = append(out, g.order[(idx+i)%len(g.order)])
	}
	return out
}

// nextInOrder returns the player seated after the given one.
func (g *Game) nextInOrder(playerID string) string {
	for i, id := range g.order {
		if id == playerID {
			return g.order[(i+1)%len(g.order)]
		}
	}
	return playerID
}

// opponentsOf returns every other player's ID in seating order.
func (g *Game) opponentsOf(playerID string) []string {
	var out []string
	for _, id := range g.order {
		if id != playerID {
			out = append(out, id)
		}
	}
	return out
}

// adjudicate re-derives current characteristics from passive abilities.
// Invoked after every state mutation that could change them.
func (g *Game) adjudicate() {
	g.adjudicator.Apply(g.store.InPlay())
}

// drainReactions resolves the Limbo reaction queue to empty, re-adjudicating
// between resolutions.
func (g *Game) drainReactions() error {
	return g.reactions.ResolveAll(g.initiative(), func() error {
		g.adjudicate()
		return nil
	})
}

// settle is the standard post-mutation pass: re-adjudicate, then drain
// reactions.
func (g *Game) settle() error {
	g.adjudicate()
	return g.drainReactions()
}

// drawCard moves the top deck card to hand. An empty deck draws nothing.
func (g *Game) drawCard(playerID string) error {
	deck := g.store.In(zone.Of(card.ZoneDeck, playerID))
	if len(deck) == 0 {
		return nil
	}
	top := deck[len(deck)-1]
	if err := g.store.Move(top.ID, zone.Of(card.ZoneHand, playerID)); err != nil {
		return err
	}
	g.bus.Publish(rules.NewEvent(rules.EventCardDrawn, playerID, top.ID))
	return nil
}

// object resolves an object ID or reports an integrity fault when the ID is
// tracked nowhere.
func (g *Game) object(id string) (*card.GameObject, error) {
	obj, ok := g.store.Object(id)
	if !ok {
		return nil, fmt.Errorf("unknown object %s", id)
	}
	return obj, nil
}

// definitionOf resolves an object's definition. A miss for a live object is
// a ruleset fault, not a player error.
func (g *Game) definitionOf(obj *card.GameObject) (*card.Definition, error) {
	if obj.DefinitionID == "" {
		return nil, integrityFault("object %s has no definition reference", obj.ID)
	}
	def, err := g.registry.GetCardDefinition(obj.DefinitionID)
	if err != nil {
		return nil, integrityFault("definition %s missing for live object %s: %v", obj.DefinitionID, obj.ID, err)
	}
	return def, nil
}
