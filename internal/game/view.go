package game

import (
	"sort"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
	"github.com/alteredfree/altered-engine-go/internal/game/zone"
)

// ObjectView is a serializable snapshot of one visible game object.
type ObjectView struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Type       string                   `json:"type"`
	Faction    card.Faction             `json:"faction,omitempty"`
	Statistics card.Statistics          `json:"statistics"`
	Keywords   []card.Keyword           `json:"keywords,omitempty"`
	Statuses   []card.Status            `json:"statuses,omitempty"`
	Axis       string                   `json:"axis,omitempty"`
	Counters   map[card.CounterKind]int `json:"counters,omitempty"`
	FaceDown   bool                     `json:"faceDown,omitempty"`
	Timestamp  uint64                   `json:"timestamp"`
}

// PlayerView is one player's public state plus, for the viewer's own seat,
// the contents of their hand.
type PlayerView struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	HandCount int          `json:"handCount"`
	Hand      []ObjectView `json:"hand,omitempty"`
	DeckCount int          `json:"deckCount"`

	ManaReady int `json:"manaReady"`
	ManaTotal int `json:"manaTotal"`

	Hero     []ObjectView `json:"hero"`
	Reserve  []ObjectView `json:"reserve"`
	Landmark []ObjectView `json:"landmark"`
	Discard  []ObjectView `json:"discard"`

	HeroPosition      int  `json:"heroPosition"`
	CompanionPosition int  `json:"companionPosition"`
	HasPassedTurn     bool `json:"hasPassedTurn"`
}

// GameView is a redacted snapshot of the whole game from one player's
// perspective. Hidden zones surface as counts only, except the viewer's own
// hand.
type GameView struct {
	ViewerID       string `json:"viewerId"`
	Day            int    `json:"day"`
	Phase          string `json:"phase"`
	FirstPlayer    string `json:"firstPlayer"`
	CurrentPlayer  string `json:"currentPlayer,omitempty"`
	Ended          bool   `json:"ended"`
	Winner         string `json:"winner,omitempty"`
	TiebreakerMode bool   `json:"tiebreakerMode,omitempty"`

	Players    []PlayerView `json:"players"`
	Expedition []ObjectView `json:"expedition"`
	Limbo      []ObjectView `json:"limbo"`
}

// View builds the redacted snapshot for a viewer. An unknown viewer gets the
// spectator view: all hidden zones as counts.
func (g *Game) View(viewerID string) GameView {
	view := GameView{
		ViewerID:       viewerID,
		Day:            g.Day(),
		Phase:          g.Phase().String(),
		FirstPlayer:    g.firstPlayer,
		CurrentPlayer:  g.CurrentPlayer(),
		Ended:          g.ended,
		Winner:         g.winner,
		TiebreakerMode: g.tiebreakerMode,
		Expedition:     viewObjects(g.store.In(zone.Shared(card.ZoneExpedition))),
		Limbo:          viewObjects(g.store.In(zone.Shared(card.ZoneLimbo))),
	}

	for _, pid := range g.order {
		p := g.players[pid]
		pv := PlayerView{
			ID:                p.ID,
			Name:              p.Name,
			HandCount:         len(g.store.In(zone.Of(card.ZoneHand, pid))),
			DeckCount:         len(g.store.In(zone.Of(card.ZoneDeck, pid))),
			Hero:              viewObjects(g.store.In(zone.Of(card.ZoneHero, pid))),
			Reserve:           viewObjects(g.store.In(zone.Of(card.ZoneReserve, pid))),
			Landmark:          viewObjects(g.store.In(zone.Of(card.ZoneLandmark, pid))),
			Discard:           viewObjects(g.store.In(zone.Of(card.ZoneDiscard, pid))),
			HeroPosition:      p.HeroPosition,
			CompanionPosition: p.CompanionPosition,
			HasPassedTurn:     p.HasPassedTurn,
		}
		for _, orb := range g.store.In(zone.Of(card.ZoneMana, pid)) {
			pv.ManaTotal++
			if !orb.HasStatus(card.StatusExhausted) {
				pv.ManaReady++
			}
		}
		if pid == viewerID {
			pv.Hand = viewObjects(g.store.In(zone.Of(card.ZoneHand, pid)))
		}
		view.Players = append(view.Players, pv)
	}
	return view
}

func viewObjects(objs []*card.GameObject) []ObjectView {
	out := make([]ObjectView, 0, len(objs))
	for _, obj := range objs {
		out = append(out, viewObject(obj))
	}
	return out
}

func viewObject(obj *card.GameObject) ObjectView {
	ov := ObjectView{
		ID:         obj.ID,
		Name:       obj.Current.Name,
		Type:       obj.Current.Type.String(),
		Faction:    obj.Current.Faction,
		Statistics: obj.Current.Statistics,
		FaceDown:   obj.FaceDown,
		Timestamp:  obj.Timestamp,
	}
	if obj.FaceDown {
		// A face-down object reveals nothing beyond its presence.
		ov.Name = ""
		ov.Type = ""
		ov.Faction = ""
		ov.Statistics = card.Statistics{}
	}
	for kw := range obj.Current.Keywords {
		ov.Keywords = append(ov.Keywords, kw)
	}
	sort.Slice(ov.Keywords, func(i, j int) bool { return ov.Keywords[i] < ov.Keywords[j] })
	for st := range obj.Statuses {
		ov.Statuses = append(ov.Statuses, st)
	}
	sort.Slice(ov.Statuses, func(i, j int) bool { return ov.Statuses[i] < ov.Statuses[j] })
	if obj.HasAxis {
		ov.Axis = obj.Axis.String()
	}
	if len(obj.Counters) > 0 {
		ov.Counters = make(map[card.CounterKind]int, len(obj.Counters))
		for k, v := range obj.Counters {
			ov.Counters[k] = v
		}
	}
	return ov
}
