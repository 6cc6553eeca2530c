package zone

import (
	"testing"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
)

func testObject(id string, owner string) *card.GameObject {
	def := &card.Definition{ID: "def-" + id, Name: id, Type: card.TypeCharacter}
	obj := card.NewObject(def, owner)
	obj.ID = id
	return obj
}

func newTestStore() *Store {
	s := NewStore()
	s.AddZone(Shared(card.ZoneExpedition), Visible)
	s.AddZone(Shared(card.ZoneLimbo), Visible)
	s.AddZone(Of(card.ZoneHand, "p1"), Hidden)
	s.AddZone(Of(card.ZoneReserve, "p1"), Visible)
	s.AddZone(Of(card.ZoneHand, "p2"), Hidden)
	return s
}

func TestMoveIsExclusive(t *testing.T) {
	s := newTestStore()
	obj := testObject("c1", "p1")
	if err := s.Enter(obj, Of(card.ZoneHand, "p1")); err != nil {
		t.Fatalf("enter: %v", err)
	}

	if err := s.Move("c1", Shared(card.ZoneExpedition)); err != nil {
		t.Fatalf("move: %v", err)
	}

	if n := len(s.In(Of(card.ZoneHand, "p1"))); n != 0 {
		t.Errorf("hand still holds %d objects after move", n)
	}
	exp := s.In(Shared(card.ZoneExpedition))
	if len(exp) != 1 || exp[0].ID != "c1" {
		t.Errorf("expedition = %v, want [c1]", exp)
	}
	if obj.Zone != card.ZoneExpedition || obj.ZoneOwner != "" {
		t.Errorf("object tagged %s/%s, want expedition/shared", obj.Zone, obj.ZoneOwner)
	}
}

func TestTimestampsAreMonotonic(t *testing.T) {
	s := newTestStore()
	a := testObject("a", "p1")
	b := testObject("b", "p1")
	s.Enter(a, Of(card.ZoneHand, "p1"))
	s.Enter(b, Of(card.ZoneHand, "p1"))

	if a.Timestamp >= b.Timestamp {
		t.Fatalf("entry timestamps not increasing: %d then %d", a.Timestamp, b.Timestamp)
	}

	first := a.Timestamp
	if err := s.Move("a", Shared(card.ZoneExpedition)); err != nil {
		t.Fatalf("move: %v", err)
	}
	if a.Timestamp <= b.Timestamp {
		t.Errorf("moved object should carry the freshest timestamp, got %d <= %d", a.Timestamp, b.Timestamp)
	}
	if a.Timestamp == first {
		t.Errorf("timestamp not renumbered on zone entry")
	}

	// An object that stays put is never renumbered.
	stable := b.Timestamp
	s.Move("a", Of(card.ZoneReserve, "p1"))
	if b.Timestamp != stable {
		t.Errorf("unmoved object renumbered: %d -> %d", stable, b.Timestamp)
	}
}

func TestMoveToSameZoneIsNoop(t *testing.T) {
	s := newTestStore()
	a := testObject("a", "p1")
	s.Enter(a, Of(card.ZoneHand, "p1"))
	ts := a.Timestamp

	if err := s.Move("a", Of(card.ZoneHand, "p1")); err != nil {
		t.Fatalf("move: %v", err)
	}
	if a.Timestamp != ts {
		t.Errorf("no-op move renumbered the object")
	}
}

func TestInPlaySortsByTimestamp(t *testing.T) {
	s := newTestStore()
	s.AddZone(Of(card.ZoneHero, "p1"), Visible)
	s.AddZone(Of(card.ZoneLandmark, "p1"), Visible)

	hero := testObject("hero", "p1")
	early := testObject("early", "p1")
	late := testObject("late", "p1")
	s.Enter(hero, Of(card.ZoneHero, "p1"))
	s.Enter(early, Shared(card.ZoneExpedition))
	s.Enter(late, Of(card.ZoneLandmark, "p1"))

	inPlay := s.InPlay()
	if len(inPlay) != 3 {
		t.Fatalf("in play = %d objects, want 3", len(inPlay))
	}
	for i := 1; i < len(inPlay); i++ {
		if inPlay[i-1].Timestamp > inPlay[i].Timestamp {
			t.Fatalf("in-play order not ascending by timestamp")
		}
	}
}

func TestDestroyRemovesIdentity(t *testing.T) {
	s := newTestStore()
	a := testObject("a", "p1")
	s.Enter(a, Shared(card.ZoneLimbo))

	if err := s.Destroy("a"); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if _, ok := s.Object("a"); ok {
		t.Errorf("destroyed object still tracked")
	}
	if n := len(s.In(Shared(card.ZoneLimbo))); n != 0 {
		t.Errorf("limbo still holds %d objects", n)
	}
}

func TestMoveUnknownObject(t *testing.T) {
	s := newTestStore()
	if err := s.Move("ghost", Shared(card.ZoneExpedition)); err == nil {
		t.Fatal("expected error moving unknown object")
	}
}
