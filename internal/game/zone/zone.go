// Package zone owns game-object identity, zone membership, and timestamp
// assignment. Each zone exclusively owns the objects it contains; a move is
// an atomic remove-from-A/insert-into-B, never a duplication.
package zone

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
)

// Visibility tags whether a zone's contents are public.
type Visibility int

const (
	Hidden Visibility = iota
	Visible
)

// Ref identifies a zone instance: a zone ID plus its owner. Shared zones
// (Expedition, Limbo) use an empty owner.
type Ref struct {
	ID    card.ZoneID
	Owner string
}

func (r Ref) String() string {
	if r.Owner == "" {
		return string(r.ID)
	}
	return fmt.Sprintf("%s/%s", r.ID, r.Owner)
}

// Shared builds a ref to a shared zone.
func Shared(id card.ZoneID) Ref {
	return Ref{ID: id}
}

// Of builds a ref to a player-scoped zone.
func Of(id card.ZoneID, owner string) Ref {
	return Ref{ID: id, Owner: owner}
}

// Zone is an ordered collection of objects with a visibility tag.
type Zone struct {
	ref        Ref
	visibility Visibility
	objects    []*card.GameObject
}

// Ref returns the zone's identity.
func (z *Zone) Ref() Ref { return z.ref }

// Visibility returns the zone's visibility tag.
func (z *Zone) Visibility() Visibility { return z.visibility }

// Len returns the number of objects in the zone.
func (z *Zone) Len() int { return len(z.objects) }

// Objects returns a copy of the zone's contents in order.
func (z *Zone) Objects() []*card.GameObject {
	out := make([]*card.GameObject, len(z.objects))
	copy(out, z.objects)
	return out
}

func (z *Zone) remove(id string) (*card.GameObject, bool) {
	for i, obj := range z.objects {
		if obj.ID == id {
			z.objects = append(z.objects[:i], z.objects[i+1:]...)
			return obj, true
		}
	}
	return nil, false
}

// Store is the arena of all live game objects plus the zone-tagged index.
type Store struct {
	mu            sync.Mutex
	objects       map[string]*card.GameObject
	zones         map[Ref]*Zone
	nextTimestamp uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		objects: make(map[string]*card.GameObject),
		zones:   make(map[Ref]*Zone),
	}
}

// AddZone registers a zone container. Adding the same ref twice keeps the
// existing zone.
func (s *Store) AddZone(ref Ref, visibility Visibility) *Zone {
	s.mu.Lock()
	defer s.mu.Unlock()
	if z, ok := s.zones[ref]; ok {
		return z
	}
	z := &Zone{ref: ref, visibility: visibility}
	s.zones[ref] = z
	return z
}

// Zone looks up a registered zone.
func (s *Store) Zone(ref Ref) (*Zone, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z, ok := s.zones[ref]
	return z, ok
}

// Object looks up a live object by ID.
func (s *Store) Object(id string) (*card.GameObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[id]
	return obj, ok
}

// Enter places a newly created object into a zone, assigning its timestamp.
func (s *Store) Enter(obj *card.GameObject, ref Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[obj.ID]; exists {
		return fmt.Errorf("object %s already tracked", obj.ID)
	}
	z, ok := s.zones[ref]
	if !ok {
		return fmt.Errorf("unknown zone %s", ref)
	}

	s.objects[obj.ID] = obj
	z.objects = append(z.objects, obj)
	s.tag(obj, ref)
	return nil
}

// Move atomically transfers an object between zones. The object gains a
// fresh timestamp on entry; it is never renumbered while it stays put.
func (s *Store) Move(objectID string, to Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[objectID]
	if !ok {
		return fmt.Errorf("unknown object %s", objectID)
	}
	from := Ref{ID: obj.Zone, Owner: obj.ZoneOwner}
	if from == to {
		return nil
	}
	dst, ok := s.zones[to]
	if !ok {
		return fmt.Errorf("unknown zone %s", to)
	}
	src, ok := s.zones[from]
	if !ok {
		return fmt.Errorf("object %s tagged with unknown zone %s", objectID, from)
	}
	if _, ok := src.remove(objectID); !ok {
		return fmt.Errorf("object %s missing from its tagged zone %s", objectID, from)
	}
	dst.objects = append(dst.objects, obj)
	s.tag(obj, to)
	return nil
}

// Destroy removes an object from its zone and from the arena entirely.
// Used for transient objects such as purged reaction emblems.
func (s *Store) Destroy(objectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[objectID]
	if !ok {
		return fmt.Errorf("unknown object %s", objectID)
	}
	from := Ref{ID: obj.Zone, Owner: obj.ZoneOwner}
	if src, ok := s.zones[from]; ok {
		src.remove(objectID)
	}
	delete(s.objects, objectID)
	return nil
}

// In returns the contents of a zone, in order. A missing zone yields nil.
func (s *Store) In(ref Ref) []*card.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	z, ok := s.zones[ref]
	if !ok {
		return nil
	}
	out := make([]*card.GameObject, len(z.objects))
	copy(out, z.objects)
	return out
}

// InAll returns the contents of every registered zone with the given ID,
// regardless of owner. Order follows ascending timestamp.
func (s *Store) InAll(id card.ZoneID) []*card.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*card.GameObject
	for ref, z := range s.zones {
		if ref.ID == id {
			out = append(out, z.objects...)
		}
	}
	sortByTimestamp(out)
	return out
}

// InPlay returns every object on the board: Expedition, Hero, and Landmark
// zones. Order follows ascending timestamp.
func (s *Store) InPlay() []*card.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*card.GameObject
	for ref, z := range s.zones {
		switch ref.ID {
		case card.ZoneExpedition, card.ZoneHero, card.ZoneLandmark:
			out = append(out, z.objects...)
		}
	}
	sortByTimestamp(out)
	return out
}

func (s *Store) tag(obj *card.GameObject, ref Ref) {
	s.nextTimestamp++
	obj.Timestamp = s.nextTimestamp
	obj.Zone = ref.ID
	obj.ZoneOwner = ref.Owner
}

func sortByTimestamp(objs []*card.GameObject) {
	sort.Slice(objs, func(i, j int) bool {
		return objs[i].Timestamp < objs[j].Timestamp
	})
}
