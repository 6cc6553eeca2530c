package card

import "github.com/google/uuid"

// Characteristics is the bundle of values the rules read off an object.
// Base characteristics come from the definition; current characteristics are
// overwritten by every adjudication pass.
type Characteristics struct {
	Name       string
	Type       Type
	Faction    Faction
	Statistics Statistics
	Keywords   KeywordSet
}

// Clone returns an independent deep copy.
func (c Characteristics) Clone() Characteristics {
	cp := c
	cp.Keywords = c.Keywords.Clone()
	return cp
}

// GameObject is a live instance of a card in a visible zone. An object
// belongs to exactly one zone at any time; zone transfer is an exclusive
// hand-off performed by the object store.
type GameObject struct {
	ID           string
	DefinitionID string
	OwnerID      string
	ControllerID string

	// Timestamp is monotonic, assigned by the store on zone entry, and used
	// as the universal tie-breaker.
	Timestamp uint64

	Base    Characteristics
	Current Characteristics

	Statuses StatusSet
	Counters map[CounterKind]int

	Abilities []*Ability

	// Zone is maintained by the object store; it tags, it does not own.
	Zone      ZoneID
	ZoneOwner string

	FaceDown bool
	Axis     ExpeditionAxis
	HasAxis  bool

	// Emblem is set for reaction emblems staged in Limbo.
	Emblem *EmblemInfo
}

// EmblemInfo carries the bound effect and LKI snapshot of a reaction emblem.
type EmblemInfo struct {
	Steps  Effect
	Source LKISnapshot
}

// LKISnapshot freezes the relevant characteristics of a source object at
// emblem-creation time, independent of the live object's later mutation or
// removal.
type LKISnapshot struct {
	ObjectID     string
	ControllerID string
	Timestamp    uint64
	Chars        Characteristics
}

// SnapshotLKI captures last known information for the object.
func (o *GameObject) SnapshotLKI() LKISnapshot {
	return LKISnapshot{
		ObjectID:     o.ID,
		ControllerID: o.ControllerID,
		Timestamp:    o.Timestamp,
		Chars:        o.Current.Clone(),
	}
}

// NewObject instantiates a definition for the given owner. The caller places
// the object into a zone via the store, which assigns the timestamp.
func NewObject(def *Definition, ownerID string) *GameObject {
	base := def.BaseCharacteristics()
	obj := &GameObject{
		ID:           uuid.NewString(),
		DefinitionID: def.ID,
		OwnerID:      ownerID,
		ControllerID: ownerID,
		Base:         base,
		Current:      base.Clone(),
		Statuses:     make(StatusSet),
		Counters:     make(map[CounterKind]int),
	}
	for _, tmpl := range def.Abilities {
		ab := tmpl.Clone()
		if ab.ID == "" {
			ab.ID = uuid.NewString()
		}
		obj.Abilities = append(obj.Abilities, ab)
	}
	return obj
}

// NewEmblem creates a transient reaction emblem bound to an effect and an
// LKI snapshot of its source.
func NewEmblem(controllerID string, steps Effect, source LKISnapshot) *GameObject {
	chars := Characteristics{
		Name:     source.Chars.Name,
		Type:     TypeEmblem,
		Faction:  source.Chars.Faction,
		Keywords: make(KeywordSet),
	}
	return &GameObject{
		ID:           uuid.NewString(),
		OwnerID:      controllerID,
		ControllerID: controllerID,
		Base:         chars,
		Current:      chars.Clone(),
		Statuses:     make(StatusSet),
		Counters:     make(map[CounterKind]int),
		Emblem: &EmblemInfo{
			Steps:  steps.Clone(),
			Source: source,
		},
	}
}

// IsEmblem reports whether the object is a reaction emblem.
func (o *GameObject) IsEmblem() bool {
	return o.Emblem != nil
}

// HasStatus reports whether a status is present.
func (o *GameObject) HasStatus(st Status) bool {
	return o.Statuses.Has(st)
}

// AddCounters places counters on the object.
func (o *GameObject) AddCounters(kind CounterKind, n int) {
	if n <= 0 {
		return
	}
	o.Counters[kind] += n
}

// CounterCount returns the number of counters of a kind.
func (o *GameObject) CounterCount(kind CounterKind) int {
	return o.Counters[kind]
}

// BecomeManaOrb converts the object into a face-down, ready Mana Orb. The
// printed identity is retained on Base.Name for when the orb is revealed.
func (o *GameObject) BecomeManaOrb() {
	o.FaceDown = true
	o.Statuses.Remove(StatusExhausted)
	o.Base.Type = TypeManaOrb
	o.Current = o.Base.Clone()
	o.Abilities = nil
}

// ResetCurrent restores derived characteristics from base plus counter
// contributions. Every adjudication pass starts here.
func (o *GameObject) ResetCurrent() {
	o.Current = o.Base.Clone()
	if boosts := o.Counters[CounterBoost]; boosts > 0 {
		o.Current.Statistics = o.Current.Statistics.AddAll(boosts)
	}
}
