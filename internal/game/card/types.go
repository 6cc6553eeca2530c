package card

import "fmt"

// Terrain is one of the three typed mana categories contributed by in-play
// Characters' statistics.
type Terrain int

const (
	TerrainForest Terrain = iota
	TerrainMountain
	TerrainWater
)

// Terrains lists every terrain in canonical order.
var Terrains = []Terrain{TerrainForest, TerrainMountain, TerrainWater}

var terrainNames = map[Terrain]string{
	TerrainForest:   "FOREST",
	TerrainMountain: "MOUNTAIN",
	TerrainWater:    "WATER",
}

func (t Terrain) String() string {
	if name, ok := terrainNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TERRAIN_%d", int(t))
}

// Statistics holds the terrain-typed statistics of a card.
type Statistics struct {
	Forest   int
	Mountain int
	Water    int
}

// Get returns the statistic for a single terrain.
func (s Statistics) Get(t Terrain) int {
	switch t {
	case TerrainForest:
		return s.Forest
	case TerrainMountain:
		return s.Mountain
	case TerrainWater:
		return s.Water
	}
	return 0
}

// Add returns a copy with delta added to the given terrain.
func (s Statistics) Add(t Terrain, delta int) Statistics {
	switch t {
	case TerrainForest:
		s.Forest += delta
	case TerrainMountain:
		s.Mountain += delta
	case TerrainWater:
		s.Water += delta
	}
	return s
}

// AddAll returns a copy with delta added to every terrain.
func (s Statistics) AddAll(delta int) Statistics {
	s.Forest += delta
	s.Mountain += delta
	s.Water += delta
	return s
}

// Total returns the sum across all terrains.
func (s Statistics) Total() int {
	return s.Forest + s.Mountain + s.Water
}

// Type classifies a card or game object.
type Type int

const (
	TypeHero Type = iota
	TypeCharacter
	TypeSpell
	TypeLandmarkPermanent
	TypeExpeditionPermanent
	TypeManaOrb
	TypeEmblem
)

var typeNames = map[Type]string{
	TypeHero:                "HERO",
	TypeCharacter:           "CHARACTER",
	TypeSpell:               "SPELL",
	TypeLandmarkPermanent:   "LANDMARK_PERMANENT",
	TypeExpeditionPermanent: "EXPEDITION_PERMANENT",
	TypeManaOrb:             "MANA_ORB",
	TypeEmblem:              "EMBLEM",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TYPE_%d", int(t))
}

// IsPermanentOnBoard reports whether objects of this type persist on the board
// after resolving.
func (t Type) IsPermanentOnBoard() bool {
	switch t {
	case TypeCharacter, TypeLandmarkPermanent, TypeExpeditionPermanent, TypeHero:
		return true
	}
	return false
}

// Faction identifies the faction a card belongs to.
type Faction string

const (
	FactionAxiom   Faction = "AXIOM"
	FactionBravos  Faction = "BRAVOS"
	FactionLyra    Faction = "LYRA"
	FactionMuna    Faction = "MUNA"
	FactionOrdis   Faction = "ORDIS"
	FactionYzmir   Faction = "YZMIR"
	FactionNeutral Faction = "NEUTRAL"
)

// Rarity is a card's collation rarity, used by deck validation.
type Rarity string

const (
	RarityCommon Rarity = "COMMON"
	RarityRare   Rarity = "RARE"
	RarityUnique Rarity = "UNIQUE"
)

// Status is a transient marker carried by a game object.
type Status string

const (
	StatusExhausted Status = "EXHAUSTED"
	StatusFleeting  Status = "FLEETING"
	StatusAnchored  Status = "ANCHORED"
	StatusAsleep    Status = "ASLEEP"
	StatusBoosted   Status = "BOOSTED"
)

// StatusSet is the set of statuses on a game object.
type StatusSet map[Status]struct{}

// Has reports whether the status is present.
func (s StatusSet) Has(st Status) bool {
	_, ok := s[st]
	return ok
}

// Add inserts the status.
func (s StatusSet) Add(st Status) {
	s[st] = struct{}{}
}

// Remove deletes the status.
func (s StatusSet) Remove(st Status) {
	delete(s, st)
}

// Clone returns an independent copy of the set.
func (s StatusSet) Clone() StatusSet {
	out := make(StatusSet, len(s))
	for st := range s {
		out[st] = struct{}{}
	}
	return out
}

// Keyword is a named rules keyword carried by a card.
type Keyword string

const (
	// KeywordCooldown makes a resolved Spell enter Reserve exhausted.
	KeywordCooldown Keyword = "COOLDOWN"
	// KeywordTough makes opponents pay a surcharge to target this object.
	KeywordTough Keyword = "TOUGH"
	// KeywordEternal keeps a Character out of the Night rest relocation.
	KeywordEternal Keyword = "ETERNAL"
)

// KeywordSet is the set of keywords on a card's characteristics.
type KeywordSet map[Keyword]struct{}

// Has reports whether the keyword is present.
func (k KeywordSet) Has(kw Keyword) bool {
	_, ok := k[kw]
	return ok
}

// Add inserts the keyword.
func (k KeywordSet) Add(kw Keyword) {
	k[kw] = struct{}{}
}

// Remove deletes the keyword.
func (k KeywordSet) Remove(kw Keyword) {
	delete(k, kw)
}

// Clone returns an independent copy of the set.
func (k KeywordSet) Clone() KeywordSet {
	out := make(KeywordSet, len(k))
	for kw := range k {
		out[kw] = struct{}{}
	}
	return out
}

// ZoneID names a zone. Player-scoped zones are qualified by owner at the
// container level, not here.
type ZoneID string

const (
	ZoneDeck       ZoneID = "DECK"
	ZoneHand       ZoneID = "HAND"
	ZoneMana       ZoneID = "MANA"
	ZoneReserve    ZoneID = "RESERVE"
	ZoneLandmark   ZoneID = "LANDMARK"
	ZoneDiscard    ZoneID = "DISCARD"
	ZoneHero       ZoneID = "HERO"
	ZoneExpedition ZoneID = "EXPEDITION"
	ZoneLimbo      ZoneID = "LIMBO"
)

// HiddenZones are zones whose contents are not visible to opponents.
var HiddenZones = map[ZoneID]bool{
	ZoneDeck: true,
	ZoneHand: true,
	ZoneMana: true,
}

// ExpeditionAxis distinguishes the two expedition tracks a player advances.
type ExpeditionAxis int

const (
	AxisHero ExpeditionAxis = iota
	AxisCompanion
)

func (a ExpeditionAxis) String() string {
	if a == AxisCompanion {
		return "COMPANION"
	}
	return "HERO"
}

// CounterKind names a kind of counter placed on a game object.
type CounterKind string

const (
	// CounterBoost adds one to every terrain statistic per counter.
	CounterBoost CounterKind = "BOOST"
)
