package game

// Player holds per-player engine state: daily flags and expedition progress.
// Zone contents live in the object store, not here.
type Player struct {
	ID   string
	Name string

	HasPassedTurn       bool
	HasExpandedThisTurn bool

	// Expedition positions, one per axis.
	HeroPosition      int
	CompanionPosition int

	// Whether each axis advanced at the most recent Dusk; drives the Night
	// rest relocation.
	HeroMoved      bool
	CompanionMoved bool

	// Hero-defined zone limits enforced during Night clean-up.
	ReserveLimit  int
	LandmarkLimit int
}

// PositionSum returns the combined hero and companion progress.
func (p *Player) PositionSum() int {
	return p.HeroPosition + p.CompanionPosition
}

func (p *Player) resetDailyFlags() {
	p.HasPassedTurn = false
	p.HasExpandedThisTurn = false
}
