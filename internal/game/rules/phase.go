package rules

import "fmt"

// DayPhase represents the phases of a game day.
type DayPhase int

const (
	PhaseSetup DayPhase = iota
	PhaseMorning
	PhaseNoon
	PhaseAfternoon
	PhaseDusk
	PhaseNight
)

var phaseNames = map[DayPhase]string{
	PhaseSetup:     "SETUP",
	PhaseMorning:   "MORNING",
	PhaseNoon:      "NOON",
	PhaseAfternoon: "AFTERNOON",
	PhaseDusk:      "DUSK",
	PhaseNight:     "NIGHT",
}

func (p DayPhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// Handler runs a phase's game logic. Handlers are registered by the engine;
// the phase manager only drives ordering.
type Handler func(phase DayPhase, day int) error

// PhaseManager is the day-phase state machine. Advance is the sole entry
// point for phase progression: it enters the next phase, publishes the
// change, runs the registered handler, and keeps going through phases that
// require no player interaction. It halts on Afternoon (exited only via the
// afternoon-ended signal) and when the game ends.
type PhaseManager struct {
	phase    DayPhase
	day      int
	ended    bool
	handlers map[DayPhase]Handler
	bus      *EventBus
}

// NewPhaseManager creates a manager positioned before the first Morning.
func NewPhaseManager(bus *EventBus) *PhaseManager {
	return &PhaseManager{
		phase:    PhaseSetup,
		day:      1,
		handlers: make(map[DayPhase]Handler),
		bus:      bus,
	}
}

// SetHandler registers the game logic for a phase.
func (pm *PhaseManager) SetHandler(phase DayPhase, h Handler) {
	pm.handlers[phase] = h
}

// Phase returns the phase currently in progress.
func (pm *PhaseManager) Phase() DayPhase { return pm.phase }

// Day returns the current day number (1-based).
func (pm *PhaseManager) Day() int { return pm.day }

// Ended reports whether phase progression has stopped for good.
func (pm *PhaseManager) Ended() bool { return pm.ended }

// End stops progression. Called by the engine when victory is decided.
func (pm *PhaseManager) End() { pm.ended = true }

// Advance transitions to the next phase and chains through non-interactive
// phases. Night wrapping to Morning increments the day counter.
func (pm *PhaseManager) Advance() error {
	for !pm.ended {
		next := pm.phase + 1
		if pm.phase == PhaseNight {
			next = PhaseMorning
			pm.day++
			if pm.bus != nil {
				evt := NewEvent(EventDayAdvanced, "", "")
				evt.Amount = pm.day
				pm.bus.Publish(evt)
			}
		}
		pm.phase = next

		if pm.bus != nil {
			evt := NewEvent(EventPhaseChanged, "", "")
			evt.Data = pm.phase.String()
			evt.Amount = pm.day
			pm.bus.Publish(evt)
		}

		if h, ok := pm.handlers[pm.phase]; ok {
			if err := h(pm.phase, pm.day); err != nil {
				return fmt.Errorf("%s handler: %w", pm.phase, err)
			}
		}

		// Afternoon waits for player actions; everything else advances on
		// its own.
		if pm.phase == PhaseAfternoon {
			return nil
		}
	}
	return nil
}
