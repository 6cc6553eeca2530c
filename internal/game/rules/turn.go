package rules

import "fmt"

// TurnManager runs the Afternoon turn loop: players act in fixed seating
// order starting from the first player, and the phase ends once everyone
// has passed.
type TurnManager struct {
	order         []string
	currentPlayer string
	passed        map[string]bool
	active        bool
	bus           *EventBus
}

// NewTurnManager creates an idle turn manager for the given seating order.
func NewTurnManager(order []string, bus *EventBus) *TurnManager {
	return &TurnManager{
		order:  append([]string(nil), order...),
		passed: make(map[string]bool),
		bus:    bus,
	}
}

// Begin starts the Afternoon loop with the given first player. All pass
// flags are cleared.
func (tm *TurnManager) Begin(firstPlayer string) error {
	if !tm.contains(firstPlayer) {
		return fmt.Errorf("unknown first player %s", firstPlayer)
	}
	tm.currentPlayer = firstPlayer
	tm.passed = make(map[string]bool)
	tm.active = true
	return nil
}

// Active reports whether the Afternoon loop is running.
func (tm *TurnManager) Active() bool { return tm.active }

// CurrentPlayer returns the player whose turn it is to act.
func (tm *TurnManager) CurrentPlayer() string { return tm.currentPlayer }

// HasPassed reports whether a player has passed this Afternoon.
func (tm *TurnManager) HasPassed(playerID string) bool { return tm.passed[playerID] }

// Pass marks the acting player as passed and advances the turn. Returns
// true when the Afternoon has ended.
func (tm *TurnManager) Pass(playerID string) (bool, error) {
	if err := tm.checkActing(playerID); err != nil {
		return false, err
	}
	tm.passed[playerID] = true
	if tm.bus != nil {
		tm.bus.Publish(NewEvent(EventPlayerPassed, playerID, ""))
	}
	return tm.advance(playerID, true), nil
}

// ActionTaken records a completed action by the acting player. Playing a
// card ends the turn; a quick action or mana-orb conversion does not.
// Returns true when the Afternoon has ended.
func (tm *TurnManager) ActionTaken(playerID string, endsTurn bool) (bool, error) {
	if err := tm.checkActing(playerID); err != nil {
		return false, err
	}
	return tm.advance(playerID, endsTurn), nil
}

func (tm *TurnManager) checkActing(playerID string) error {
	if !tm.active {
		return fmt.Errorf("no turn in progress")
	}
	if playerID != tm.currentPlayer {
		return fmt.Errorf("it is %s's turn, not %s's", tm.currentPlayer, playerID)
	}
	if tm.passed[playerID] {
		return fmt.Errorf("%s has already passed", playerID)
	}
	return nil
}

// advance applies the turn-advance logic after any action. If all players
// have passed the phase ends. Otherwise, when the action ends the turn, it
// passes to the next player in seating order who has not passed; a sole
// remaining active player retains the turn.
func (tm *TurnManager) advance(actor string, endsTurn bool) bool {
	if tm.allPassed() {
		tm.active = false
		if tm.bus != nil {
			tm.bus.Publish(NewEvent(EventAfternoonEnded, actor, ""))
		}
		return true
	}
	if !endsTurn {
		return false
	}

	idx := tm.indexOf(actor)
	for step := 1; step <= len(tm.order); step++ {
		candidate := tm.order[(idx+step)%len(tm.order)]
		if !tm.passed[candidate] {
			if candidate != tm.currentPlayer && tm.bus != nil {
				tm.bus.Publish(NewEvent(EventTurnAdvanced, candidate, ""))
			}
			tm.currentPlayer = candidate
			return false
		}
	}
	// Unreachable while the actor has not passed, but keep the loop total.
	return false
}

func (tm *TurnManager) allPassed() bool {
	for _, id := range tm.order {
		if !tm.passed[id] {
			return false
		}
	}
	return true
}

func (tm *TurnManager) contains(playerID string) bool {
	return tm.indexOf(playerID) >= 0
}

func (tm *TurnManager) indexOf(playerID string) int {
	for i, id := range tm.order {
		if id == playerID {
			return i
		}
	}
	return -1
}
