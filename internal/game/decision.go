package game

import (
	"context"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
)

// DecisionProvider supplies player choices at suspension points. Calls may
// block indefinitely; the engine re-validates every response against
// current legality before acting on it.
type DecisionProvider interface {
	// ChooseExpandCard picks at most one hand card to convert into a Mana
	// Orb during Morning. Returning ok=false skips the expand.
	ChooseExpandCard(ctx context.Context, playerID string, handIDs []string) (cardID string, ok bool, err error)

	// ChooseDiscards picks which objects to give up when a zone exceeds its
	// limit during Night clean-up. Exactly excess IDs must be returned.
	ChooseDiscards(ctx context.Context, playerID string, zoneID card.ZoneID, objectIDs []string, excess int) ([]string, error)

	// ChooseTargets picks targets for an effect step during resolution.
	ChooseTargets(ctx context.Context, playerID string, prompt string, candidateIDs []string, count int) ([]string, error)

	// ConfirmOptional answers an optional-step yes/no question.
	ConfirmOptional(ctx context.Context, playerID string, prompt string) (bool, error)
}

// AutoDecider is a deterministic decision provider that always takes the
// first legal option. Used by tests and the demo server's idle seats.
type AutoDecider struct {
	// DeclineOptional makes ConfirmOptional answer no.
	DeclineOptional bool
	// SkipExpand makes ChooseExpandCard skip the Morning expand.
	SkipExpand bool
}

// ChooseExpandCard picks the first hand card unless configured to skip.
func (d *AutoDecider) ChooseExpandCard(_ context.Context, _ string, handIDs []string) (string, bool, error) {
	if d.SkipExpand || len(handIDs) == 0 {
		return "", false, nil
	}
	return handIDs[0], true, nil
}

// ChooseDiscards gives up the first excess objects in zone order.
func (d *AutoDecider) ChooseDiscards(_ context.Context, _ string, _ card.ZoneID, objectIDs []string, excess int) ([]string, error) {
	if excess > len(objectIDs) {
		excess = len(objectIDs)
	}
	return append([]string(nil), objectIDs[:excess]...), nil
}

// ChooseTargets picks the first candidates.
func (d *AutoDecider) ChooseTargets(_ context.Context, _ string, _ string, candidateIDs []string, count int) ([]string, error) {
	if count > len(candidateIDs) {
		count = len(candidateIDs)
	}
	return append([]string(nil), candidateIDs[:count]...), nil
}

// ConfirmOptional accepts unless configured to decline.
func (d *AutoDecider) ConfirmOptional(_ context.Context, _ string, _ string) (bool, error) {
	return !d.DeclineOptional, nil
}
