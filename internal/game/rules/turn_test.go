package rules

import "testing"

func newRunningTurns(t *testing.T, order []string) *TurnManager {
	t.Helper()
	tm := NewTurnManager(order, NewEventBus())
	if err := tm.Begin(order[0]); err != nil {
		t.Fatalf("begin: %v", err)
	}
	return tm
}

func TestPlayEndsTurnAndRotates(t *testing.T) {
	tm := newRunningTurns(t, []string{"p1", "p2"})

	ended, err := tm.ActionTaken("p1", true)
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	if ended {
		t.Fatal("afternoon ended with nobody passed")
	}
	if tm.CurrentPlayer() != "p2" {
		t.Errorf("current = %s, want p2", tm.CurrentPlayer())
	}
}

func TestQuickActionKeepsTurn(t *testing.T) {
	tm := newRunningTurns(t, []string{"p1", "p2"})

	ended, err := tm.ActionTaken("p1", false)
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	if ended {
		t.Fatal("afternoon ended unexpectedly")
	}
	if tm.CurrentPlayer() != "p1" {
		t.Errorf("current = %s, want p1 after a quick action", tm.CurrentPlayer())
	}
}

func TestSoleRemainingPlayerRetainsTurn(t *testing.T) {
	tm := newRunningTurns(t, []string{"p1", "p2"})

	if _, err := tm.Pass("p1"); err != nil {
		t.Fatalf("pass: %v", err)
	}
	if tm.CurrentPlayer() != "p2" {
		t.Fatalf("current = %s, want p2", tm.CurrentPlayer())
	}

	// p2 keeps taking turn-ending actions; the turn never leaves them.
	for i := 0; i < 3; i++ {
		ended, err := tm.ActionTaken("p2", true)
		if err != nil {
			t.Fatalf("action %d: %v", i, err)
		}
		if ended {
			t.Fatal("afternoon ended while p2 still active")
		}
		if tm.CurrentPlayer() != "p2" {
			t.Fatalf("turn left the sole remaining player")
		}
	}
}

func TestAllPassedEndsAfternoon(t *testing.T) {
	tm := newRunningTurns(t, []string{"p1", "p2"})

	if _, err := tm.Pass("p1"); err != nil {
		t.Fatalf("pass p1: %v", err)
	}
	ended, err := tm.Pass("p2")
	if err != nil {
		t.Fatalf("pass p2: %v", err)
	}
	if !ended {
		t.Fatal("afternoon should end when everyone has passed")
	}
	if tm.Active() {
		t.Error("manager still active after the afternoon ended")
	}
}

func TestActingOutOfTurnRejected(t *testing.T) {
	tm := newRunningTurns(t, []string{"p1", "p2"})

	if _, err := tm.ActionTaken("p2", true); err == nil {
		t.Error("expected rejection acting out of turn")
	}
	if _, err := tm.Pass("p2"); err == nil {
		t.Error("expected rejection passing out of turn")
	}

	if _, err := tm.Pass("p1"); err != nil {
		t.Fatalf("pass: %v", err)
	}
	// A passed player stays passed.
	if tm.HasPassed("p1") != true {
		t.Error("p1 should be marked passed")
	}
}

func TestThreePlayerRotationSkipsPassed(t *testing.T) {
	tm := newRunningTurns(t, []string{"p1", "p2", "p3"})

	if _, err := tm.ActionTaken("p1", true); err != nil {
		t.Fatal(err)
	}
	if _, err := tm.Pass("p2"); err != nil {
		t.Fatal(err)
	}
	if tm.CurrentPlayer() != "p3" {
		t.Fatalf("current = %s, want p3", tm.CurrentPlayer())
	}
	if _, err := tm.ActionTaken("p3", true); err != nil {
		t.Fatal(err)
	}
	// p2 has passed; rotation lands back on p1.
	if tm.CurrentPlayer() != "p1" {
		t.Errorf("current = %s, want p1 (skipping passed p2)", tm.CurrentPlayer())
	}
}
