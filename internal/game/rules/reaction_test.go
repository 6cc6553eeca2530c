package rules

import "testing"

func TestResolveAllFollowsInitiative(t *testing.T) {
	rm := NewReactionManager(NewEventBus())

	var resolved []string
	add := func(id, controller string) {
		rm.Queue(ReactionItem{
			ID:         id,
			Controller: controller,
			Resolve: func() error {
				resolved = append(resolved, id)
				return nil
			},
		})
	}
	// Queue order interleaves controllers; initiative order must win.
	add("b1", "p2")
	add("a1", "p1")
	add("b2", "p2")
	add("a2", "p1")

	if err := rm.ResolveAll([]string{"p1", "p2"}, nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	want := []string{"a1", "a2", "b1", "b2"}
	if len(resolved) != len(want) {
		t.Fatalf("resolved %v, want %v", resolved, want)
	}
	for i := range want {
		if resolved[i] != want[i] {
			t.Fatalf("resolved %v, want %v", resolved, want)
		}
	}
	if rm.Len() != 0 {
		t.Errorf("queue not empty after drain: %d", rm.Len())
	}
}

func TestResolutionRestartsFromFirstPlayer(t *testing.T) {
	rm := NewReactionManager(NewEventBus())

	var resolved []string
	rm.Queue(ReactionItem{
		ID:         "a1",
		Controller: "p1",
		Resolve: func() error {
			resolved = append(resolved, "a1")
			// Chained reaction for the first player, queued mid-drain. The
			// restarted scan must pick it before p2's pending item.
			rm.Queue(ReactionItem{
				ID:         "a2",
				Controller: "p1",
				Resolve: func() error {
					resolved = append(resolved, "a2")
					return nil
				},
			})
			return nil
		},
	})
	rm.Queue(ReactionItem{
		ID:         "b1",
		Controller: "p2",
		Resolve: func() error {
			resolved = append(resolved, "b1")
			return nil
		},
	})

	if err := rm.ResolveAll([]string{"p1", "p2"}, nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []string{"a1", "a2", "b1"}
	for i := range want {
		if resolved[i] != want[i] {
			t.Fatalf("resolved %v, want %v", resolved, want)
		}
	}
}

func TestUnavailableReactionsArePurged(t *testing.T) {
	rm := NewReactionManager(NewEventBus())

	purged := false
	rm.Queue(ReactionItem{
		ID:         "stuck",
		Controller: "p1",
		Available:  func() bool { return false },
		Resolve:    func() error { t.Fatal("unavailable reaction resolved"); return nil },
		OnPurge:    func() { purged = true },
	})

	if err := rm.ResolveAll([]string{"p1"}, nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !purged {
		t.Error("leftover reaction was not purged")
	}
	if rm.Len() != 0 {
		t.Errorf("queue not empty after purge: %d", rm.Len())
	}
}

func TestBetweenRunsAfterEachResolution(t *testing.T) {
	rm := NewReactionManager(NewEventBus())
	for i := 0; i < 3; i++ {
		rm.Queue(ReactionItem{Controller: "p1", Resolve: func() error { return nil }})
	}

	calls := 0
	if err := rm.ResolveAll([]string{"p1"}, func() error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if calls != 3 {
		t.Errorf("between calls = %d, want 3", calls)
	}
}
