package card

import "testing"

func characterDef() *Definition {
	return &Definition{
		ID:         "def-1",
		Name:       "Test Character",
		Type:       TypeCharacter,
		Faction:    FactionAxiom,
		HandCost:   "{2}",
		Statistics: Statistics{Forest: 1, Mountain: 2},
		Keywords:   KeywordSet{KeywordTough: {}},
		Abilities: []*Ability{
			{ID: "ab-1", Type: AbilityPassive, Text: "test"},
		},
	}
}

func TestNewObjectClonesTemplate(t *testing.T) {
	def := characterDef()
	a := NewObject(def, "p1")
	b := NewObject(def, "p1")

	if a.ID == b.ID {
		t.Fatal("two instances share an ID")
	}
	a.Current.Keywords.Add(KeywordEternal)
	if def.Keywords.Has(KeywordEternal) {
		t.Error("object mutation leaked into the definition")
	}
	if b.Current.Keywords.Has(KeywordEternal) {
		t.Error("object mutation leaked into a sibling instance")
	}

	a.Abilities[0].Text = "changed"
	if def.Abilities[0].Text != "test" {
		t.Error("ability mutation leaked into the definition")
	}
}

func TestSnapshotLKIIsFrozen(t *testing.T) {
	obj := NewObject(characterDef(), "p1")
	snap := obj.SnapshotLKI()

	obj.Current.Statistics.Forest = 99
	obj.Current.Keywords.Add(KeywordEternal)
	obj.ControllerID = "p2"

	if snap.Chars.Statistics.Forest != 1 {
		t.Errorf("snapshot statistics follow the live object")
	}
	if snap.Chars.Keywords.Has(KeywordEternal) {
		t.Errorf("snapshot keywords follow the live object")
	}
	if snap.ControllerID != "p1" {
		t.Errorf("snapshot controller follows the live object")
	}
}

func TestBecomeManaOrb(t *testing.T) {
	obj := NewObject(characterDef(), "p1")
	obj.Statuses.Add(StatusExhausted)

	obj.BecomeManaOrb()

	if !obj.FaceDown {
		t.Error("orb should be face down")
	}
	if obj.HasStatus(StatusExhausted) {
		t.Error("orb should enter ready")
	}
	if obj.Current.Type != TypeManaOrb {
		t.Errorf("orb type = %s", obj.Current.Type)
	}
	if len(obj.Abilities) != 0 {
		t.Error("orb retains abilities")
	}
	if obj.Base.Name != "Test Character" {
		t.Error("printed identity lost")
	}
}

func TestResetCurrentAppliesBoostCounters(t *testing.T) {
	obj := NewObject(characterDef(), "p1")
	obj.AddCounters(CounterBoost, 2)

	// Simulate a passive layer overwrite, then reset.
	obj.Current.Statistics = Statistics{Forest: 50}
	obj.ResetCurrent()

	want := Statistics{Forest: 3, Mountain: 4, Water: 2}
	if obj.Current.Statistics != want {
		t.Errorf("reset statistics = %+v, want %+v", obj.Current.Statistics, want)
	}
}

func TestAddCountersIgnoresNonPositive(t *testing.T) {
	obj := NewObject(characterDef(), "p1")
	obj.AddCounters(CounterBoost, 0)
	obj.AddCounters(CounterBoost, -3)
	if obj.CounterCount(CounterBoost) != 0 {
		t.Errorf("counter count = %d, want 0", obj.CounterCount(CounterBoost))
	}
}
