package survival

import (
	"encoding/json"
	"testing"

	"wildcraft/internal/domain/catalog"
)

func TestDiscoveryUnlocksWhenAllPrerequisitesHeld(t *testing.T) {
	cat := catalog.Default()
	p := NewPlayerState(cat)

	if got := give(t, cat, &p, "campfire", 1); len(got) != 0 {
		t.Fatalf("campfire alone should unlock nothing, got %v", got)
	}
	got := give(t, cat, &p, "raw_meat", 1)
	if len(got) != 1 || got[0] != "cooked_meat" {
		t.Fatalf("discovered mismatch: got=%v want=[cooked_meat]", got)
	}
	if !p.Discovered.Has("cooked_meat") {
		t.Fatalf("expected cooked_meat to be discovered")
	}
}

func TestDiscoveryReportsSeveralRecipesAtOnce(t *testing.T) {
	cat := catalog.Default()
	p := NewPlayerState(cat)
	give(t, cat, &p, "wooden_stick", 1)
	give(t, cat, &p, "leaf_bed", 1)

	got := give(t, cat, &p, "campfire", 1)
	want := []string{"wooden_shelter", "torch"}
	if len(got) != len(want) {
		t.Fatalf("discovered mismatch: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("discovered[%d] mismatch: got=%s want=%s", i, got[i], want[i])
		}
	}
}

func TestDiscoveryScanIsIdempotent(t *testing.T) {
	cat := catalog.Default()
	p := NewPlayerState(cat)
	give(t, cat, &p, "leaf", 1)

	before := len(p.Discovered)
	if again := DiscoverRecipes(&p.Inventory, p.Discovered, cat.Recipes()); len(again) != 0 {
		t.Fatalf("second scan unlocked %v", again)
	}
	if len(p.Discovered) != before {
		t.Fatalf("discovered set changed: got=%d want=%d", len(p.Discovered), before)
	}
}

func TestDiscoveryIgnoresDroppedPrerequisites(t *testing.T) {
	cat := catalog.Default()
	p := NewPlayerState(cat)
	give(t, cat, &p, "leaf", 1)
	p.Drop("leaf", 1)
	if !p.Discovered.Has("water_flask") {
		t.Fatalf("discovery must persist after the prerequisite is gone")
	}
}

func TestRecipeSetJSONIsSortedList(t *testing.T) {
	raw, err := json.Marshal(NewRecipeSet("torch", "campfire"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `["campfire","torch"]` {
		t.Fatalf("json mismatch: got=%s", raw)
	}
}
