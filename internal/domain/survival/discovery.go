package survival

import (
	"encoding/json"
	"sort"

	"wildcraft/internal/domain/catalog"
)

// RecipeSet is the set of recipe ids a player may craft.
type RecipeSet map[string]struct{}

func NewRecipeSet(ids ...string) RecipeSet {
	s := make(RecipeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s RecipeSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s RecipeSet) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s RecipeSet) Clone() RecipeSet {
	out := make(RecipeSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

func (s RecipeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *RecipeSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewRecipeSet(ids...)
	return nil
}

// DiscoverRecipes unlocks every undiscovered recipe whose prerequisites are all
// held, returning the new ids in catalog order. Running it twice on the same
// inventory unlocks nothing the second time.
func DiscoverRecipes(inv *Inventory, known RecipeSet, recipes []catalog.Recipe) []string {
	var found []string
	for _, r := range recipes {
		if known.Has(r.ID) || !prerequisitesHeld(inv, r.Prerequisites) {
			continue
		}
		known[r.ID] = struct{}{}
		found = append(found, r.ID)
	}
	return found
}

func prerequisitesHeld(inv *Inventory, ids []string) bool {
	for _, id := range ids {
		if inv.Query(id) <= 0 {
			return false
		}
	}
	return true
}
