package survival

import (
	"errors"
	"fmt"

	"wildcraft/internal/domain/catalog"
	"wildcraft/internal/domain/world"
)

var ErrItemNotConsumable = errors.New("item has no effects to apply")

// Rand is the randomness the clock and movement rules draw from.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type PlayerState struct {
	Vitals     Vitals        `json:"vitals"`
	Inventory  Inventory     `json:"inventory"`
	Discovered RecipeSet     `json:"discovered_recipes"`
	Hour       int           `json:"time_of_day"`
	Weather    world.Weather `json:"weather"`
	Position   world.Point   `json:"position"`
	GameOver   bool          `json:"game_over"`
	DeathCause DeathCause    `json:"death_cause,omitempty"`
}

// NewPlayerState is the state every game starts from.
func NewPlayerState(cat *catalog.Catalog) PlayerState {
	return PlayerState{
		Vitals:     FullVitals(),
		Discovered: NewRecipeSet(cat.InitialRecipeIDs()...),
		Hour:       world.StartHour,
		Weather:    world.WeatherClear,
	}
}

func (p PlayerState) Phase() world.Phase {
	return world.PhaseAt(p.Hour)
}

func (p *PlayerState) Clone() PlayerState {
	out := *p
	out.Inventory = p.Inventory.Clone()
	out.Discovered = p.Discovered.Clone()
	return out
}

// AddItem puts s into the inventory and runs the discovery scan.
func (p *PlayerState) AddItem(cat *catalog.Catalog, s ItemStack) []string {
	p.Inventory.Add(s)
	if p.Discovered == nil {
		p.Discovered = RecipeSet{}
	}
	return DiscoverRecipes(&p.Inventory, p.Discovered, cat.Recipes())
}

type UseResult struct {
	ItemID  string           `json:"item_id"`
	Effects []catalog.Effect `json:"effects"`
	Before  Vitals           `json:"before"`
	After   Vitals           `json:"after"`
}

// UseItem applies every effect of one held unit and removes it. Using an
// item that is not held is a no-op reported with ok=false.
func (p *PlayerState) UseItem(id string) (res UseResult, ok bool, err error) {
	stack, held := p.Inventory.Get(id)
	if !held {
		return UseResult{}, false, nil
	}
	if len(stack.Effects) == 0 {
		return UseResult{}, false, fmt.Errorf("%w: %s", ErrItemNotConsumable, id)
	}
	res = UseResult{ItemID: id, Effects: stack.Effects, Before: p.Vitals}
	next := p.Vitals
	for _, e := range stack.Effects {
		next = next.Apply(e)
	}
	p.Vitals = next
	p.Inventory.Remove(id, 1)
	res.After = p.Vitals
	p.settle(DeathCauseConsumption)
	return res, true, nil
}

// Drop discards up to qty of id and reports how many left the inventory.
func (p *PlayerState) Drop(id string, qty int) int {
	return p.Inventory.Remove(id, qty)
}

// Exert charges the vital cost of travelling one step.
func (p *PlayerState) Exert() {
	p.Vitals.Hunger -= MoveHungerCost
	p.Vitals.Thirst -= MoveThirstCost
	p.settle(DeathCauseUnknown)
}

// settle clamps the vitals and latches game over when health is gone.
// It reports whether this call ended the game.
func (p *PlayerState) settle(cause DeathCause) bool {
	p.Vitals = p.Vitals.Clamped()
	if p.GameOver || p.Vitals.Health > MinVital {
		return false
	}
	p.GameOver = true
	p.DeathCause = cause
	return true
}
