package survival

import (
	"encoding/json"

	"wildcraft/internal/domain/catalog"
)

type ItemStack struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Category    catalog.ItemCategory `json:"category"`
	Quantity    int                  `json:"quantity"`
	Description string               `json:"description"`
	Icon        string               `json:"icon"`
	Effects     []catalog.Effect     `json:"effects,omitempty"`
}

// StackOf builds a stack of qty copies of the catalog item.
func StackOf(item catalog.Item, qty int) ItemStack {
	return ItemStack{
		ID:          item.ID,
		Name:        item.Name,
		Category:    item.Category,
		Quantity:    qty,
		Description: item.Description,
		Icon:        item.Icon,
		Effects:     append([]catalog.Effect(nil), item.Effects...),
	}
}

// Inventory holds at most one stack per item id, in first-acquired order.
// A held stack always has a positive quantity.
type Inventory struct {
	stacks []ItemStack
}

func (inv *Inventory) index(id string) int {
	for i := range inv.stacks {
		if inv.stacks[i].ID == id {
			return i
		}
	}
	return -1
}

// Add merges s into an existing stack with the same id or appends it.
func (inv *Inventory) Add(s ItemStack) {
	if s.ID == "" || s.Quantity <= 0 {
		return
	}
	if i := inv.index(s.ID); i >= 0 {
		inv.stacks[i].Quantity += s.Quantity
		return
	}
	s.Effects = append([]catalog.Effect(nil), s.Effects...)
	inv.stacks = append(inv.stacks, s)
}

// Remove takes up to qty of id and reports how many were removed.
// A stack holding qty or fewer is deleted; an absent id is a no-op.
func (inv *Inventory) Remove(id string, qty int) int {
	if qty <= 0 {
		qty = 1
	}
	i := inv.index(id)
	if i < 0 {
		return 0
	}
	held := inv.stacks[i].Quantity
	if held <= qty {
		inv.stacks = append(inv.stacks[:i:i], inv.stacks[i+1:]...)
		return held
	}
	inv.stacks[i].Quantity = held - qty
	return qty
}

func (inv *Inventory) Query(id string) int {
	if i := inv.index(id); i >= 0 {
		return inv.stacks[i].Quantity
	}
	return 0
}

func (inv *Inventory) Get(id string) (ItemStack, bool) {
	if i := inv.index(id); i >= 0 {
		return inv.stacks[i], true
	}
	return ItemStack{}, false
}

func (inv *Inventory) Stacks() []ItemStack {
	out := make([]ItemStack, len(inv.stacks))
	copy(out, inv.stacks)
	return out
}

func (inv *Inventory) Len() int {
	return len(inv.stacks)
}

func (inv *Inventory) Clone() Inventory {
	out := Inventory{stacks: make([]ItemStack, len(inv.stacks))}
	for i, s := range inv.stacks {
		s.Effects = append([]catalog.Effect(nil), s.Effects...)
		out.stacks[i] = s
	}
	return out
}

func (inv Inventory) MarshalJSON() ([]byte, error) {
	if inv.stacks == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(inv.stacks)
}

func (inv *Inventory) UnmarshalJSON(data []byte) error {
	var stacks []ItemStack
	if err := json.Unmarshal(data, &stacks); err != nil {
		return err
	}
	inv.stacks = inv.stacks[:0]
	for _, s := range stacks {
		inv.Add(s)
	}
	return nil
}
