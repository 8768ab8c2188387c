package character

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Inventory is the set of item IDs the player holds. Adding an item that is
// already held does nothing.
type Inventory struct {
	items mapset.Set[string]
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{items: mapset.New[string]()}
}

// Add puts id into the inventory and reports whether it was newly added.
func (inv *Inventory) Add(id string) bool {
	if inv.items.Has(id) {
		return false
	}
	inv.items.Put(id)
	return true
}

// Has reports whether id is held.
func (inv *Inventory) Has(id string) bool {
	return inv.items.Has(id)
}

// Remove takes id out of the inventory and reports whether it was held.
func (inv *Inventory) Remove(id string) bool {
	if !inv.items.Has(id) {
		return false
	}
	inv.items.Remove(id)
	return true
}

// Len is the number of distinct items held.
func (inv *Inventory) Len() int {
	return inv.items.Size()
}

// Items returns the held IDs in sorted order.
func (inv *Inventory) Items() []string {
	return sortedKeys(inv.items)
}

func sortedKeys(s mapset.Set[string]) []string {
	out := make([]string, 0, s.Size())
	s.Each(func(k string) {
		out = append(out, k)
	})
	sort.Strings(out)
	return out
}
