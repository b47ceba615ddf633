package domain

import "sort"

// Cart maps menu item id to requested quantity. Prices are never stored here.
type Cart map[int64]int

func (c Cart) Inc(itemID int64) {
	c[itemID]++
}

// Dec removes the entry instead of keeping a zero quantity.
func (c Cart) Dec(itemID int64) {
	qty, ok := c[itemID]
	if !ok {
		return
	}
	if qty <= 1 {
		delete(c, itemID)
		return
	}
	c[itemID] = qty - 1
}

func (c Cart) Add(itemID int64, qty int) {
	if qty <= 0 {
		return
	}
	c[itemID] += qty
}

func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}

// ItemIDs returns the ids in ascending order so rendering is stable.
func (c Cart) ItemIDs() []int64 {
	ids := make([]int64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
