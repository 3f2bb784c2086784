// Package ordering implements the move up / move down behaviour of ordered admin lists.
package ordering

import "errors"

var (
	// ErrNotFound is returned when the selected id is not in the list.
	ErrNotFound = errors.New("item not found")
	// ErrNoNeighbor is returned when nothing sits at the target position.
	ErrNoNeighbor = errors.New("no neighbor in that direction")
	// ErrInvalidDirection is returned for anything but Up or Down.
	ErrInvalidDirection = errors.New("invalid direction")
)

// Direction moves an item towards the top (Up, order-1) or bottom (Down, order+1).
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection validates a direction coming from a request.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	}
	return "", ErrInvalidDirection
}

func (d Direction) step() int {
	if d == Up {
		return -1
	}
	return 1
}

// Item is the part of an ordered record the swap cares about.
type Item struct {
	ID    string
	Order int
}

// Swap exchanges the order of the item with the given id and its neighbor at
// order±1. It returns the two records with their new orders; the input slice is
// not modified, so the multiset of orders across the list is unchanged.
func Swap(items []Item, id string, dir Direction) (moved, neighbor Item, err error) {
	if dir != Up && dir != Down {
		return Item{}, Item{}, ErrInvalidDirection
	}

	idx := -1
	for i, it := range items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Item{}, Item{}, ErrNotFound
	}

	current := items[idx]
	target := current.Order + dir.step()
	for i, it := range items {
		if i != idx && it.Order == target {
			return Item{ID: current.ID, Order: it.Order}, Item{ID: it.ID, Order: current.Order}, nil
		}
	}
	return Item{}, Item{}, ErrNoNeighbor
}

// Apply returns a copy of items with the swapped orders written back.
func Apply(items []Item, changed ...Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	for _, c := range changed {
		for i := range out {
			if out[i].ID == c.ID {
				out[i].Order = c.Order
			}
		}
	}
	return out
}
