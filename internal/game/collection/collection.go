// Package collection implements the in-play id list shared by the market
// shop, open clues, and open gates: an ordered sequence of card ids plus a
// resolver into the card database. Members here are on the board, not part
// of a draw/discard cycle.
package collection

import "slices"

// List is an ordered set of card ids resolved lazily through resolve.
type List[T any] struct {
	ids     []string
	resolve func(id string) (T, bool)
}

// New builds an empty list over the given resolver.
func New[T any](resolve func(id string) (T, bool)) *List[T] {
	return &List[T]{resolve: resolve}
}

// IDs returns a copy of the raw id sequence, dangling ids included.
func (l *List[T]) IDs() []string {
	return slices.Clone(l.ids)
}

// SetIDs replaces the id sequence wholesale. Unknown ids are kept in the raw
// list; they only vanish from resolved views.
func (l *List[T]) SetIDs(ids []string) {
	l.ids = slices.Clone(ids)
}

// Add appends id to the list.
func (l *List[T]) Add(id string) {
	l.ids = append(l.ids, id)
}

// Remove deletes the first occurrence of id, reporting whether it was there.
func (l *List[T]) Remove(id string) bool {
	i := slices.Index(l.ids, id)
	if i < 0 {
		return false
	}
	l.ids = slices.Delete(l.ids, i, i+1)
	return true
}

// Contains reports whether id is in the list.
func (l *List[T]) Contains(id string) bool {
	return slices.Contains(l.ids, id)
}

// Len reports the number of ids, dangling ones included.
func (l *List[T]) Len() int { return len(l.ids) }

// Resolve returns the entities for every id the database still knows,
// silently dropping the rest.
func (l *List[T]) Resolve() []T {
	out := make([]T, 0, len(l.ids))
	for _, id := range l.ids {
		if v, ok := l.resolve(id); ok {
			out = append(out, v)
		}
	}
	return out
}
