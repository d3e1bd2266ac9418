// Package deck implements the draw/discard/removed pile state machine shared
// by every card kind. A deck owns the only mutable pile state for its kind;
// the card bodies themselves are immutable and resolved through the card
// database the deck was built with.
package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Ref is any card that can live in a deck.
type Ref interface {
	CardID() string
}

// ErrCardNotFound reports a snapshot id that is missing from the card
// database. A dangling id means the snapshot and database do not match, so
// restore aborts instead of guessing.
var ErrCardNotFound = errors.New("card not found")

// State is the persisted form of a deck: the three piles as id sequences.
type State struct {
	DrawPile        []string `json:"drawPile"`
	DiscardPile     []string `json:"discardPile"`
	RemovedFromGame []string `json:"removedFromGame"`
}

// Deck holds the three disjoint piles for one card kind. The end of the draw
// pile slice is the top of the deck.
type Deck[T Ref] struct {
	lookup  func(id string) (T, bool)
	rng     *rand.Rand
	draw    []T
	discard []T
	removed []T
}

// New builds an empty deck resolving ids through lookup. A nil rng falls back
// to the shared global source; tests pass a seeded one for determinism.
func New[T Ref](lookup func(id string) (T, bool), rng *rand.Rand) *Deck[T] {
	return &Deck[T]{lookup: lookup, rng: rng}
}

// Initialize sets the draw pile to a shuffled copy of cards and clears the
// discard and removed piles.
func (d *Deck[T]) Initialize(cards []T) {
	d.draw = d.Shuffle(cards)
	d.discard = nil
	d.removed = nil
}

// Draw removes and returns the top card of the draw pile. An empty draw pile
// is reshuffled from the discard pile first; if both piles are empty the deck
// is exhausted and Draw reports false.
func (d *Deck[T]) Draw() (T, bool) {
	var zero T
	if len(d.draw) == 0 {
		if len(d.discard) == 0 {
			return zero, false
		}
		d.draw = d.Shuffle(d.discard)
		d.discard = nil
	}
	card := d.draw[len(d.draw)-1]
	d.draw = d.draw[:len(d.draw)-1]
	return card, true
}

// DrawMatching removes and returns the first draw-pile card for which match
// reports true, preserving the order of the remaining cards. It scans the
// draw pile only and never triggers a discard reshuffle.
func (d *Deck[T]) DrawMatching(match func(T) bool) (T, bool) {
	var zero T
	for i, card := range d.draw {
		if match(card) {
			d.draw = append(d.draw[:i], d.draw[i+1:]...)
			return card, true
		}
	}
	return zero, false
}

// Discard appends card to the discard pile.
func (d *Deck[T]) Discard(card T) {
	d.discard = append(d.discard, card)
}

// RemoveFromGame appends card to the removed pile. Nothing ever returns a
// card from there.
func (d *Deck[T]) RemoveFromGame(card T) {
	d.removed = append(d.removed, card)
}

// Shuffle returns a uniformly shuffled copy of cards, leaving the input
// untouched.
func (d *Deck[T]) Shuffle(cards []T) []T {
	out := make([]T, len(cards))
	copy(out, cards)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if d.rng != nil {
		d.rng.Shuffle(len(out), swap)
	} else {
		rand.Shuffle(len(out), swap)
	}
	return out
}

// ShuffleDrawPile reshuffles the draw pile in place.
func (d *Deck[T]) ShuffleDrawPile() {
	d.draw = d.Shuffle(d.draw)
}

// Peek returns up to n cards from the top of the draw pile without mutating
// it, ordered bottom to top.
func (d *Deck[T]) Peek(n int) []T {
	if n <= 0 {
		return nil
	}
	if n > len(d.draw) {
		n = len(d.draw)
	}
	out := make([]T, n)
	copy(out, d.draw[len(d.draw)-n:])
	return out
}

// ReturnToTop places card on top of the draw pile. The caller is responsible
// for having removed it from wherever it came from.
func (d *Deck[T]) ReturnToTop(card T) {
	d.draw = append(d.draw, card)
}

// ReturnToBottom places card under the draw pile.
func (d *Deck[T]) ReturnToBottom(card T) {
	d.draw = append([]T{card}, d.draw...)
}

// CardByID resolves id through the card database, independent of pile
// membership.
func (d *Deck[T]) CardByID(id string) (T, bool) {
	return d.lookup(id)
}

// State exports the three piles as id sequences.
func (d *Deck[T]) State() State {
	return State{
		DrawPile:        ids(d.draw),
		DiscardPile:     ids(d.discard),
		RemovedFromGame: ids(d.removed),
	}
}

// RestoreState rebuilds the piles from an id snapshot. Any id the database
// cannot resolve aborts the restore with ErrCardNotFound; the deck keeps its
// previous piles in that case.
func (d *Deck[T]) RestoreState(s State) error {
	draw, err := d.resolve(s.DrawPile)
	if err != nil {
		return err
	}
	discard, err := d.resolve(s.DiscardPile)
	if err != nil {
		return err
	}
	removed, err := d.resolve(s.RemovedFromGame)
	if err != nil {
		return err
	}
	d.draw = draw
	d.discard = discard
	d.removed = removed
	return nil
}

func (d *Deck[T]) resolve(ids []string) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		card, ok := d.lookup(id)
		if !ok {
			return nil, fmt.Errorf("restore deck: %w: %s", ErrCardNotFound, id)
		}
		out = append(out, card)
	}
	return out, nil
}

func ids[T Ref](cards []T) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.CardID()
	}
	return out
}
