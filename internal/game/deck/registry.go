package deck

import (
	"fmt"
	"math/rand/v2"

	"github.com/omenworks/omen-engine-go/internal/game/cards"
)

// Registry holds the deck for every card kind of one game session. The typed
// fields give components their exact deck; the kind-keyed operations serve
// the facade's generic draw/discard/shuffle commands and the snapshot
// contract.
type Registry struct {
	Assets     *Deck[*cards.Asset]
	Spells     *Deck[*cards.Spell]
	Conditions *Deck[*cards.Condition]
	Gates      *Deck[*cards.Gate]
	Clues      *Deck[*cards.Clue]
	Encounters *Deck[*cards.Encounter]
}

// NewRegistry builds one deck per card kind over the given databases and
// initializes each draw pile with the matching card list from initial.
// Kinds missing from initial start empty.
func NewRegistry(dbs *cards.Databases, initial InitialDecks, rng *rand.Rand) *Registry {
	r := &Registry{
		Assets:     New(dbs.Assets.Get, rng),
		Spells:     New(dbs.Spells.Get, rng),
		Conditions: New(dbs.Conditions.Get, rng),
		Gates:      New(dbs.Gates.Get, rng),
		Clues:      New(dbs.Clues.Get, rng),
		Encounters: New(dbs.Encounters.Get, rng),
	}
	r.Assets.Initialize(initial.Assets)
	r.Spells.Initialize(initial.Spells)
	r.Conditions.Initialize(initial.Conditions)
	r.Gates.Initialize(initial.Gates)
	r.Clues.Initialize(initial.Clues)
	r.Encounters.Initialize(initial.Encounters)
	return r
}

// InitialDecks names the starting draw pile content per card kind.
type InitialDecks struct {
	Assets     []*cards.Asset
	Spells     []*cards.Spell
	Conditions []*cards.Condition
	Gates      []*cards.Gate
	Clues      []*cards.Clue
	Encounters []*cards.Encounter
}

// Draw draws the top card of the named kind's deck.
func (r *Registry) Draw(kind cards.Kind) (Ref, bool) {
	switch kind {
	case cards.KindAsset:
		return asRef(r.Assets.Draw())
	case cards.KindSpell:
		return asRef(r.Spells.Draw())
	case cards.KindCondition:
		return asRef(r.Conditions.Draw())
	case cards.KindGate:
		return asRef(r.Gates.Draw())
	case cards.KindClue:
		return asRef(r.Clues.Draw())
	case cards.KindEncounter:
		return asRef(r.Encounters.Draw())
	}
	return nil, false
}

// Discard routes card into the discard pile of the named kind's deck. The
// card's concrete type must match the kind.
func (r *Registry) Discard(kind cards.Kind, card Ref) bool {
	switch kind {
	case cards.KindAsset:
		if c, ok := card.(*cards.Asset); ok {
			r.Assets.Discard(c)
			return true
		}
	case cards.KindSpell:
		if c, ok := card.(*cards.Spell); ok {
			r.Spells.Discard(c)
			return true
		}
	case cards.KindCondition:
		if c, ok := card.(*cards.Condition); ok {
			r.Conditions.Discard(c)
			return true
		}
	case cards.KindGate:
		if c, ok := card.(*cards.Gate); ok {
			r.Gates.Discard(c)
			return true
		}
	case cards.KindClue:
		if c, ok := card.(*cards.Clue); ok {
			r.Clues.Discard(c)
			return true
		}
	case cards.KindEncounter:
		if c, ok := card.(*cards.Encounter); ok {
			r.Encounters.Discard(c)
			return true
		}
	}
	return false
}

// Shuffle reshuffles the named kind's draw pile.
func (r *Registry) Shuffle(kind cards.Kind) bool {
	p, ok := r.piles()[kind]
	if !ok {
		return false
	}
	p.ShuffleDrawPile()
	return true
}

// CardByID resolves id through the named kind's database.
func (r *Registry) CardByID(kind cards.Kind, id string) (Ref, bool) {
	switch kind {
	case cards.KindAsset:
		return asRef(r.Assets.CardByID(id))
	case cards.KindSpell:
		return asRef(r.Spells.CardByID(id))
	case cards.KindCondition:
		return asRef(r.Conditions.CardByID(id))
	case cards.KindGate:
		return asRef(r.Gates.CardByID(id))
	case cards.KindClue:
		return asRef(r.Clues.CardByID(id))
	case cards.KindEncounter:
		return asRef(r.Encounters.CardByID(id))
	}
	return nil, false
}

// State exports every deck's piles keyed by kind.
func (r *Registry) State() map[cards.Kind]State {
	out := make(map[cards.Kind]State, len(cards.Kinds()))
	for kind, p := range r.piles() {
		out[kind] = p.State()
	}
	return out
}

// RestoreState rebuilds every deck from the snapshot. A dangling card id in
// any deck aborts the whole restore; decks already restored keep the new
// piles, so callers must treat an error as fatal for the session.
func (r *Registry) RestoreState(state map[cards.Kind]State) error {
	piles := r.piles()
	for _, kind := range cards.Kinds() {
		s, ok := state[kind]
		if !ok {
			continue
		}
		if err := piles[kind].RestoreState(s); err != nil {
			return fmt.Errorf("%s deck: %w", kind, err)
		}
	}
	return nil
}

// pileOps is the kind-agnostic slice of a deck used by the registry.
type pileOps interface {
	ShuffleDrawPile()
	State() State
	RestoreState(State) error
}

func (r *Registry) piles() map[cards.Kind]pileOps {
	return map[cards.Kind]pileOps{
		cards.KindAsset:     r.Assets,
		cards.KindSpell:     r.Spells,
		cards.KindCondition: r.Conditions,
		cards.KindGate:      r.Gates,
		cards.KindClue:      r.Clues,
		cards.KindEncounter: r.Encounters,
	}
}

// asRef erases a typed draw result to the Ref interface, keeping the absent
// flag and avoiding a non-nil interface around a nil pointer.
func asRef[T Ref](card T, ok bool) (Ref, bool) {
	if !ok {
		return nil, false
	}
	return card, true
}
