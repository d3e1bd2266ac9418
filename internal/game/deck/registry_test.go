package deck

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omenworks/omen-engine-go/internal/game/cards"
)

func asset(id string) *cards.Asset {
	return &cards.Asset{Card: cards.Card{ID: id, Name: id, Kind: cards.KindAsset}}
}

func clue(id string) *cards.Clue {
	return &cards.Clue{Card: cards.Card{ID: id, Name: id, Kind: cards.KindClue}}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	dbs := &cards.Databases{
		Assets:     cards.NewDatabase([]*cards.Asset{asset("a1"), asset("a2")}),
		Spells:     cards.NewDatabase[*cards.Spell](nil),
		Conditions: cards.NewDatabase[*cards.Condition](nil),
		Gates:      cards.NewDatabase[*cards.Gate](nil),
		Clues:      cards.NewDatabase([]*cards.Clue{clue("c1")}),
		Encounters: cards.NewDatabase[*cards.Encounter](nil),
	}
	initial := InitialDecks{
		Assets: []*cards.Asset{asset("a1"), asset("a2")},
		Clues:  []*cards.Clue{clue("c1")},
	}
	return NewRegistry(dbs, initial, rand.New(rand.NewPCG(7, 7)))
}

func TestRegistryDrawByKind(t *testing.T) {
	r := testRegistry(t)

	card, ok := r.Draw(cards.KindClue)
	require.True(t, ok)
	assert.Equal(t, "c1", card.CardID())

	_, ok = r.Draw(cards.KindSpell)
	assert.False(t, ok, "empty deck draws nothing")

	_, ok = r.Draw(cards.Kind("bogus"))
	assert.False(t, ok)
}

func TestRegistryDiscardTypeChecked(t *testing.T) {
	r := testRegistry(t)

	card, ok := r.Draw(cards.KindAsset)
	require.True(t, ok)
	assert.True(t, r.Discard(cards.KindAsset, card))
	assert.Len(t, r.Assets.State().DiscardPile, 1)

	// a clue cannot be discarded into the asset deck
	assert.False(t, r.Discard(cards.KindAsset, clue("c1")))
}

func TestRegistryCardByID(t *testing.T) {
	r := testRegistry(t)

	card, ok := r.CardByID(cards.KindAsset, "a2")
	require.True(t, ok)
	assert.Equal(t, "a2", card.CardID())

	_, ok = r.CardByID(cards.KindAsset, "c1")
	assert.False(t, ok, "id resolution is per kind")
}

func TestRegistryShuffleUnknownKind(t *testing.T) {
	r := testRegistry(t)
	assert.True(t, r.Shuffle(cards.KindAsset))
	assert.False(t, r.Shuffle(cards.Kind("bogus")))
}

func TestRegistryStateRoundTrip(t *testing.T) {
	r := testRegistry(t)
	card, ok := r.Draw(cards.KindAsset)
	require.True(t, ok)
	require.True(t, r.Discard(cards.KindAsset, card))

	state := r.State()
	assert.Len(t, state, len(cards.Kinds()))

	r2 := testRegistry(t)
	require.NoError(t, r2.RestoreState(state))
	assert.Equal(t, state, r2.State())
}

func TestRegistryRestoreDanglingID(t *testing.T) {
	r := testRegistry(t)
	state := r.State()
	s := state[cards.KindAsset]
	s.DrawPile = append(s.DrawPile, "ghost")
	state[cards.KindAsset] = s

	err := r.RestoreState(state)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCardNotFound)
}
