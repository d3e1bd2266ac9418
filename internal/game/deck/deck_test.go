package deck

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCard struct {
	id       string
	location string
}

func (c *testCard) CardID() string { return c.id }

func newTestDeck(t *testing.T, ids ...string) (*Deck[*testCard], map[string]*testCard) {
	t.Helper()
	db := make(map[string]*testCard, len(ids))
	for _, id := range ids {
		db[id] = &testCard{id: id}
	}
	lookup := func(id string) (*testCard, bool) {
		c, ok := db[id]
		return c, ok
	}
	return New(lookup, rand.New(rand.NewPCG(1, 2))), db
}

func cardsOf(db map[string]*testCard, ids ...string) []*testCard {
	out := make([]*testCard, len(ids))
	for i, id := range ids {
		out[i] = db[id]
	}
	return out
}

func TestDrawFromEmptyDeck(t *testing.T) {
	d, _ := newTestDeck(t)
	card, ok := d.Draw()
	assert.False(t, ok)
	assert.Nil(t, card)
}

func TestDrawReshufflesDiscardWhenEmpty(t *testing.T) {
	d, db := newTestDeck(t, "a", "b")
	d.Initialize(cardsOf(db, "a", "b"))

	first, ok := d.Draw()
	require.True(t, ok)
	second, ok := d.Draw()
	require.True(t, ok)
	assert.NotEqual(t, first.CardID(), second.CardID())

	_, ok = d.Draw()
	assert.False(t, ok, "deck should be exhausted")

	d.Discard(first)
	d.Discard(second)

	third, ok := d.Draw()
	require.True(t, ok, "discard pile should reshuffle into draw pile")
	fourth, ok := d.Draw()
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"a", "b"}, []string{third.CardID(), fourth.CardID()})

	_, ok = d.Draw()
	assert.False(t, ok)
}

func TestConservationAcrossOperations(t *testing.T) {
	d, db := newTestDeck(t, "a", "b", "c", "d", "e")
	d.Initialize(cardsOf(db, "a", "b", "c", "d", "e"))

	c1, ok := d.Draw()
	require.True(t, ok)
	d.Discard(c1)
	c2, ok := d.Draw()
	require.True(t, ok)
	d.RemoveFromGame(c2)

	s := d.State()
	total := len(s.DrawPile) + len(s.DiscardPile) + len(s.RemovedFromGame)
	assert.Equal(t, 5, total)

	seen := make(map[string]int)
	for _, pile := range [][]string{s.DrawPile, s.DiscardPile, s.RemovedFromGame} {
		for _, id := range pile {
			seen[id]++
		}
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "card %s appears in more than one pile", id)
	}
}

func TestRemovedCardsNeverReturn(t *testing.T) {
	d, db := newTestDeck(t, "a", "b")
	d.Initialize(cardsOf(db, "a", "b"))

	c, ok := d.Draw()
	require.True(t, ok)
	d.RemoveFromGame(c)

	// exhaust the deck; the removed card must not come back
	_, ok = d.Draw()
	require.True(t, ok)
	_, ok = d.Draw()
	assert.False(t, ok)
	assert.Len(t, d.State().RemovedFromGame, 1)
}

func TestDrawMatchingPreservesOrder(t *testing.T) {
	d, db := newTestDeck(t, "a", "b", "c", "d")
	db["b"].location = "city"

	// bypass Initialize to control the order exactly
	d.draw = cardsOf(db, "a", "b", "c", "d")

	card, ok := d.DrawMatching(func(c *testCard) bool { return c.location == "city" })
	require.True(t, ok)
	assert.Equal(t, "b", card.CardID())
	assert.Equal(t, []string{"a", "c", "d"}, d.State().DrawPile)
}

func TestDrawMatchingMissDoesNotReshuffle(t *testing.T) {
	d, db := newTestDeck(t, "a")
	d.Initialize(cardsOf(db, "a"))
	c, _ := d.Draw()
	d.Discard(c)

	_, ok := d.DrawMatching(func(*testCard) bool { return true })
	assert.False(t, ok)
	assert.Len(t, d.State().DiscardPile, 1, "miss must not touch the discard pile")
}

func TestPeekDoesNotMutate(t *testing.T) {
	d, db := newTestDeck(t, "a", "b", "c")
	d.draw = cardsOf(db, "a", "b", "c")

	top := d.Peek(2)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].CardID())
	assert.Equal(t, "c", top[1].CardID())
	assert.Equal(t, []string{"a", "b", "c"}, d.State().DrawPile)

	assert.Len(t, d.Peek(10), 3)
	assert.Empty(t, d.Peek(0))
}

func TestReturnToTopAndBottom(t *testing.T) {
	d, db := newTestDeck(t, "a", "b", "c")
	d.draw = cardsOf(db, "a")

	d.ReturnToTop(db["b"])
	d.ReturnToBottom(db["c"])
	assert.Equal(t, []string{"c", "a", "b"}, d.State().DrawPile)

	card, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, "b", card.CardID(), "top of deck is the last returned-to-top card")
}

func TestShuffleLeavesInputUntouched(t *testing.T) {
	d, db := newTestDeck(t, "a", "b", "c", "d", "e", "f")
	in := cardsOf(db, "a", "b", "c", "d", "e", "f")
	out := d.Shuffle(in)

	assert.Equal(t, "a", in[0].CardID())
	assert.Len(t, out, len(in))
	assert.ElementsMatch(t, in, out)
}

func TestCardByID(t *testing.T) {
	d, _ := newTestDeck(t, "a")
	card, ok := d.CardByID("a")
	require.True(t, ok)
	assert.Equal(t, "a", card.CardID())

	_, ok = d.CardByID("zz")
	assert.False(t, ok)
}

func TestRestoreStateRoundTrip(t *testing.T) {
	d, db := newTestDeck(t, "a", "b", "c")
	d.draw = cardsOf(db, "a")
	d.discard = cardsOf(db, "b")
	d.removed = cardsOf(db, "c")

	s := d.State()

	d2, _ := newTestDeck(t, "a", "b", "c")
	require.NoError(t, d2.RestoreState(s))
	assert.Equal(t, s, d2.State())
}

func TestRestoreStateUnknownCardFails(t *testing.T) {
	d, db := newTestDeck(t, "a")
	d.Initialize(cardsOf(db, "a"))

	err := d.RestoreState(State{DrawPile: []string{"a", "ghost"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCardNotFound)
	// the deck keeps its previous piles on failure
	assert.Equal(t, []string{"a"}, d.State().DrawPile)
}
