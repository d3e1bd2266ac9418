package encounter

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/omenworks/omen-engine-go/internal/game/cards"
	"github.com/omenworks/omen-engine-go/internal/game/deck"
	"github.com/omenworks/omen-engine-go/internal/game/gamelog"
)

func cityEncounter(id string) *cards.Encounter {
	return &cards.Encounter{
		Card:         cards.Card{ID: id, Name: "Encounter " + id, Kind: cards.KindEncounter},
		LocationType: string(TypeCity),
		SuccessEffects: &cards.EffectGroup{
			Type:    cards.EffectOneOf,
			Effects: []cards.Effect{{Type: cards.EffectHealHealth, Amount: 1}},
		},
		FailureEffects: &cards.EffectGroup{
			Type:    cards.EffectOneOf,
			Effects: []cards.Effect{{Type: cards.EffectLoseSanity, Amount: 2}},
		},
	}
}

func newTestProtocol(t *testing.T, encounters ...*cards.Encounter) (*Protocol, *gamelog.Log, *deck.Deck[*cards.Encounter]) {
	t.Helper()
	db := cards.NewDatabase(encounters)
	d := deck.New(db.Get, rand.New(rand.NewPCG(5, 5)))
	d.Initialize(encounters)
	log := gamelog.New(nil)
	return New(d, db, log, zaptest.NewLogger(t)), log, d
}

func TestClassifyLocation(t *testing.T) {
	tests := []struct {
		locationID string
		want       LocationType
	}{
		{"city-arkham", TypeCity},
		{"cityOfTheGreatRace", TypeCity},
		{"otherWorld-yuggoth", TypeOtherWorld},
		{"other", TypeOtherWorld},
		{"expedition", TypeExpedition},
		{"expedition-amazon", TypeGeneric},
		{"mysticRuins", TypeMysticRuins},
		{"", TypeGeneric},
		{"train-depot", TypeGeneric},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyLocation(tt.locationID), "location %q", tt.locationID)
	}
}

func TestStartMarksPending(t *testing.T) {
	p, log, d := newTestProtocol(t, cityEncounter("e1"))

	card := p.Start("p1", TypeCity)
	require.NotNil(t, card)
	assert.Equal(t, "e1", card.ID)
	assert.Empty(t, d.State().DrawPile)

	pending, ok := p.Pending()
	require.True(t, ok)
	assert.Equal(t, Pending{PlayerID: "p1", EncounterID: "e1"}, pending)

	entry := log.Entries()[log.Len()-1]
	assert.Equal(t, gamelog.KeyEncounterStart, entry.Key)
	assert.Equal(t, "p1", entry.Params["playerId"])
}

func TestStartRefusedWhilePending(t *testing.T) {
	p, _, d := newTestProtocol(t, cityEncounter("e1"), cityEncounter("e2"))

	require.NotNil(t, p.Start("p1", TypeCity))
	piles := d.State()

	// the second start must not even draw
	assert.Nil(t, p.Start("p2", TypeCity))
	assert.Equal(t, piles, d.State())

	pending, _ := p.Pending()
	assert.Equal(t, "p1", pending.PlayerID)
}

func TestStartNoMatchingCard(t *testing.T) {
	p, log, _ := newTestProtocol(t, cityEncounter("e1"))

	assert.Nil(t, p.Start("p1", TypeExpedition))
	_, ok := p.Pending()
	assert.False(t, ok)
	assert.Zero(t, log.Len())
}

func TestResolveLeavesSlotPending(t *testing.T) {
	p, log, _ := newTestProtocol(t, cityEncounter("e1"))
	require.NotNil(t, p.Start("p1", TypeCity))

	effects := p.Resolve(true)
	require.NotNil(t, effects)
	assert.Equal(t, cards.EffectHealHealth, effects.Effects[0].Type)

	_, ok := p.Pending()
	assert.True(t, ok, "resolve must not clear the slot")

	entry := log.Entries()[log.Len()-1]
	assert.Equal(t, gamelog.KeyEncounterResolve, entry.Key)
	assert.Equal(t, true, entry.Params["success"])

	failure := p.Resolve(false)
	require.NotNil(t, failure)
	assert.Equal(t, cards.EffectLoseSanity, failure.Effects[0].Type)

	p.Clear()
	_, ok = p.Pending()
	assert.False(t, ok)
}

func TestResolveWhileIdle(t *testing.T) {
	p, _, _ := newTestProtocol(t, cityEncounter("e1"))
	assert.Nil(t, p.Resolve(true))
	assert.Nil(t, p.Encounter())
}

func TestResolveMissingBranch(t *testing.T) {
	e := cityEncounter("e1")
	e.FailureEffects = nil
	p, _, _ := newTestProtocol(t, e)
	require.NotNil(t, p.Start("p1", TypeCity))

	assert.Nil(t, p.Resolve(false))
	_, ok := p.Pending()
	assert.True(t, ok)
}

func TestResolveDanglingEncounterID(t *testing.T) {
	p, log, _ := newTestProtocol(t, cityEncounter("e1"))
	p.SetPending(&Pending{PlayerID: "p1", EncounterID: "ghost"})

	before := log.Len()
	assert.Nil(t, p.Resolve(true))
	assert.Nil(t, p.Encounter())
	assert.Equal(t, before, log.Len())
}

func TestEncounterResolvesPendingCard(t *testing.T) {
	p, log, _ := newTestProtocol(t, cityEncounter("e1"))
	require.NotNil(t, p.Start("p1", TypeCity))

	card := p.Encounter()
	require.NotNil(t, card)
	assert.Equal(t, "e1", card.ID)
	assert.Equal(t, gamelog.KeyEncounterGet, log.Entries()[log.Len()-1].Key)
}

func TestSetPendingCopiesAndClears(t *testing.T) {
	p, _, _ := newTestProtocol(t, cityEncounter("e1"))

	in := &Pending{PlayerID: "p1", EncounterID: "e1"}
	p.SetPending(in)
	in.PlayerID = "mutated"

	pending, ok := p.Pending()
	require.True(t, ok)
	assert.Equal(t, "p1", pending.PlayerID)

	p.SetPending(nil)
	_, ok = p.Pending()
	assert.False(t, ok)
}
