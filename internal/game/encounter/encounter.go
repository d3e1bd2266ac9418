// Package encounter implements the pending-encounter protocol: at most one
// encounter is in flight per session, tying a player to a location-typed
// card draw until the facade clears the slot.
package encounter

import (
	"strings"

	"go.uber.org/zap"

	"github.com/omenworks/omen-engine-go/internal/game/cards"
	"github.com/omenworks/omen-engine-go/internal/game/deck"
	"github.com/omenworks/omen-engine-go/internal/game/gamelog"
)

// LocationType classifies a board location for encounter deck lookup.
type LocationType string

const (
	TypeCity        LocationType = "city"
	TypeOtherWorld  LocationType = "otherWorld"
	TypeExpedition  LocationType = "expedition"
	TypeMysticRuins LocationType = "mysticRuins"
	TypeGeneric     LocationType = "generic"
)

// ClassifyLocation maps a location id to its encounter type. Prefix rules
// are checked before the exact ones, in this order.
func ClassifyLocation(locationID string) LocationType {
	switch {
	case strings.HasPrefix(locationID, "city"):
		return TypeCity
	case strings.HasPrefix(locationID, "other"):
		return TypeOtherWorld
	case locationID == "expedition":
		return TypeExpedition
	case locationID == "mysticRuins":
		return TypeMysticRuins
	default:
		return TypeGeneric
	}
}

// Pending identifies the one encounter currently in flight.
type Pending struct {
	PlayerID    string `json:"playerId"`
	EncounterID string `json:"encounterId"`
}

// Protocol is the sole writer of the pending-encounter slot.
type Protocol struct {
	logger  *zap.Logger
	log     *gamelog.Log
	deck    *deck.Deck[*cards.Encounter]
	db      *cards.Database[*cards.Encounter]
	pending *Pending
}

// New builds an idle protocol over the encounter deck and database.
func New(d *deck.Deck[*cards.Encounter], db *cards.Database[*cards.Encounter], log *gamelog.Log, logger *zap.Logger) *Protocol {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Protocol{logger: logger, log: log, deck: d, db: db}
}

// Start draws the first encounter card matching locationType and marks it
// pending for the player. It returns nil with no state change when an
// encounter is already pending or no card of that type remains; both are
// normal outcomes the caller branches on.
func (p *Protocol) Start(playerID string, locationType LocationType) *cards.Encounter {
	if p.pending != nil {
		return nil
	}
	card, ok := p.deck.DrawMatching(func(c *cards.Encounter) bool {
		return c.LocationType == string(locationType)
	})
	if !ok {
		return nil
	}
	p.pending = &Pending{PlayerID: playerID, EncounterID: card.ID}
	p.log.Record(gamelog.KeyEncounterStart, gamelog.Params{
		"playerId":    playerID,
		"encounterId": card.ID,
	})
	return card
}

// Pending returns the in-flight encounter reference, if any.
func (p *Protocol) Pending() (Pending, bool) {
	if p.pending == nil {
		return Pending{}, false
	}
	return *p.pending, true
}

// SetPending replaces the slot directly, used on restore. A nil value clears
// it.
func (p *Protocol) SetPending(pending *Pending) {
	if pending == nil {
		p.pending = nil
		return
	}
	v := *pending
	p.pending = &v
}

// Clear frees the slot. The facade calls this after the effect tree from
// Resolve has been fully applied.
func (p *Protocol) Clear() {
	p.pending = nil
}

// Encounter resolves the pending encounter id back to the full card. It
// returns nil when idle or when the id no longer resolves.
func (p *Protocol) Encounter() *cards.Encounter {
	if p.pending == nil {
		return nil
	}
	card, ok := p.db.Get(p.pending.EncounterID)
	if !ok {
		return nil
	}
	p.log.Record(gamelog.KeyEncounterGet, gamelog.Params{
		"playerId":    p.pending.PlayerID,
		"encounterId": p.pending.EncounterID,
	})
	return card
}

// Resolve returns the effect tree for the given outcome of the pending
// encounter, or nil when idle, when the pending id no longer resolves, or
// when the card defines no tree for that branch. It deliberately leaves the
// slot pending so the caller can apply the effects before clearing.
func (p *Protocol) Resolve(success bool) *cards.EffectGroup {
	if p.pending == nil {
		return nil
	}
	card, ok := p.db.Get(p.pending.EncounterID)
	if !ok {
		p.logger.Warn("pending encounter missing from database",
			zap.String("encounter_id", p.pending.EncounterID))
		return nil
	}
	p.log.Record(gamelog.KeyEncounterResolve, gamelog.Params{
		"playerId":    p.pending.PlayerID,
		"encounterId": p.pending.EncounterID,
		"success":     success,
	})
	if success {
		return card.SuccessEffects
	}
	return card.FailureEffects
}
