// Package game composes the session components behind one facade. The
// engine validates turn and phase, delegates every mutation to the owning
// component, and exposes the snapshot contract. All mutation is
// single-actor: components are not locked, and a host serving multiple
// actors must serialize commands upstream.
package game

import (
	"errors"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/omenworks/omen-engine-go/internal/game/cards"
	"github.com/omenworks/omen-engine-go/internal/game/collection"
	"github.com/omenworks/omen-engine-go/internal/game/deck"
	"github.com/omenworks/omen-engine-go/internal/game/encounter"
	"github.com/omenworks/omen-engine-go/internal/game/gamelog"
	"github.com/omenworks/omen-engine-go/internal/game/market"
	"github.com/omenworks/omen-engine-go/internal/game/players"
	"github.com/omenworks/omen-engine-go/internal/game/rules"
)

// Config carries the rule knobs the engine passes to its components.
type Config struct {
	MarketSize int
	MaxActions int
}

// Params bundles everything a new session needs.
type Params struct {
	Databases *cards.Databases
	Decks     deck.InitialDecks
	Players   []players.State
	Logger    *zap.Logger
	Rand      *rand.Rand
	Config    Config
}

// Engine is the game facade for one session.
type Engine struct {
	id         string
	logger     *zap.Logger
	log        *gamelog.Log
	dbs        *cards.Databases
	decks      *deck.Registry
	market     *market.Market
	players    *players.Registry
	turns      *rules.TurnManager
	encounters *encounter.Protocol
	clues      *collection.List[*cards.Clue]
	gates      *collection.List[*cards.Gate]
}

// NewEngine wires up a fresh session: players installed in turn order with
// the first as lead investigator, decks shuffled, market stocked.
func NewEngine(p Params) (*Engine, error) {
	if p.Databases == nil {
		return nil, errors.New("game: card databases are required")
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	log := gamelog.New(logger)
	decks := deck.NewRegistry(p.Databases, p.Decks, p.Rand)
	registry := players.NewRegistry(log, logger, p.Config.MaxActions)
	registry.Initialize(p.Players)

	e := &Engine{
		id:         uuid.NewString(),
		logger:     logger,
		log:        log,
		dbs:        p.Databases,
		decks:      decks,
		market:     market.New(decks.Assets, p.Databases.Assets, log, logger, p.Config.MarketSize),
		players:    registry,
		turns:      rules.NewTurnManager(registry, log, logger),
		encounters: encounter.New(decks.Encounters, p.Databases.Encounters, log, logger),
		clues:      collection.New(p.Databases.Clues.Get),
		gates:      collection.New(p.Databases.Gates.Get),
	}
	e.market.Replenish()
	logger.Info("session created",
		zap.String("session_id", e.id),
		zap.Int("players", len(p.Players)),
	)
	return e, nil
}

// ID returns the session id.
func (e *Engine) ID() string { return e.id }

// Log returns the game event log in append order.
func (e *Engine) Log() []gamelog.Entry { return e.log.Entries() }

// --- deck commands ---

// DrawCard draws the top card of the named kind's deck.
func (e *Engine) DrawCard(kind cards.Kind) (deck.Ref, bool) {
	card, ok := e.decks.Draw(kind)
	if ok {
		e.logger.Debug("card drawn", zap.String("kind", string(kind)), zap.String("card_id", card.CardID()))
	}
	return card, ok
}

// DiscardCard routes a card into its kind's discard pile.
func (e *Engine) DiscardCard(kind cards.Kind, card deck.Ref) bool {
	return e.decks.Discard(kind, card)
}

// ShuffleDeck reshuffles the named kind's draw pile.
func (e *Engine) ShuffleDeck(kind cards.Kind) bool {
	return e.decks.Shuffle(kind)
}

// CardByID resolves a card id through its kind's database.
func (e *Engine) CardByID(kind cards.Kind, id string) (deck.Ref, bool) {
	return e.decks.CardByID(kind, id)
}

// --- clue and gate boards ---

// DrawClue draws from the clue deck onto the board and returns the clue id.
func (e *Engine) DrawClue() (string, bool) {
	clue, ok := e.decks.Clues.Draw()
	if !ok {
		return "", false
	}
	e.clues.Add(clue.ID)
	e.log.Record(gamelog.KeyClueDraw, gamelog.Params{"clueId": clue.ID, "name": clue.Name})
	return clue.ID, true
}

// DiscardClue removes a clue from the board.
func (e *Engine) DiscardClue(id string) bool {
	if !e.clues.Remove(id) {
		return false
	}
	e.log.Record(gamelog.KeyClueDiscard, gamelog.Params{"clueId": id})
	return true
}

// Clues resolves the clues currently on the board.
func (e *Engine) Clues() []*cards.Clue { return e.clues.Resolve() }

// DrawGate draws from the gate deck onto the board and returns the gate id.
func (e *Engine) DrawGate() (string, bool) {
	gate, ok := e.decks.Gates.Draw()
	if !ok {
		return "", false
	}
	e.gates.Add(gate.ID)
	e.log.Record(gamelog.KeyGateDraw, gamelog.Params{"gateId": gate.ID, "name": gate.Name})
	return gate.ID, true
}

// CloseGate removes a gate from the board.
func (e *Engine) CloseGate(id string) bool {
	if !e.gates.Remove(id) {
		return false
	}
	e.log.Record(gamelog.KeyGateDiscard, gamelog.Params{"gateId": id})
	return true
}

// OpenGates resolves the gates currently open on the board.
func (e *Engine) OpenGates() []*cards.Gate { return e.gates.Resolve() }

// --- market commands ---

// ReplenishMarket tops the shop up from the asset deck.
func (e *Engine) ReplenishMarket() { e.market.Replenish() }

// BuyFromMarket purchases the named asset out of the shop.
func (e *Engine) BuyFromMarket(cardID string) *cards.Asset { return e.market.Buy(cardID) }

// DiscardAsset routes an asset into the asset deck's discard pile.
func (e *Engine) DiscardAsset(asset *cards.Asset) { e.market.Discard(asset) }

// MarketAssets resolves the assets currently for sale.
func (e *Engine) MarketAssets() []*cards.Asset { return e.market.Assets() }

// --- player commands ---

// Player returns a copy of one player's state.
func (e *Engine) Player(id string) (players.State, bool) { return e.players.Get(id) }

// Players returns copies of every player in turn order.
func (e *Engine) Players() []players.State { return e.players.All() }

// PlayerView is a player's state with its inventory references resolved to
// full cards. Dangling ids are dropped from the views only.
type PlayerView struct {
	players.State
	Assets     []*cards.Asset
	Conditions []*cards.Condition
}

// PlayerViewByID resolves one player's inventory.
func (e *Engine) PlayerViewByID(id string) (PlayerView, bool) {
	p, ok := e.players.Get(id)
	if !ok {
		return PlayerView{}, false
	}
	view := PlayerView{State: p}
	for _, assetID := range p.AssetIDs {
		if a, ok := e.dbs.Assets.Get(assetID); ok {
			view.Assets = append(view.Assets, a)
		}
	}
	for _, condID := range p.ConditionIDs {
		if c, ok := e.dbs.Conditions.Get(condID); ok {
			view.Conditions = append(view.Conditions, c)
		}
	}
	return view, true
}

// CanTakeAction asks the player registry whether the action budget allows
// one more action of this type.
func (e *Engine) CanTakeAction(playerID, actionType string) bool {
	return e.players.CanTakeAction(playerID, actionType)
}

// RecordAction marks an action as taken this phase.
func (e *Engine) RecordAction(playerID, actionType string) {
	e.players.RecordAction(playerID, actionType)
}

// ResetActions clears every player's action set.
func (e *Engine) ResetActions() { e.players.ResetActions() }

// MovePlayer relocates a player during the Action phase.
func (e *Engine) MovePlayer(playerID, locationID string) bool {
	if e.turns.Turn().Phase != rules.PhaseAction {
		return false
	}
	return e.players.Move(playerID, locationID)
}

// HealHealth raises a player's health, capped at max.
func (e *Engine) HealHealth(playerID string, amount int) bool {
	return e.players.HealHealth(playerID, amount)
}

// LoseHealth lowers a player's health, defeating them at zero.
func (e *Engine) LoseHealth(playerID string, amount int) bool {
	return e.players.LoseHealth(playerID, amount)
}

// HealSanity raises a player's sanity, capped at max.
func (e *Engine) HealSanity(playerID string, amount int) bool {
	return e.players.HealSanity(playerID, amount)
}

// LoseSanity lowers a player's sanity, defeating them at zero.
func (e *Engine) LoseSanity(playerID string, amount int) bool {
	return e.players.LoseSanity(playerID, amount)
}

// ModifySkill adjusts a player's skill modifier within its bound.
func (e *Engine) ModifySkill(playerID string, skill cards.Skill, delta int) bool {
	return e.players.ModifySkill(playerID, skill, delta)
}

// --- turn commands ---

// Turn returns the turn state snapshot.
func (e *Engine) Turn() rules.Turn { return e.turns.Turn() }

// NextPhase advances the phase cycle.
func (e *Engine) NextPhase() { e.turns.NextPhase() }

// NextInvestigator advances the current-investigator pointer one seat.
func (e *Engine) NextInvestigator() bool { return e.turns.NextInvestigator() }

// PassLeadInvestigator hands the lead to the named player.
func (e *Engine) PassLeadInvestigator(playerID string) bool {
	return e.turns.PassLeadInvestigator(playerID)
}

// --- encounter commands ---

// EncounterTypeFor classifies the player's current location for encounter
// deck lookup.
func (e *Engine) EncounterTypeFor(playerID string) (encounter.LocationType, bool) {
	p, ok := e.players.Get(playerID)
	if !ok {
		return "", false
	}
	return encounter.ClassifyLocation(p.LocationID), true
}

// StartEncounter begins an encounter for the player during the Encounter
// phase. It returns nil when out of phase, when one is already pending, or
// when the encounter deck holds no card of that type.
func (e *Engine) StartEncounter(playerID string, locationType encounter.LocationType) *cards.Encounter {
	if e.turns.Turn().Phase != rules.PhaseEncounter {
		return nil
	}
	if !e.players.Contains(playerID) {
		return nil
	}
	return e.encounters.Start(playerID, locationType)
}

// PendingEncounter returns the in-flight encounter reference, if any.
func (e *Engine) PendingEncounter() (encounter.Pending, bool) {
	return e.encounters.Pending()
}

// GetEncounter resolves the pending encounter back to its card.
func (e *Engine) GetEncounter() *cards.Encounter { return e.encounters.Encounter() }

// ResolveEncounter returns the effect tree for the outcome without clearing
// the pending slot; call ClearEncounter once the effects are applied.
func (e *Engine) ResolveEncounter(success bool) *cards.EffectGroup {
	return e.encounters.Resolve(success)
}

// ClearEncounter frees the pending-encounter slot.
func (e *Engine) ClearEncounter() { e.encounters.Clear() }
