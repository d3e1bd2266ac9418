package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/omenworks/omen-engine-go/internal/game/cards"
	"github.com/omenworks/omen-engine-go/internal/game/deck"
	"github.com/omenworks/omen-engine-go/internal/game/encounter"
	"github.com/omenworks/omen-engine-go/internal/game/gamelog"
	"github.com/omenworks/omen-engine-go/internal/game/players"
	"github.com/omenworks/omen-engine-go/internal/game/rules"
)

// Snapshot is the full persisted state of a session: pile ids per deck, the
// board id lists, player records, the game log, and the pending encounter.
// Card bodies are rehydrated from the databases on restore.
type Snapshot struct {
	Turn             rules.Turn                `json:"turn"`
	Decks            map[cards.Kind]deck.State `json:"decks"`
	Market           []string                  `json:"market"`
	Clues            []string                  `json:"clues"`
	OpenGates        []string                  `json:"openGates"`
	Players          []players.State           `json:"players"`
	Log              []gamelog.Entry           `json:"log"`
	PendingEncounter *encounter.Pending        `json:"pendingEncounter"`
}

// Snapshot exports the whole session state.
func (e *Engine) Snapshot() Snapshot {
	var pending *encounter.Pending
	if p, ok := e.encounters.Pending(); ok {
		pending = &p
	}
	return Snapshot{
		Turn:             e.turns.Turn(),
		Decks:            e.decks.State(),
		Market:           e.market.IDs(),
		Clues:            e.clues.IDs(),
		OpenGates:        e.gates.IDs(),
		Players:          e.players.All(),
		Log:              e.log.Entries(),
		PendingEncounter: pending,
	}
}

// Restore replaces the session state from a snapshot. Deck restore is
// strict: a card id the databases no longer know aborts the whole restore
// before any other component is touched, because a mismatched database means
// nothing built on the decks can be trusted. The remaining components
// restore leniently, keeping unknown ids in their raw lists.
func (e *Engine) Restore(s Snapshot) error {
	if err := e.decks.RestoreState(s.Decks); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	e.turns.SetTurn(s.Turn)
	e.market.SetIDs(s.Market)
	e.clues.SetIDs(s.Clues)
	e.gates.SetIDs(s.OpenGates)
	e.players.Restore(s.Players)
	e.log.Replace(s.Log)
	e.encounters.SetPending(s.PendingEncounter)
	e.logger.Info("session restored", zap.String("session_id", e.id))
	return nil
}

// Checksum computes a deterministic digest of the snapshot, independent of
// map iteration order and log timestamps, so hosts can verify integrity
// across save and load.
func (s Snapshot) Checksum() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "TURN:%d|%s|%s|%s\n",
		s.Turn.Round, s.Turn.Phase, s.Turn.LeadInvestigatorID, s.Turn.CurrentInvestigatorID)

	kinds := make([]string, 0, len(s.Decks))
	for kind := range s.Decks {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		d := s.Decks[cards.Kind(kind)]
		fmt.Fprintf(&buf, "DECK:%s|%v|%v|%v\n", kind, d.DrawPile, d.DiscardPile, d.RemovedFromGame)
	}

	fmt.Fprintf(&buf, "MARKET:%v\nCLUES:%v\nGATES:%v\n", s.Market, s.Clues, s.OpenGates)

	sorted := make([]players.State, len(s.Players))
	copy(sorted, s.Players)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, p := range sorted {
		fmt.Fprintf(&buf, "PLAYER:%s|%d|%d/%d|%d/%d|%s|%t|%t|%s|%v|%v|%v\n",
			p.ID, p.TurnOrder, p.Health, p.MaxHealth, p.Sanity, p.MaxSanity,
			p.LocationID, p.IsDefeated, p.IsEliminated, p.DeathReason,
			p.AssetIDs, p.ConditionIDs, p.ActionsTaken)
	}

	for _, entry := range s.Log {
		fmt.Fprintf(&buf, "LOG:%s\n", entry.Key)
	}

	if s.PendingEncounter != nil {
		fmt.Fprintf(&buf, "PENDING:%s|%s\n",
			s.PendingEncounter.PlayerID, s.PendingEncounter.EncounterID)
	}

	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
