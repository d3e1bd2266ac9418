// Package rules drives turn and phase progression: the cyclic
// Action → Encounter → Mythos sequence, the round counter, and the lead and
// current investigator rotation.
package rules

import (
	"go.uber.org/zap"

	"github.com/omenworks/omen-engine-go/internal/game/gamelog"
)

// Phase is one of the three phases of a round.
type Phase string

const (
	PhaseAction    Phase = "Action"
	PhaseEncounter Phase = "Encounter"
	PhaseMythos    Phase = "Mythos"
)

// Turn is the whole-session turn state: round counter, phase, and the two
// investigator pointers.
type Turn struct {
	Round                 int    `json:"round"`
	Phase                 Phase  `json:"phase"`
	LeadInvestigatorID    string `json:"leadInvestigatorId"`
	CurrentInvestigatorID string `json:"currentInvestigatorId"`
}

// Roster is the slice of the player registry the turn machine needs: turn
// ordering and the phase-boundary action reset.
type Roster interface {
	FirstID() (string, bool)
	NextAfter(id string) (string, bool)
	Contains(id string) bool
	ResetActions()
}

// TurnManager is the sole writer of the turn state. Phases cycle forever;
// there is no terminal phase.
type TurnManager struct {
	logger *zap.Logger
	log    *gamelog.Log
	roster Roster
	turn   Turn
}

// NewTurnManager starts at round 1, Action phase, with the first player in
// turn order as both lead and current investigator.
func NewTurnManager(roster Roster, log *gamelog.Log, logger *zap.Logger) *TurnManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	lead, _ := roster.FirstID()
	return &TurnManager{
		logger: logger,
		log:    log,
		roster: roster,
		turn: Turn{
			Round:                 1,
			Phase:                 PhaseAction,
			LeadInvestigatorID:    lead,
			CurrentInvestigatorID: lead,
		},
	}
}

// NextPhase advances the phase cycle and applies its side effects:
//
//	Action    → Encounter  current := lead; actions reset
//	Encounter → Mythos     current := lead
//	Mythos    → Action     round++; lead advances one seat; current := lead;
//	                       actions reset
func (tm *TurnManager) NextPhase() {
	switch tm.turn.Phase {
	case PhaseAction:
		tm.turn.Phase = PhaseEncounter
		tm.turn.CurrentInvestigatorID = tm.turn.LeadInvestigatorID
		tm.roster.ResetActions()
		tm.log.Record(gamelog.KeyPhaseSetEncounter, nil)
	case PhaseEncounter:
		tm.turn.Phase = PhaseMythos
		tm.turn.CurrentInvestigatorID = tm.turn.LeadInvestigatorID
		tm.log.Record(gamelog.KeyPhaseSetMythos, nil)
	case PhaseMythos:
		tm.turn.Phase = PhaseAction
		tm.turn.Round++
		if next, ok := tm.roster.NextAfter(tm.turn.LeadInvestigatorID); ok {
			tm.turn.LeadInvestigatorID = next
		}
		tm.turn.CurrentInvestigatorID = tm.turn.LeadInvestigatorID
		tm.roster.ResetActions()
		tm.log.Record(gamelog.KeyRoundIncrement, gamelog.Params{"round": tm.turn.Round})
	}
	tm.logger.Debug("phase advanced",
		zap.String("phase", string(tm.turn.Phase)),
		zap.Int("round", tm.turn.Round),
	)
}

// NextInvestigator passes the current-investigator pointer one seat forward
// in turn order, wrapping cyclically. It reports false when the pointer does
// not name a known player.
func (tm *TurnManager) NextInvestigator() bool {
	prev := tm.turn.CurrentInvestigatorID
	next, ok := tm.roster.NextAfter(prev)
	if !ok {
		return false
	}
	tm.turn.CurrentInvestigatorID = next
	tm.log.Record(gamelog.KeyNextInvestigator, gamelog.Params{
		"currentInvestigatorId": prev,
	})
	return true
}

// PassLeadInvestigator hands the lead to the named player. Unknown ids are
// rejected with no state change.
func (tm *TurnManager) PassLeadInvestigator(playerID string) bool {
	if !tm.roster.Contains(playerID) {
		return false
	}
	tm.turn.LeadInvestigatorID = playerID
	tm.log.Record(gamelog.KeyPassLeadInvestigator, gamelog.Params{
		"playerId": playerID,
	})
	return true
}

// Turn returns a snapshot of the turn state.
func (tm *TurnManager) Turn() Turn {
	return tm.turn
}

// SetTurn replaces the turn state atomically, used on restore.
func (tm *TurnManager) SetTurn(turn Turn) {
	tm.turn = turn
}
