// Package gamelog records the structured, append-only game event log. The
// log is domain data: it rides along in snapshots and is replaced wholesale
// on restore. Every append is mirrored to the operational logger at debug
// level so a session trace lines up with the game record.
package gamelog

import (
	"time"

	"go.uber.org/zap"
)

// Event keys, one constant per entry in the log taxonomy. The two
// "gameFlow."-cased keys are historical and kept as-is.
const (
	KeyMarketReplenish = "market.asset.replenish"
	KeyMarketBuy       = "market.asset.buy"
	KeyMarketDiscard   = "market.asset.discard"

	KeyClueDraw    = "clue.draw"
	KeyClueDiscard = "clue.discard"
	KeyGateDraw    = "gate.draw"
	KeyGateDiscard = "gate.discard"

	KeyPlayerInitialize   = "player.all.initialize"
	KeyPlayerActionRecord = "player.action.record"
	KeyPlayerResetActions = "player.all.resetActions"
	KeyPlayerMove         = "player.move"
	KeyPlayerHealHealth   = "player.healHealth"
	KeyPlayerLoseHealth   = "player.loseHealth"
	KeyPlayerDeathInjury  = "player.loseHealth.death"
	KeyPlayerHealSanity   = "player.healSanity"
	KeyPlayerLoseSanity   = "player.loseSanity"
	KeyPlayerDeathSanity  = "player.loseSanity.death"
	KeyPlayerModifySkill  = "player.modifySkill"
	KeyPlayerRestore      = "player.all.restore"

	KeyPhaseSetEncounter     = "gameflow.phase.set.encounter"
	KeyPhaseSetMythos        = "gameflow.phase.set.mythos"
	KeyRoundIncrement        = "gameflow.round.increment"
	KeyNextInvestigator      = "gameFlow.nextInvestigator"
	KeyPassLeadInvestigator  = "gameFlow.passLeadInvestigator"

	KeyEncounterStart   = "encounter.start"
	KeyEncounterGet     = "encounter.getEncounter"
	KeyEncounterResolve = "encounter.resolve"
)

// Params carries the structured payload of a log entry.
type Params map[string]any

// Entry is one immutable game log record.
type Entry struct {
	Key       string    `json:"key"`
	Params    Params    `json:"params,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is the append-only event record for one game session.
type Log struct {
	logger  *zap.Logger
	now     func() time.Time
	entries []Entry
}

// New builds an empty log. A nil logger disables the operational mirror.
func New(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger, now: time.Now}
}

// SetClock overrides the timestamp source. Tests use this for stable entries.
func (l *Log) SetClock(now func() time.Time) {
	l.now = now
}

// Record appends an entry with the current timestamp. A nil params map is
// stored as absent.
func (l *Log) Record(key string, params Params) {
	l.entries = append(l.entries, Entry{Key: key, Params: params, Timestamp: l.now()})
	l.logger.Debug("game event", zap.String("key", key), zap.Any("params", params))
}

// Entries returns a copy of the log in append order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of entries.
func (l *Log) Len() int { return len(l.entries) }

// Replace swaps the whole log for the given entries, used on restore.
func (l *Log) Replace(entries []Entry) {
	l.entries = make([]Entry, len(entries))
	copy(l.entries, entries)
}

// Clear drops every entry.
func (l *Log) Clear() {
	l.entries = nil
}
