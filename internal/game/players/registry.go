package players

import (
	"slices"

	"go.uber.org/zap"

	"github.com/omenworks/omen-engine-go/internal/game/cards"
	"github.com/omenworks/omen-engine-go/internal/game/gamelog"
)

// Registry is the sole writer of player state for one session. All reads go
// through accessors returning copies, so no other component can mutate a
// player behind its back.
type Registry struct {
	logger     *zap.Logger
	log        *gamelog.Log
	maxActions int
	byID       map[string]*State
	order      []string // player ids sorted by TurnOrder ascending
}

// NewRegistry builds an empty registry. maxActions <= 0 selects the default
// budget; a nil logger is replaced with a no-op one.
func NewRegistry(log *gamelog.Log, logger *zap.Logger, maxActions int) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxActions <= 0 {
		maxActions = DefaultMaxActions
	}
	return &Registry{
		logger:     logger,
		log:        log,
		maxActions: maxActions,
		byID:       make(map[string]*State),
	}
}

// Initialize installs the given players sorted by turn order, clearing each
// one's action set.
func (r *Registry) Initialize(states []State) {
	sorted := make([]State, len(states))
	for i, s := range states {
		sorted[i] = s.clone()
		sorted[i].ActionsTaken = nil
	}
	sortByTurnOrder(sorted)

	r.byID = make(map[string]*State, len(sorted))
	r.order = r.order[:0]
	for i := range sorted {
		p := sorted[i]
		r.byID[p.ID] = &p
		r.order = append(r.order, p.ID)
	}
	r.log.Record(gamelog.KeyPlayerInitialize, gamelog.Params{"count": len(sorted)})
	r.logger.Info("players initialized", zap.Int("count", len(sorted)))
}

// Get returns a copy of the player's state.
func (r *Registry) Get(id string) (State, bool) {
	p, ok := r.byID[id]
	if !ok {
		return State{}, false
	}
	return p.clone(), true
}

// All returns copies of every player in turn order.
func (r *Registry) All() []State {
	out := make([]State, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].clone())
	}
	return out
}

// Contains reports whether id names a known player.
func (r *Registry) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// FirstID returns the id of the player with the lowest turn order.
func (r *Registry) FirstID() (string, bool) {
	if len(r.order) == 0 {
		return "", false
	}
	return r.order[0], true
}

// NextAfter returns the id of the player immediately following id in turn
// order, wrapping cyclically. It reports false for an unknown id or an empty
// registry.
func (r *Registry) NextAfter(id string) (string, bool) {
	i := slices.Index(r.order, id)
	if i < 0 {
		return "", false
	}
	return r.order[(i+1)%len(r.order)], true
}

// CanTakeAction reports whether the player may take one more action of the
// given type this phase: the action set is below the budget, the type has
// not been taken yet, and the player is still standing.
func (r *Registry) CanTakeAction(id, actionType string) bool {
	p, ok := r.byID[id]
	if !ok || p.IsDefeated {
		return false
	}
	return len(p.ActionsTaken) < r.maxActions && !slices.Contains(p.ActionsTaken, actionType)
}

// RecordAction adds actionType to the player's action set. It does not
// enforce the budget; callers check CanTakeAction first. Recording the same
// type twice is a no-op.
func (r *Registry) RecordAction(id, actionType string) {
	p, ok := r.byID[id]
	if !ok || p.IsDefeated || slices.Contains(p.ActionsTaken, actionType) {
		return
	}
	p.ActionsTaken = append(p.ActionsTaken, actionType)
	r.log.Record(gamelog.KeyPlayerActionRecord, gamelog.Params{
		"playerId":   id,
		"actionType": actionType,
	})
}

// ResetActions clears every player's action set at a phase boundary.
func (r *Registry) ResetActions() {
	for _, p := range r.byID {
		p.ActionsTaken = nil
	}
	r.log.Record(gamelog.KeyPlayerResetActions, nil)
}

// Move relocates the player, spending a "move" action. It fails when the
// player is unknown or the action budget refuses another move.
func (r *Registry) Move(id, locationID string) bool {
	if !r.CanTakeAction(id, "move") {
		return false
	}
	p := r.byID[id]
	from := p.LocationID
	p.LocationID = locationID
	r.RecordAction(id, "move")
	r.log.Record(gamelog.KeyPlayerMove, gamelog.Params{
		"playerId": id,
		"from":     from,
		"to":       locationID,
	})
	return true
}

// HealHealth raises health by amount, capped at max.
func (r *Registry) HealHealth(id string, amount int) bool {
	p, ok := r.mutable(id, amount)
	if !ok {
		return false
	}
	old := p.Health
	p.Health = clamp(p.Health+amount, 0, p.MaxHealth)
	r.log.Record(gamelog.KeyPlayerHealHealth, gamelog.Params{
		"playerId": id, "from": old, "to": p.Health,
	})
	return true
}

// LoseHealth lowers health by amount, floored at zero. Hitting zero defeats
// the player with an injury death.
func (r *Registry) LoseHealth(id string, amount int) bool {
	p, ok := r.mutable(id, amount)
	if !ok {
		return false
	}
	old := p.Health
	p.Health = clamp(p.Health-amount, 0, p.MaxHealth)
	r.log.Record(gamelog.KeyPlayerLoseHealth, gamelog.Params{
		"playerId": id, "from": old, "to": p.Health,
	})
	if p.Health == 0 {
		p.IsDefeated = true
		p.DeathReason = DeathByInjury
		r.log.Record(gamelog.KeyPlayerDeathInjury, gamelog.Params{"playerId": id})
		r.logger.Info("player defeated", zap.String("player_id", id), zap.String("reason", string(DeathByInjury)))
	}
	return true
}

// HealSanity raises sanity by amount, capped at max.
func (r *Registry) HealSanity(id string, amount int) bool {
	p, ok := r.mutable(id, amount)
	if !ok {
		return false
	}
	old := p.Sanity
	p.Sanity = clamp(p.Sanity+amount, 0, p.MaxSanity)
	r.log.Record(gamelog.KeyPlayerHealSanity, gamelog.Params{
		"playerId": id, "from": old, "to": p.Sanity,
	})
	return true
}

// LoseSanity lowers sanity by amount, floored at zero. Hitting zero defeats
// the player with a sanity death.
func (r *Registry) LoseSanity(id string, amount int) bool {
	p, ok := r.mutable(id, amount)
	if !ok {
		return false
	}
	old := p.Sanity
	p.Sanity = clamp(p.Sanity-amount, 0, p.MaxSanity)
	r.log.Record(gamelog.KeyPlayerLoseSanity, gamelog.Params{
		"playerId": id, "from": old, "to": p.Sanity,
	})
	if p.Sanity == 0 {
		p.IsDefeated = true
		p.DeathReason = DeathBySanity
		r.log.Record(gamelog.KeyPlayerDeathSanity, gamelog.Params{"playerId": id})
		r.logger.Info("player defeated", zap.String("player_id", id), zap.String("reason", string(DeathBySanity)))
	}
	return true
}

// ModifySkill adds delta to the named skill's modifier, clamped to the
// modifier bound.
func (r *Registry) ModifySkill(id string, skill cards.Skill, delta int) bool {
	p, ok := r.byID[id]
	if !ok {
		return false
	}
	if p.SkillModifiers == nil {
		p.SkillModifiers = make(map[cards.Skill]int)
	}
	p.SkillModifiers[skill] = clamp(p.SkillModifiers[skill]+delta, -skillModifierBound, skillModifierBound)
	r.log.Record(gamelog.KeyPlayerModifySkill, gamelog.Params{
		"playerId": id,
		"skill":    string(skill),
		"value":    p.SkillModifiers[skill],
	})
	return true
}

// Restore replaces the whole player set from a snapshot, bypassing the
// defeat guard. Turn order comes from the restored records.
func (r *Registry) Restore(states []State) {
	sorted := make([]State, len(states))
	for i, s := range states {
		sorted[i] = s.clone()
	}
	sortByTurnOrder(sorted)

	r.byID = make(map[string]*State, len(sorted))
	r.order = r.order[:0]
	for i := range sorted {
		p := sorted[i]
		r.byID[p.ID] = &p
		r.order = append(r.order, p.ID)
	}
	r.log.Record(gamelog.KeyPlayerRestore, gamelog.Params{"count": len(sorted)})
}

// mutable fetches the player for a stat change, rejecting unknown ids,
// non-positive amounts, and defeated players.
func (r *Registry) mutable(id string, amount int) (*State, bool) {
	p, ok := r.byID[id]
	if !ok || amount <= 0 || p.IsDefeated {
		return nil, false
	}
	return p, true
}
