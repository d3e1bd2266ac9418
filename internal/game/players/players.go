// Package players owns the per-player mutable state: stats, inventory
// references, the per-phase action budget, and the defeat transitions.
package players

import (
	"maps"
	"slices"
	"sort"

	"github.com/omenworks/omen-engine-go/internal/game/cards"
)

// DeathReason says what defeated a player.
type DeathReason string

const (
	DeathByInjury DeathReason = "injury"
	DeathBySanity DeathReason = "sanity"
)

// Default rule knobs, overridable through the registry constructor.
const (
	DefaultMaxActions = 2
	// skill modifiers are clamped to [-skillModifierBound, skillModifierBound]
	skillModifierBound = 2
)

// State is one player's mutable record. Health and sanity always stay in
// [0, max]; TurnOrder is assigned at init and stable for the session.
type State struct {
	ID             string              `json:"id"`
	UserID         string              `json:"userId"`
	InvestigatorID string              `json:"investigatorId"`
	TurnOrder      int                 `json:"turnOrder"`
	IsOnline       bool                `json:"isOnline"`
	Health         int                 `json:"health"`
	MaxHealth      int                 `json:"maxHealth"`
	Sanity         int                 `json:"sanity"`
	MaxSanity      int                 `json:"maxSanity"`
	LocationID     string              `json:"locationId"`
	AssetIDs       []string            `json:"assetIds"`
	ConditionIDs   []string            `json:"conditionIds"`
	ActionsTaken   []string            `json:"actionsTaken"`
	ClueCount      int                 `json:"clueCount"`
	FocusCount     int                 `json:"focusCount"`
	ResourceCount  int                 `json:"resourceCount"`
	IsDefeated     bool                `json:"isDefeated"`
	IsEliminated   bool                `json:"isEliminated"`
	DeathReason    DeathReason         `json:"deathReason,omitempty"`
	Skills         cards.SkillSet      `json:"skillSet,omitempty"`
	SkillModifiers map[cards.Skill]int `json:"skillModifiers,omitempty"`
}

func (s State) clone() State {
	s.AssetIDs = slices.Clone(s.AssetIDs)
	s.ConditionIDs = slices.Clone(s.ConditionIDs)
	s.ActionsTaken = slices.Clone(s.ActionsTaken)
	s.Skills = maps.Clone(s.Skills)
	s.SkillModifiers = maps.Clone(s.SkillModifiers)
	return s
}

func sortByTurnOrder(states []State) {
	sort.SliceStable(states, func(i, j int) bool {
		return states[i].TurnOrder < states[j].TurnOrder
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
