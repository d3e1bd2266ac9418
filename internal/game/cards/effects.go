package cards

import (
	"encoding/json"
	"fmt"
)

// EffectGroupType says how the effects in a group combine: the player picks
// exactly one ("oneOf") or applies any number ("anyOf").
type EffectGroupType string

const (
	EffectOneOf EffectGroupType = "oneOf"
	EffectAnyOf EffectGroupType = "anyOf"
)

// EffectGroup is the effect tree attached to an encounter outcome. The engine
// only selects the tree; applying its effects is the host's job.
type EffectGroup struct {
	Type    EffectGroupType `json:"type"`
	Effects []Effect        `json:"effects"`
}

// EffectType tags one variant of the closed effect set.
type EffectType string

const (
	EffectLoseHealth           EffectType = "loseHealth"
	EffectHealHealth           EffectType = "healHealth"
	EffectLoseSanity           EffectType = "loseSanity"
	EffectHealSanity           EffectType = "healSanity"
	EffectTakeRandomAsset      EffectType = "takeRandomAsset"
	EffectTakeAssetFromReserve EffectType = "takeAssetFromReserve"
	EffectPlaceClue            EffectType = "placeClue"
	EffectImproveSkill         EffectType = "improveSkill"
	EffectTakeSpell            EffectType = "takeSpell"
	EffectTakeArtifact         EffectType = "takeArtifact"
	EffectMoveToAdjacent       EffectType = "moveToAdjacentLocation"
	EffectAddCondition         EffectType = "addCondition"
)

var knownEffectTypes = map[EffectType]bool{
	EffectLoseHealth:           true,
	EffectHealHealth:           true,
	EffectLoseSanity:           true,
	EffectHealSanity:           true,
	EffectTakeRandomAsset:      true,
	EffectTakeAssetFromReserve: true,
	EffectPlaceClue:            true,
	EffectImproveSkill:         true,
	EffectTakeSpell:            true,
	EffectTakeArtifact:         true,
	EffectMoveToAdjacent:       true,
	EffectAddCondition:         true,
}

// Effect is one tagged variant of the effect set. Which payload fields are
// meaningful depends on Type; unused fields stay zero.
type Effect struct {
	Type          EffectType `json:"type"`
	Amount        int        `json:"amount,omitempty"`
	Count         int        `json:"count,omitempty"`
	Skill         Skill      `json:"skill,omitempty"`
	AssetTag      Tag        `json:"assetTag,omitempty"`
	ConditionType string     `json:"conditionType,omitempty"`
}

// UnmarshalJSON rejects effect tags outside the closed set so a typo in card
// data fails at load time instead of silently producing a no-op effect.
func (e *Effect) UnmarshalJSON(data []byte) error {
	type alias Effect
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if !knownEffectTypes[a.Type] {
		return fmt.Errorf("unknown effect type %q", a.Type)
	}
	*e = Effect(a)
	return nil
}
