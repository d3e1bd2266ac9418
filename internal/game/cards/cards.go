// Package cards holds the immutable card reference data for a game session.
// Cards are loaded once from static JSON and never mutated at runtime; every
// other component refers to them by id.
package cards

// Kind identifies a card type and keys its deck and database.
type Kind string

const (
	KindAsset     Kind = "asset"
	KindSpell     Kind = "spell"
	KindCondition Kind = "condition"
	KindGate      Kind = "gate"
	KindClue      Kind = "clue"
	KindEncounter Kind = "encounter"
)

// Kinds lists every card kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindAsset, KindSpell, KindCondition, KindGate, KindClue, KindEncounter}
}

// Card is the reference data shared by every card kind.
type Card struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Text    string `json:"text,omitempty"`
	Kind    Kind   `json:"type"`
	GameSet string `json:"gameSet"`
}

// CardID implements deck.Ref for every card type embedding Card.
func (c Card) CardID() string { return c.ID }

// CardName returns the display name.
func (c Card) CardName() string { return c.Name }

// Skill names one of the five investigator skills.
type Skill string

const (
	SkillLore        Skill = "lore"
	SkillInfluence   Skill = "influence"
	SkillObservation Skill = "observation"
	SkillStrength    Skill = "strength"
	SkillWill        Skill = "will"
)

// SkillSet maps skill names to base values.
type SkillSet map[Skill]int

// Tag categorizes assets for effects like "take an asset with tag X".
type Tag string

const (
	TagWeapon   Tag = "weapon"
	TagTrinket  Tag = "trinket"
	TagItem     Tag = "item"
	TagMagical  Tag = "magical"
	TagRelic    Tag = "relic"
	TagAlly     Tag = "ally"
	TagService  Tag = "service"
	TagTeamwork Tag = "teamwork"
)

// Asset is a purchasable item card sourced from the market.
type Asset struct {
	Card
	Cost int   `json:"cost"`
	Tags []Tag `json:"tags,omitempty"`
}

// Spell is a castable card held in a player's inventory.
type Spell struct {
	Card
	Charges int `json:"charges,omitempty"`
}

// Condition is a lingering status attached to a player.
type Condition struct {
	Card
	ConditionType string `json:"conditionType,omitempty"`
}

// GateColor distinguishes gate cards for mythos effects.
type GateColor string

// Gate is a portal card placed on the board when drawn.
type Gate struct {
	Card
	Location string    `json:"location"`
	Color    GateColor `json:"color"`
}

// Clue is a token card placed on the board when drawn.
type Clue struct {
	Card
	Location string `json:"location,omitempty"`
}

// SkillTest is the optional skill check printed on an encounter card.
type SkillTest struct {
	Skill    Skill `json:"skill"`
	Modifier int   `json:"modifier"`
}

// Encounter is a location-typed card carrying nested effect trees for the
// success and failure outcomes. Either tree may be absent.
type Encounter struct {
	Card
	LocationType   string       `json:"locationType"`
	Test           *SkillTest   `json:"test,omitempty"`
	SuccessEffects *EffectGroup `json:"successEffects,omitempty"`
	FailureEffects *EffectGroup `json:"failureEffects,omitempty"`
}
