package models

import (
	"time"
)

// MacroType discriminates the request a macro replays
type MacroType string

const (
	// MacroTypeSkill replays a skill roll request
	MacroTypeSkill MacroType = "skill"

	// MacroTypeGeneric replays a generic roll request
	MacroTypeGeneric MacroType = "generic"
)

// SkillMacro holds the request parameters of a skill macro
type SkillMacro struct {
	DiceCount         int  `json:"diceCount"`
	Modifier          int  `json:"modifier"`
	CriticalThreshold int  `json:"criticalThreshold"`
	IsCombatRoll      bool `json:"isCombatRoll"`
}

// GenericMacro holds the request parameters of a generic macro
type GenericMacro struct {
	SelectedDice []string `json:"selectedDice"`
	Modifier     int      `json:"modifier"`
}

// Macro is a named roll preset owned by a player. Exactly one of Skill or
// Generic is set, matching MacroType.
type Macro struct {
	// ID is the unique identifier for the macro
	ID string `json:"id"`

	// OwnerID is the player the macro belongs to
	OwnerID string `json:"ownerId"`

	// Name is the label shown to the player
	Name string `json:"name"`

	// MacroType selects which request payload is set
	MacroType MacroType `json:"macroType"`

	Skill   *SkillMacro   `json:"skill,omitempty"`
	Generic *GenericMacro `json:"generic,omitempty"`

	// UpdatedAt is when the macro was last saved
	UpdatedAt time.Time `json:"updatedAt"`
}
