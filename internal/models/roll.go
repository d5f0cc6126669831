package models

import (
	"time"
)

// RollType discriminates the variants of a Roll
type RollType string

const (
	// RollTypeSkill is a rules-driven d10 pool roll
	RollTypeSkill RollType = "skill"

	// RollTypeGeneric is a free-form multi-die roll
	RollTypeGeneric RollType = "generic"
)

// RollOutcomeState classifies a skill roll. It is derived once when the roll is made.
type RollOutcomeState string

const (
	RollOutcomeNormal       RollOutcomeState = "normal"
	RollOutcomeBotch        RollOutcomeState = "botch"
	RollOutcomeFailure      RollOutcomeState = "failure"
	RollOutcomeCritical     RollOutcomeState = "critical"
	RollOutcomeTrueCritical RollOutcomeState = "trueCritical"
)

// IsValid reports whether the state is one of the known outcomes
func (s RollOutcomeState) IsValid() bool {
	switch s {
	case RollOutcomeNormal, RollOutcomeBotch, RollOutcomeFailure, RollOutcomeCritical, RollOutcomeTrueCritical:
		return true
	}
	return false
}

// SkillDieRoll is a single d10 of a skill roll
type SkillDieRoll struct {
	// Value is the face rolled, 1-10
	Value int `json:"value"`

	// IsPowerDie marks dice whose value drives the outcome classification
	IsPowerDie bool `json:"isPowerDie"`
}

// GenericDieRoll is a single die of a generic roll
type GenericDieRoll struct {
	// DieType is the requested die, e.g. "d20"
	DieType string `json:"dieType"`

	// Value is the face rolled, 1-N
	Value int `json:"value"`
}

// Roll is a persisted, immutable roll record. The concrete type is either
// *SkillRoll or *GenericRoll.
type Roll interface {
	// Base returns the fields shared by every roll variant
	Base() RollBase

	// Type returns the discriminant of the variant
	Type() RollType

	// DiceRolled returns the number of dice in the results
	DiceRolled() int

	isRoll()
}

// RollBase holds the fields shared by every roll variant
type RollBase struct {
	// ID is the unique identifier for the roll
	ID string

	// RoomID is the room the roll belongs to
	RoomID string

	// RollerNickname is the display name of the player who rolled
	RollerNickname string

	// Timestamp is when the roll was made
	Timestamp time.Time

	// Modifier is added to the dice total
	Modifier int
}

// SkillRoll is a roll made with the degrading d10 pool
type SkillRoll struct {
	RollBase

	// DiceCount is the requested pool size, not the number of dice rolled
	DiceCount int

	// Results are the dice in the order they were rolled
	Results []SkillDieRoll

	// TotalDiceRolled always equals len(Results)
	TotalDiceRolled int

	// CriticalThreshold is the minimum power die value that counts as a critical
	CriticalThreshold int

	// RollOutcomeState is the classification made at roll time
	RollOutcomeState RollOutcomeState

	// IsCombatRoll disables the explosive true critical scoring
	IsCombatRoll bool
}

// Base returns the shared roll fields
func (r *SkillRoll) Base() RollBase { return r.RollBase }

// Type returns RollTypeSkill
func (r *SkillRoll) Type() RollType { return RollTypeSkill }

// DiceRolled returns the number of dice rolled
func (r *SkillRoll) DiceRolled() int { return r.TotalDiceRolled }

func (r *SkillRoll) isRoll() {}

// GenericRoll is a free-form roll of any mix of dice
type GenericRoll struct {
	RollBase

	// SelectedDice are the requested die types in the order they were chosen
	SelectedDice []string

	// Results hold one entry per rolled die, in SelectedDice order
	Results []GenericDieRoll

	// TotalDiceRolled always equals len(Results)
	TotalDiceRolled int
}

// Base returns the shared roll fields
func (r *GenericRoll) Base() RollBase { return r.RollBase }

// Type returns RollTypeGeneric
func (r *GenericRoll) Type() RollType { return RollTypeGeneric }

// DiceRolled returns the number of dice rolled
func (r *GenericRoll) DiceRolled() int { return r.TotalDiceRolled }

func (r *GenericRoll) isRoll() {}
