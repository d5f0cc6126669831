package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownRollType is returned when a persisted roll carries an unrecognised rollType
var ErrUnknownRollType = errors.New("unknown roll type")

// Rolls is an ordered room history, newest first. It encodes as a JSON array of
// flat roll objects discriminated by their rollType field.
type Rolls []Roll

type skillRollJSON struct {
	ID                string           `json:"id"`
	RoomID            string           `json:"roomId"`
	RollerNickname    string           `json:"rollerNickname"`
	Timestamp         int64            `json:"timestamp"`
	Modifier          int              `json:"modifier"`
	RollType          RollType         `json:"rollType"`
	DiceCount         int              `json:"diceCount"`
	Results           []SkillDieRoll   `json:"results"`
	TotalDiceRolled   int              `json:"totalDiceRolled"`
	CriticalThreshold int              `json:"criticalThreshold"`
	RollOutcomeState  RollOutcomeState `json:"rollOutcomeState"`
	IsCombatRoll      bool             `json:"isCombatRoll"`
}

type genericRollJSON struct {
	ID              string           `json:"id"`
	RoomID          string           `json:"roomId"`
	RollerNickname  string           `json:"rollerNickname"`
	Timestamp       int64            `json:"timestamp"`
	Modifier        int              `json:"modifier"`
	RollType        RollType         `json:"rollType"`
	SelectedDice    []string         `json:"selectedDice"`
	Results         []GenericDieRoll `json:"results"`
	TotalDiceRolled int              `json:"totalDiceRolled"`
}

// MarshalJSON encodes the roll with its rollType discriminant
func (r *SkillRoll) MarshalJSON() ([]byte, error) {
	return json.Marshal(skillRollJSON{
		ID:                r.ID,
		RoomID:            r.RoomID,
		RollerNickname:    r.RollerNickname,
		Timestamp:         r.Timestamp.UnixMilli(),
		Modifier:          r.Modifier,
		RollType:          RollTypeSkill,
		DiceCount:         r.DiceCount,
		Results:           r.Results,
		TotalDiceRolled:   r.TotalDiceRolled,
		CriticalThreshold: r.CriticalThreshold,
		RollOutcomeState:  r.RollOutcomeState,
		IsCombatRoll:      r.IsCombatRoll,
	})
}

// UnmarshalJSON decodes a skill roll
func (r *SkillRoll) UnmarshalJSON(data []byte) error {
	var raw skillRollJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.RollType != RollTypeSkill {
		return fmt.Errorf("%w: expected %q, got %q", ErrUnknownRollType, RollTypeSkill, raw.RollType)
	}

	*r = SkillRoll{
		RollBase: RollBase{
			ID:             raw.ID,
			RoomID:         raw.RoomID,
			RollerNickname: raw.RollerNickname,
			Timestamp:      time.UnixMilli(raw.Timestamp).UTC(),
			Modifier:       raw.Modifier,
		},
		DiceCount:         raw.DiceCount,
		Results:           raw.Results,
		TotalDiceRolled:   raw.TotalDiceRolled,
		CriticalThreshold: raw.CriticalThreshold,
		RollOutcomeState:  raw.RollOutcomeState,
		IsCombatRoll:      raw.IsCombatRoll,
	}
	return nil
}

// MarshalJSON encodes the roll with its rollType discriminant
func (r *GenericRoll) MarshalJSON() ([]byte, error) {
	return json.Marshal(genericRollJSON{
		ID:              r.ID,
		RoomID:          r.RoomID,
		RollerNickname:  r.RollerNickname,
		Timestamp:       r.Timestamp.UnixMilli(),
		Modifier:        r.Modifier,
		RollType:        RollTypeGeneric,
		SelectedDice:    r.SelectedDice,
		Results:         r.Results,
		TotalDiceRolled: r.TotalDiceRolled,
	})
}

// UnmarshalJSON decodes a generic roll
func (r *GenericRoll) UnmarshalJSON(data []byte) error {
	var raw genericRollJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.RollType != RollTypeGeneric {
		return fmt.Errorf("%w: expected %q, got %q", ErrUnknownRollType, RollTypeGeneric, raw.RollType)
	}

	*r = GenericRoll{
		RollBase: RollBase{
			ID:             raw.ID,
			RoomID:         raw.RoomID,
			RollerNickname: raw.RollerNickname,
			Timestamp:      time.UnixMilli(raw.Timestamp).UTC(),
			Modifier:       raw.Modifier,
		},
		SelectedDice:    raw.SelectedDice,
		Results:         raw.Results,
		TotalDiceRolled: raw.TotalDiceRolled,
	}
	return nil
}

// MarshalJSON encodes the history as an array; a nil history encodes as []
func (rs Rolls) MarshalJSON() ([]byte, error) {
	if rs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Roll(rs))
}

// UnmarshalJSON decodes a history, choosing each element's variant from its rollType.
// Any element that cannot be decoded fails the whole history.
func (rs *Rolls) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	out := make(Rolls, 0, len(raws))
	for i, raw := range raws {
		roll, err := UnmarshalRoll(raw)
		if err != nil {
			return fmt.Errorf("roll %d: %w", i, err)
		}
		out = append(out, roll)
	}

	*rs = out
	return nil
}

// UnmarshalRoll decodes a single roll object into its concrete variant
func UnmarshalRoll(data []byte) (Roll, error) {
	var probe struct {
		RollType RollType `json:"rollType"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.RollType {
	case RollTypeSkill:
		var roll SkillRoll
		if err := json.Unmarshal(data, &roll); err != nil {
			return nil, err
		}
		return &roll, nil
	case RollTypeGeneric:
		var roll GenericRoll
		if err := json.Unmarshal(data, &roll); err != nil {
			return nil, err
		}
		return &roll, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRollType, probe.RollType)
	}
}
