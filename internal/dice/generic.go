package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rolltogether/internal/models"
)

// ErrInvalidDieType is returned for die type strings that are not "d<N>" with N >= 1
var ErrInvalidDieType = errors.New("invalid die type")

// maxNotationCount bounds the count prefix of a single notation token
const maxNotationCount = 100

// SupportedDieTypes are the die types offered to players, in display order
var SupportedDieTypes = []string{"d4", "d6", "d8", "d10", "d12", "d20", "d100"}

// IsSupportedDieType reports whether dieType is one of SupportedDieTypes
func IsSupportedDieType(dieType string) bool {
	for _, supported := range SupportedDieTypes {
		if dieType == supported {
			return true
		}
	}
	return false
}

// ParseDieType returns the side count encoded in a die type such as "d20"
func ParseDieType(dieType string) (int, error) {
	trimmed := strings.ToLower(strings.TrimSpace(dieType))
	if !strings.HasPrefix(trimmed, "d") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDieType, dieType)
	}

	sides, err := strconv.Atoi(trimmed[1:])
	if err != nil || sides < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDieType, dieType)
	}
	return sides, nil
}

// PerformGenericRoll rolls one die per selected die type, keeping the
// selection order. Entries that do not parse are skipped.
func PerformGenericRoll(roller Roller, selectedDice []string) []models.GenericDieRoll {
	results := make([]models.GenericDieRoll, 0, len(selectedDice))
	for _, dieType := range selectedDice {
		sides, err := ParseDieType(dieType)
		if err != nil {
			continue
		}
		results = append(results, models.GenericDieRoll{
			DieType: dieType,
			Value:   roller.Roll(sides),
		})
	}
	return results
}

// ExpandDiceNotation turns tokens such as "2d6", "d20" or "D8" into one
// entry per die, e.g. ["d6", "d6", "d20", "d8"]. Tokens may be separated by
// spaces, commas or plus signs.
func ExpandDiceNotation(notation string) ([]string, error) {
	fields := strings.FieldsFunc(notation, func(r rune) bool {
		return r == ' ' || r == ',' || r == '+'
	})

	var dice []string
	for _, field := range fields {
		token := strings.ToLower(field)
		idx := strings.Index(token, "d")
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDieType, field)
		}

		count := 1
		if idx > 0 {
			n, err := strconv.Atoi(token[:idx])
			if err != nil || n < 1 || n > maxNotationCount {
				return nil, fmt.Errorf("%w: %q", ErrInvalidDieType, field)
			}
			count = n
		}

		dieType := token[idx:]
		if _, err := ParseDieType(dieType); err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			dice = append(dice, dieType)
		}
	}
	return dice, nil
}
