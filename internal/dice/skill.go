package dice

import (
	"github.com/KirkDiggler/rolltogether/internal/models"
)

// SkillDieSides is the face count of every skill die
const SkillDieSides = 10

// skillPool returns how many dice a pool of diceCount rolls and which
// positions are power dice. Power positions never depend on rolled values.
func skillPool(diceCount int) (int, []int) {
	switch {
	case diceCount <= 0:
		return 1, nil
	case diceCount == 1:
		return 3, []int{0}
	case diceCount <= 4:
		return diceCount, []int{0}
	default:
		return diceCount, []int{0, 2}
	}
}

// PerformSkillRoll rolls the d10 pool for diceCount.
//
//	diceCount <= 0  1 die, no power die
//	diceCount == 1  3 dice, power die at 0
//	diceCount 2-4   diceCount dice, power die at 0
//	diceCount >= 5  diceCount dice, power dice at 0 and 2
//
// Any integer is accepted.
func PerformSkillRoll(roller Roller, diceCount int) []models.SkillDieRoll {
	numDice, powerPositions := skillPool(diceCount)

	results := make([]models.SkillDieRoll, numDice)
	for i := range results {
		results[i] = models.SkillDieRoll{
			Value:      roller.Roll(SkillDieSides),
			IsPowerDie: containsIndex(powerPositions, i),
		}
	}
	return results
}

// DetermineRollOutcome classifies a skill roll from its highest power die.
// A 10 is always a true critical. A botch needs the best power die to be a 1
// and a strict majority of all dice to be 1s.
func DetermineRollOutcome(results []models.SkillDieRoll, criticalThreshold int) models.RollOutcomeState {
	highest, ok := highestPowerValue(results)
	if !ok {
		return models.RollOutcomeNormal
	}

	switch {
	case highest == SkillDieSides:
		return models.RollOutcomeTrueCritical
	case highest >= criticalThreshold:
		return models.RollOutcomeCritical
	case highest == 1:
		ones := 0
		for _, die := range results {
			if die.Value == 1 {
				ones++
			}
		}
		if ones*2 > len(results) {
			return models.RollOutcomeBotch
		}
		return models.RollOutcomeFailure
	default:
		return models.RollOutcomeNormal
	}
}

func highestPowerValue(results []models.SkillDieRoll) (int, bool) {
	highest, found := 0, false
	for _, die := range results {
		if !die.IsPowerDie {
			continue
		}
		if !found || die.Value > highest {
			highest = die.Value
			found = true
		}
	}
	return highest, found
}

func containsIndex(indices []int, i int) bool {
	for _, idx := range indices {
		if idx == i {
			return true
		}
	}
	return false
}
