// Package score derives the displayed totals of roll records. Every function
// is a pure function of the record.
package score

import (
	"sort"

	"github.com/KirkDiggler/rolltogether/internal/models"
)

// SkillTotal is the displayed total of a skill roll and the dice summed into it
type SkillTotal struct {
	// Total is the sum of the contributing dice plus the modifier
	Total int

	// ContributingIndices are positions in Results, ascending and unique
	ContributingIndices []int
}

// Contributes reports whether the die at index was summed into the total
func (t SkillTotal) Contributes(index int) bool {
	for _, i := range t.ContributingIndices {
		if i == index {
			return true
		}
	}
	return false
}

type indexedDie struct {
	index int
	value int
}

// CalculateSkillTotal selects the contributing dice of a skill roll.
//
// A non-combat true critical sums the best power die with the lowest and the
// highest non-power dice. Every other roll picks dice by pool size: a single
// die below rank one, power die plus the worse of two backups at rank one,
// and best power die plus best non-power die from rank two up.
func CalculateSkillTotal(roll *models.SkillRoll) SkillTotal {
	if len(roll.Results) == 0 {
		return SkillTotal{Total: roll.Modifier, ContributingIndices: []int{}}
	}

	if roll.RollOutcomeState == models.RollOutcomeTrueCritical && !roll.IsCombatRoll {
		return explosiveTotal(roll)
	}

	switch {
	case roll.DiceCount <= 0:
		return newSkillTotal(roll.Modifier, roll.Results, 0)
	case roll.DiceCount == 1:
		return rankOneTotal(roll)
	default:
		return bestPairTotal(roll)
	}
}

func explosiveTotal(roll *models.SkillRoll) SkillTotal {
	power, plain := splitDice(roll.Results)

	var picked []int
	if best, ok := highestFirst(power); ok {
		picked = append(picked, best.index)
	}

	switch len(plain) {
	case 0:
	case 1:
		picked = append(picked, plain[0].index)
	default:
		picked = append(picked, lowestFirst(plain).index, highestLast(plain).index)
	}

	return newSkillTotal(roll.Modifier, roll.Results, picked...)
}

func rankOneTotal(roll *models.SkillRoll) SkillTotal {
	results := roll.Results
	if len(results) != 3 {
		all := make([]int, len(results))
		for i := range results {
			all[i] = i
		}
		return newSkillTotal(roll.Modifier, results, all...)
	}

	backup := 1
	if results[2].Value < results[1].Value {
		backup = 2
	}
	return newSkillTotal(roll.Modifier, results, 0, backup)
}

func bestPairTotal(roll *models.SkillRoll) SkillTotal {
	power, plain := splitDice(roll.Results)

	var picked []int
	if best, ok := highestFirst(power); ok {
		picked = append(picked, best.index)
	}
	if best, ok := highestFirst(plain); ok {
		picked = append(picked, best.index)
	}
	return newSkillTotal(roll.Modifier, roll.Results, picked...)
}

func newSkillTotal(modifier int, results []models.SkillDieRoll, indices ...int) SkillTotal {
	seen := make(map[int]bool, len(indices))
	unique := make([]int, 0, len(indices))
	total := modifier

	for _, i := range indices {
		if seen[i] {
			continue
		}
		seen[i] = true
		unique = append(unique, i)
		total += results[i].Value
	}

	sort.Ints(unique)
	return SkillTotal{Total: total, ContributingIndices: unique}
}

func splitDice(results []models.SkillDieRoll) (power, plain []indexedDie) {
	for i, die := range results {
		entry := indexedDie{index: i, value: die.Value}
		if die.IsPowerDie {
			power = append(power, entry)
		} else {
			plain = append(plain, entry)
		}
	}
	return power, plain
}

// highestFirst returns the first die holding the maximum value
func highestFirst(dice []indexedDie) (indexedDie, bool) {
	if len(dice) == 0 {
		return indexedDie{}, false
	}
	best := dice[0]
	for _, d := range dice[1:] {
		if d.value > best.value {
			best = d
		}
	}
	return best, true
}

// highestLast returns the last die holding the maximum value
func highestLast(dice []indexedDie) indexedDie {
	best := dice[0]
	for _, d := range dice[1:] {
		if d.value >= best.value {
			best = d
		}
	}
	return best
}

// lowestFirst returns the first die holding the minimum value
func lowestFirst(dice []indexedDie) indexedDie {
	low := dice[0]
	for _, d := range dice[1:] {
		if d.value < low.value {
			low = d
		}
	}
	return low
}
