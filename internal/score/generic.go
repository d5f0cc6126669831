package score

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rolltogether/internal/models"
)

// DieCount is how many dice of one type were requested
type DieCount struct {
	DieType string
	Count   int
}

// DieValues are the values rolled for one die type, in roll order
type DieValues struct {
	DieType string
	Values  []int
}

// GenericTotal is the displayed total of a generic roll with display summaries
type GenericTotal struct {
	// Total is the sum of every die plus the modifier
	Total int

	// Requests groups the selected dice by type, in order of first appearance
	Requests []DieCount

	// Results groups the rolled values by type, in order of first appearance
	Results []DieValues
}

// CalculateGenericTotal sums every die of a generic roll
func CalculateGenericTotal(roll *models.GenericRoll) GenericTotal {
	total := roll.Modifier

	requests := []DieCount{}
	requestIndex := map[string]int{}
	for _, dieType := range roll.SelectedDice {
		i, ok := requestIndex[dieType]
		if !ok {
			i = len(requests)
			requestIndex[dieType] = i
			requests = append(requests, DieCount{DieType: dieType})
		}
		requests[i].Count++
	}

	results := []DieValues{}
	resultIndex := map[string]int{}
	for _, die := range roll.Results {
		total += die.Value

		i, ok := resultIndex[die.DieType]
		if !ok {
			i = len(results)
			resultIndex[die.DieType] = i
			results = append(results, DieValues{DieType: die.DieType})
		}
		results[i].Values = append(results[i].Values, die.Value)
	}

	return GenericTotal{
		Total:    total,
		Requests: requests,
		Results:  results,
	}
}

// RequestSummary renders the requested dice, e.g. "2d6 + 1d20"
func (t GenericTotal) RequestSummary() string {
	parts := make([]string, 0, len(t.Requests))
	for _, r := range t.Requests {
		parts = append(parts, fmt.Sprintf("%d%s", r.Count, r.DieType))
	}
	return strings.Join(parts, " + ")
}

// ResultSummary renders the rolled values, e.g. "d6: 4, 5 | d20: 17"
func (t GenericTotal) ResultSummary() string {
	parts := make([]string, 0, len(t.Results))
	for _, r := range t.Results {
		values := make([]string, len(r.Values))
		for i, v := range r.Values {
			values[i] = strconv.Itoa(v)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", r.DieType, strings.Join(values, ", ")))
	}
	return strings.Join(parts, " | ")
}
