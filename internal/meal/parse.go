package meal

import (
	"math"
	"strconv"
	"strings"
)

// Result is the outcome of parsing one message.
type Result struct {
	Items    []Item
	Calories float64
	Protein  float64
}

// Empty reports whether no line of the message parsed.
func (r Result) Empty() bool {
	return len(r.Items) == 0
}

// Parse converts a multi-line meal description into items and totals.
//
// Every line must read "<name> <kcal per 100> <protein per 100> <weight>".
// Lines that do not are skipped without error. Item values are rounded to
// two decimals before they are added to the totals, and the totals are
// rounded again after summation.
func Parse(text string) Result {
	var res Result
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		item, ok := parseLine(line)
		if !ok {
			continue
		}
		res.Items = append(res.Items, item)
		res.Calories += item.Calories
		res.Protein += item.Protein
	}
	res.Calories = Round(res.Calories, 2)
	res.Protein = Round(res.Protein, 2)
	return res
}

// CountLines returns the number of non-blank lines in text.
func CountLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func parseLine(line string) (Item, bool) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Item{}, false
	}

	kcal100, ok := parseQuantity(fields[1])
	if !ok {
		return Item{}, false
	}
	protein100, ok := parseQuantity(fields[2])
	if !ok {
		return Item{}, false
	}
	weight, ok := parseQuantity(fields[3])
	if !ok {
		return Item{}, false
	}

	return Item{
		Name:     fields[0],
		Calories: Round(kcal100*weight/100, 2),
		Protein:  Round(protein100*weight/100, 2),
	}, true
}

// parseQuantity accepts finite decimal numbers of either sign. Hex floats
// are rejected even though strconv reads them.
func parseQuantity(s string) (float64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
