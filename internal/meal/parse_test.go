package meal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TwoItems(t *testing.T) {
	res := Parse("яйца 157 12.7 125\nхлеб 265 8.1 50")

	require.Len(t, res.Items, 2)
	assert.Equal(t, Item{Name: "яйца", Calories: 196.25, Protein: 15.88}, res.Items[0])
	assert.Equal(t, Item{Name: "хлеб", Calories: 132.5, Protein: 4.05}, res.Items[1])
	assert.Equal(t, 328.75, res.Calories)
	assert.Equal(t, 19.93, res.Protein)
	assert.False(t, res.Empty())
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	res := Parse("яйца 157 12.7 125\nэто не еда")

	require.Len(t, res.Items, 1)
	assert.Equal(t, "яйца", res.Items[0].Name)
	assert.Equal(t, 196.25, res.Calories)
	assert.Equal(t, 15.88, res.Protein)
}

func TestParse_InvalidLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "яйца 157 12.7"},
		{"too many fields", "яйца варёные 157 12.7 125"},
		{"non-numeric calories", "яйца много 12.7 125"},
		{"non-numeric protein", "яйца 157 x 125"},
		{"non-numeric weight", "яйца 157 12.7 125г"},
		{"comma decimal", "яйца 157 12,7 125"},
		{"hex calories", "яйца 0x1p4 12.7 125"},
		{"signed hex weight", "яйца 157 12.7 -0X7D"},
		{"nan", "яйца NaN 12.7 125"},
		{"infinity", "яйца 157 Inf 125"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The valid neighbour must come through untouched.
			res := Parse(tt.line + "\nхлеб 265 8.1 50")
			require.Len(t, res.Items, 1)
			assert.Equal(t, "хлеб", res.Items[0].Name)
			assert.Equal(t, 132.5, res.Calories)
			assert.Equal(t, 4.05, res.Protein)
		})
	}
}

func TestParse_NegativeQuantities(t *testing.T) {
	res := Parse("поправка -100 0 100\nхлеб 265 8.1 50")

	require.Len(t, res.Items, 2)
	assert.Equal(t, Item{Name: "поправка", Calories: -100, Protein: 0}, res.Items[0])
	assert.Equal(t, 32.5, res.Calories)
	assert.Equal(t, 4.05, res.Protein)

	res = Parse("яйца 157 12.7 -125")
	require.Len(t, res.Items, 1)
	assert.Equal(t, -196.25, res.Items[0].Calories)
	assert.Equal(t, -15.88, res.Items[0].Protein)
}

func TestParse_EmptyAndGarbage(t *testing.T) {
	for _, input := range []string{"", "   \n\n  ", "garbage line", "a b c d"} {
		res := Parse(input)
		if !res.Empty() {
			t.Errorf("Parse(%q) items = %v, want none", input, res.Items)
		}
		if res.Calories != 0 || res.Protein != 0 {
			t.Errorf("Parse(%q) totals = (%v, %v), want zero", input, res.Calories, res.Protein)
		}
	}
}

func TestParse_WhitespaceTolerance(t *testing.T) {
	res := Parse("  \n\tяйца   157\t12.7  125  \r\n\nхлеб 265 8.1 50\n")

	require.Len(t, res.Items, 2)
	assert.Equal(t, "яйца", res.Items[0].Name)
	assert.Equal(t, "хлеб", res.Items[1].Name)
}

func TestParse_RoundsItemsBeforeSumming(t *testing.T) {
	// Each line yields 0.005 g protein, which rounds up to 0.01 per item.
	// Summing the unrounded values would give 0.01 instead of 0.02.
	res := Parse("соль 0 1 0.5\nперец 0 1 0.5")

	require.Len(t, res.Items, 2)
	assert.Equal(t, 0.01, res.Items[0].Protein)
	assert.Equal(t, 0.01, res.Items[1].Protein)
	assert.Equal(t, 0.02, res.Protein)
}

func TestParse_TotalsMatchRoundedItemSum(t *testing.T) {
	inputs := []string{
		"яйца 157 12.7 125\nхлеб 265 8.1 50",
		"гречка 343 12.6 73\nкурица 113 23.6 187\nмасло 748 0.5 11",
		"a 1.111 2.222 3.333\nb 4.444 5.555 6.666\nc 7.777 8.888 9.999",
	}

	for _, input := range inputs {
		res := Parse(input)
		var kcal, protein float64
		for _, it := range res.Items {
			kcal += it.Calories
			protein += it.Protein
		}
		assert.Equal(t, Round(kcal, 2), res.Calories, input)
		assert.Equal(t, Round(protein, 2), res.Protein, input)
	}
}

func TestCountLines(t *testing.T) {
	if got := CountLines("a\n\n  \nb\nc"); got != 3 {
		t.Errorf("CountLines() = %d, want 3", got)
	}
	if got := CountLines(""); got != 0 {
		t.Errorf("CountLines(\"\") = %d, want 0", got)
	}
}
