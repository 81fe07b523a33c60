package calculation

import (
	"testing"

	"github.com/rgehrsitz/carecalc/internal/dataset"
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondaryCeiling(t *testing.T) {
	rule := dataset.SecondaryCeilingRule{Base: dec("4800"), CutoverYear: 2569}
	table := NewIndexTable(2541, map[int]decimal.Decimal{
		2568: dec("1.5"),
		2569: dec("1.1"),
		2570: dec("1.2"),
	})

	tests := []struct {
		name     string
		year     int
		expected string
	}{
		{"Well before cutover", 2550, "4800"},
		{"Cutover year", 2569, "4800"},
		{"First compounded year uses prior index", 2570, "5280"},
		{"Second compounded year", 2571, "6336"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SecondaryCeiling(tt.year, table, rule)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.expected)), "Expected %s, got %s", tt.expected, got)
		})
	}
}

func TestSecondaryCeiling_UnresolvedIndex(t *testing.T) {
	rule := dataset.SecondaryCeilingRule{Base: dec("4800"), CutoverYear: 2569}
	table := NewIndexTable(2541, map[int]decimal.Decimal{2569: dec("1.1")})

	_, err := SecondaryCeiling(2571, table, rule)
	require.Error(t, err)

	var ce *domain.CalculationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.MissingIndexOverride, ce.Kind)
	assert.Equal(t, 2570, ce.Year)
}
