package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	ds := Default()

	tests := []struct {
		name       string
		start, end int
		first      int
		last       int
		length     int
	}{
		{"Inside the table", 2550, 2555, 2550, 2555, 6},
		{"Single year", 2560, 2560, 2560, 2560, 1},
		{"Start clamped up", 2530, 2545, 2541, 2545, 5},
		{"End clamped down", 2575, 2600, 2575, 2580, 6},
		{"Reversed bounds", 2555, 2550, 2550, 2555, 6},
		{"Both below the table", 2500, 2510, 2541, 2541, 1},
		{"Both above the table", 2600, 2610, 2580, 2580, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years := ds.Range(tt.start, tt.end)
			assert.Len(t, years, tt.length)
			assert.Equal(t, tt.first, years[0])
			assert.Equal(t, tt.last, years[len(years)-1])
			for i := 1; i < len(years); i++ {
				assert.Equal(t, years[i-1]+1, years[i])
			}
		})
	}
}

func TestRange_Idempotent(t *testing.T) {
	ds := Default()
	assert.Equal(t, ds.Range(2545, 2560), ds.Range(2545, 2560))
}
