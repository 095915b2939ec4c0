package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricingTotalCents(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		total    float64
		expected int64
	}{
		{name: "Whole amount", total: 368, expected: 36800},
		{name: "Zero", total: 0, expected: 0},
		{name: "Two decimals", total: 19.99, expected: 1999},
		{name: "Float representation error", total: 1.005, expected: 100},
		{name: "Sub-cent rounds up", total: 10.006, expected: 1001},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, Pricing{TotalCost: tc.total}.TotalCents())
		})
	}
}
