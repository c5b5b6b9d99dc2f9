package rates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"35,50", 35.5},
		{"0,028", 0.028},
		{"2.500,75", 2500.75},
		{"1.000.000", 1000000},
		{"2500", 2500},
		{" 20 ", 20},
		{"1.000.000.000.000.000", MaxAmount},
	}

	for _, tc := range tests {
		got, err := ParseAmount(tc.input)
		require.NoError(t, err, "ParseAmount(%q)", tc.input)
		assert.InDelta(t, tc.want, got, 1e-9, "ParseAmount(%q)", tc.input)
	}
}

func TestParseAmountInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "0", "0,00", "-5", "1,2,3", "NaN", "Inf", "n/a", "1e400", "1.000.000.000.000.001", "1" + strings.Repeat("0", 307)} {
		_, err := ParseAmount(input)
		assert.ErrorIs(t, err, ErrInvalidAmount, "ParseAmount(%q)", input)
	}
}
