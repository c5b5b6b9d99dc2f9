package rates

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// MaxAmount is the largest amount accepted from a user.
const MaxAmount = 1e15

// ParseAmount reads a number written with dot grouping and a decimal comma
// ("2.500,75" -> 2500.75). Only values in (0, MaxAmount] are accepted.
func ParseAmount(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0, ErrInvalidAmount
	}

	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !validAmount(val) {
		return 0, ErrInvalidAmount
	}
	return val, nil
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && v > 0 && v <= MaxAmount
}
