package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Names of the published USD/Bolivar records.
const (
	NameParallel = "Paralelo"
	NameOfficial = "Oficial"
)

var (
	ErrUnavailable  = errors.New("exchange rate service unavailable")
	ErrRateNotFound = errors.New("exchange rate not published")
)

// Rate is one named record returned by the rate service, in bolivars per
// US dollar.
type Rate struct {
	Name      string
	Average   float64
	UpdatedAt time.Time
}

type API interface {
	Rates(ctx context.Context) ([]Rate, error)
}

// Find returns the record whose name is exactly name. Records without a
// positive average count as missing.
func Find(rs []Rate, name string) (Rate, error) {
	for _, r := range rs {
		if r.Name == name && r.Average > 0 {
			return r, nil
		}
	}
	return Rate{}, fmt.Errorf("%w: %s", ErrRateNotFound, name)
}
