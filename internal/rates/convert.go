package rates

import (
	"math"
)

// Request is a validated conversion query. Construct it with NewRequest.
type Request struct {
	Origin      string
	Destination string
	Amount      float64
}

// Result is a successful conversion. Output keeps full precision; rounding
// happens only when it is displayed.
type Result struct {
	Origin      string
	Destination string
	Amount      float64
	Rate        float64
	Output      float64
}

// NewRequest normalizes both route keys and rejects amounts outside
// (0, MaxAmount].
func NewRequest(origin, destination string, amount float64) (Request, error) {
	if !validAmount(amount) {
		return Request{}, ErrInvalidAmount
	}
	return Request{
		Origin:      Normalize(origin),
		Destination: Normalize(destination),
		Amount:      amount,
	}, nil
}

// Convert applies the table rate for the request's route. A missing route
// yields a *NotFoundError naming the unresolved side. A product that does
// not fit a float64 is reported as ErrInvalidAmount.
func Convert(req Request, t Table) (Result, error) {
	rate, err := t.Rate(req.Origin, req.Destination)
	if err != nil {
		return Result{}, err
	}
	out := req.Amount * rate
	if math.IsInf(out, 0) || math.IsNaN(out) {
		return Result{}, ErrInvalidAmount
	}
	return Result{
		Origin:      req.Origin,
		Destination: req.Destination,
		Amount:      req.Amount,
		Rate:        rate,
		Output:      out,
	}, nil
}
