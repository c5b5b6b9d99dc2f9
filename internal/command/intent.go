package command

import (
	"tasasbot/internal/rates"
)

// Intent is the classified meaning of one inbound message. It is one of
// Help, LocalRate, Conversion or Unrecognized.
type Intent interface {
	isIntent()
}

// Help asks for the greeting and usage text.
type Help struct{}

// Kind selects one of the published USD/Bolivar rates.
type Kind string

const (
	KindParallel Kind = "parallel"
	KindOfficial Kind = "official"
)

// LocalRate asks for a USD/Bolivar rate, optionally applied to an amount.
// AmountText is empty when no amount was given.
type LocalRate struct {
	Kind       Kind
	AmountText string
}

// Conversion asks to convert AmountText from Origin to Destination. Both
// tokens are kept as typed by the user.
type Conversion struct {
	Origin      string
	Destination string
	AmountText  string
}

// Unrecognized is any text no rule matched.
type Unrecognized struct {
	Text string
}

func (Help) isIntent()         {}
func (LocalRate) isIntent()    {}
func (Conversion) isIntent()   {}
func (Unrecognized) isIntent() {}

// Amount parses the optional amount. ok is false when none was given; err is
// rates.ErrInvalidAmount when one was given but is not a positive number.
func (l LocalRate) Amount() (amount float64, ok bool, err error) {
	if l.AmountText == "" {
		return 0, false, nil
	}
	amount, err = rates.ParseAmount(l.AmountText)
	if err != nil {
		return 0, true, err
	}
	return amount, true, nil
}

// Request validates the amount and builds the normalized conversion request.
// The amount is checked before anything else, so a message with both a bad
// amount and an unknown route reports the amount.
func (c Conversion) Request() (rates.Request, error) {
	amount, err := rates.ParseAmount(c.AmountText)
	if err != nil {
		return rates.Request{}, err
	}
	return rates.NewRequest(c.Origin, c.Destination, amount)
}
