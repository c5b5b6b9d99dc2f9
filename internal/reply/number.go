package reply

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Style is the locale numbers are printed in.
type Style struct {
	Tag language.Tag
}

// StyleES prints 35500.5 as "35.500,50".
var StyleES = Style{Tag: language.MustParse("es-ES")}

// Number rounds v half away from zero to digits fraction digits and prints it
// with the locale's grouping and decimal separator. Non-finite values print
// as the locale's infinity or NaN symbol.
func (s Style) Number(v float64, digits int32) string {
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		v = decimal.NewFromFloat(v).Round(digits).InexactFloat64()
	}
	return message.NewPrinter(s.Tag).Sprint(number.Decimal(v, number.Scale(int(digits))))
}
