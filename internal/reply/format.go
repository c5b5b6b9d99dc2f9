// Package reply renders conversion results and errors as chat messages in
// Telegram's legacy Markdown.
package reply

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tasasbot/internal/exchange"
	"tasasbot/internal/rates"
)

const (
	amountDigits = 2
	rateDigits   = 6
)

var examples = []string{
	"chile venezuela 20000",
	"argentina-colombia 5000",
	"peru-mexico 1.500,50",
	"/paralelo 20",
	"/oficial",
}

type Formatter struct {
	Style     Style
	Catalogue Catalogue
	Location  *time.Location
}

func NewFormatter() *Formatter {
	return &Formatter{Style: StyleES, Catalogue: DefaultCatalogue, Location: time.UTC}
}

func (f *Formatter) money(v float64, key string) string {
	return f.Catalogue.Lookup(key).Symbol + " " + f.Style.Number(v, amountDigits)
}

// Conversion renders a successful conversion.
func (f *Formatter) Conversion(res rates.Result) string {
	from := f.Catalogue.Lookup(res.Origin)
	to := f.Catalogue.Lookup(res.Destination)

	code := from.Code
	if code == "?" {
		code = from.Name
	}

	var b strings.Builder
	b.WriteString("💱 *Conversión de Divisas*\n\n")
	fmt.Fprintf(&b, "🗺️ Origen: %s (%s)\n", escape(from.Name), from.Code)
	fmt.Fprintf(&b, "🎯 Destino: %s (%s)\n\n", escape(to.Name), to.Code)
	fmt.Fprintf(&b, "💰 *Monto:* %s\n", f.money(res.Amount, res.Origin))
	fmt.Fprintf(&b, "📊 *Tasa:* 1 %s = %s\n\n", escape(code), f.Style.Number(res.Rate, rateDigits))
	fmt.Fprintf(&b, "💡 *Resultado:* %s", f.money(res.Output, res.Destination))
	return b.String()
}

// LocalRate renders a USD/Bolivar quote. amount is applied only when
// hasAmount is set.
func (f *Formatter) LocalRate(r exchange.Rate, amount float64, hasAmount bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💵 *Dólar %s*\n\n", escape(r.Name))
	fmt.Fprintf(&b, "📊 *Tasa:* 1 USD = Bs. %s\n", f.Style.Number(r.Average, amountDigits))
	if hasAmount {
		fmt.Fprintf(&b, "💰 *Monto:* $ %s\n", f.Style.Number(amount, amountDigits))
		fmt.Fprintf(&b, "💡 *Resultado:* Bs. %s\n", f.Style.Number(amount*r.Average, amountDigits))
	}
	if !r.UpdatedAt.IsZero() {
		loc := f.Location
		if loc == nil {
			loc = time.UTC
		}
		fmt.Fprintf(&b, "\n🕒 _Actualizado: %s_", r.UpdatedAt.In(loc).Format("02/01/2006 15:04"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Help renders the greeting with usage examples. origins are the table's
// origin keys; the catalogue is listed instead when there are none.
func (f *Formatter) Help(origins []string) string {
	var b strings.Builder
	b.WriteString("🤖 *Bot de Conversión de Divisas*\n\n")
	b.WriteString("Ejemplos de uso:\n")
	for _, e := range examples {
		fmt.Fprintf(&b, "`%s`\n", e)
	}
	b.WriteString("\nPaíses soportados:\n")
	b.WriteString(escape(strings.Join(f.Catalogue.Names(origins), ", ")))
	return b.String()
}

// Unrecognized is the reply to text that is not a command.
func (f *Formatter) Unrecognized() string {
	var b strings.Builder
	b.WriteString("🤔 No entendí tu mensaje.\n\n")
	b.WriteString("Escribe `origen destino monto`, por ejemplo:\n")
	for _, e := range examples {
		fmt.Fprintf(&b, "`%s`\n", e)
	}
	b.WriteString("\nEnvía /start para ver la ayuda.")
	return b.String()
}

// Error maps a failure to the text shown to the user.
func (f *Formatter) Error(err error) string {
	var nf *rates.NotFoundError
	switch {
	case errors.Is(err, rates.ErrInvalidAmount):
		return "❌ Monto inválido. Ingresa un número mayor que cero, por ejemplo `2.500,75`."
	case errors.As(err, &nf) && nf.Side == rates.SideOrigin:
		return fmt.Sprintf("❌ No existen tasas para %s", escape(f.Catalogue.Lookup(nf.Key).Name))
	case errors.As(err, &nf):
		return fmt.Sprintf("❌ Tasa no encontrada para %s → %s",
			escape(f.Catalogue.Lookup(nf.Origin).Name), escape(f.Catalogue.Lookup(nf.Key).Name))
	case errors.Is(err, exchange.ErrRateNotFound):
		return "⚠️ Esa tasa no está publicada en este momento. Intenta más tarde."
	case errors.Is(err, rates.ErrRatesUnavailable), errors.Is(err, exchange.ErrUnavailable):
		return "⚠️ No pudimos obtener las tasas en este momento. Intenta de nuevo en unos minutos."
	default:
		return "❌ Error procesando la solicitud"
	}
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
