package reply

import (
	"sort"
	"strings"

	"tasasbot/internal/rates"
)

// Currency is how a country's money is shown to users.
type Currency struct {
	Name   string
	Code   string
	Symbol string
}

// Catalogue maps normalized country keys to their display currency.
type Catalogue map[string]Currency

// DefaultCatalogue covers the countries the rate sheet publishes.
var DefaultCatalogue = NewCatalogue(
	Currency{Name: "VENEZUELA", Code: "VES", Symbol: "Bs."},
	Currency{Name: "ARGENTINA", Code: "ARS", Symbol: "$"},
	Currency{Name: "CHILE", Code: "CLP", Symbol: "$"},
	Currency{Name: "COLOMBIA", Code: "COP", Symbol: "$"},
	Currency{Name: "PERU", Code: "PEN", Symbol: "S/"},
	Currency{Name: "ECUADOR", Code: "USD", Symbol: "$"},
	Currency{Name: "MEXICO", Code: "MXN", Symbol: "$"},
	Currency{Name: "PANAMA", Code: "PAB", Symbol: "B/."},
	Currency{Name: "BRASIL", Code: "BRL", Symbol: "R$"},
	Currency{Name: "ESPAÑA", Code: "EUR", Symbol: "€"},
	Currency{Name: "REP. DOMINICANA", Code: "DOP", Symbol: "$"},
)

func NewCatalogue(cs ...Currency) Catalogue {
	c := make(Catalogue, len(cs))
	for _, cur := range cs {
		c[rates.Normalize(cur.Name)] = cur
	}
	return c
}

// Lookup never fails: unknown keys get their upper-cased key as name, "?" as
// code and "$" as symbol.
func (c Catalogue) Lookup(key string) Currency {
	if cur, ok := c[key]; ok {
		return cur
	}
	return Currency{Name: strings.ToUpper(key), Code: "?", Symbol: "$"}
}

// Names lists the display names of keys, or of the whole catalogue when keys
// is empty.
func (c Catalogue) Names(keys []string) []string {
	if len(keys) == 0 {
		keys = make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, c.Lookup(k).Name)
	}
	return names
}
