package rates

import (
	"errors"
	"fmt"
	"sort"
)

// Table maps an origin key to destination keys and the number of
// destination units bought with one origin unit. Every rate is positive.
// A Table is never modified after Build returns it.
type Table map[string]map[string]float64

// Side tells which half of a route could not be resolved.
type Side string

const (
	SideOrigin      Side = "origin"
	SideDestination Side = "destination"
)

// NotFoundError reports a route missing from the table. Origin is set when
// the destination is the missing side.
type NotFoundError struct {
	Side   Side
	Key    string
	Origin string
}

func (e *NotFoundError) Error() string {
	if e.Side == SideDestination {
		return fmt.Sprintf("unknown destination %q from %q", e.Key, e.Origin)
	}
	return fmt.Sprintf("unknown %s %q", e.Side, e.Key)
}

// IsNotFound reports whether err is a *NotFoundError for side.
func IsNotFound(err error, side Side) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Side == side
}

// Build turns spreadsheet rows into a Table. Rows before the first header
// are ignored and malformed data rows are skipped, so Build never fails.
func Build(rows [][]string) Table {
	table := make(Table)
	var current []HeaderOrigin

	for _, cells := range rows {
		switch row := ClassifyRow(cells).(type) {
		case HeaderRow:
			current = row.Origins
			for _, h := range current {
				if _, ok := table[h.Origin]; !ok {
					table[h.Origin] = make(map[string]float64)
				}
			}
		case DataRow:
			for _, h := range current {
				dest, rateText, ok := row.pair(h.Column)
				if !ok {
					continue
				}
				rate, err := ParseAmount(rateText)
				if err != nil {
					continue
				}
				key := Normalize(dest)
				if key == "" {
					continue
				}
				table[h.Origin][key] = rate
			}
		case IgnoredRow:
		}
	}
	return table
}

// Rate looks up the rate for origin -> destination. Both keys must already
// be normalized.
func (t Table) Rate(origin, destination string) (float64, error) {
	dests, ok := t[origin]
	if !ok {
		return 0, &NotFoundError{Side: SideOrigin, Key: origin}
	}
	rate, ok := dests[destination]
	if !ok {
		return 0, &NotFoundError{Side: SideDestination, Key: destination, Origin: origin}
	}
	return rate, nil
}

// Origins returns the origin keys in lexical order.
func (t Table) Origins() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Routes returns the total number of origin -> destination pairs.
func (t Table) Routes() int {
	n := 0
	for _, dests := range t {
		n += len(dests)
	}
	return n
}
