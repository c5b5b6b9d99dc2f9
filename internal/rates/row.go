package rates

import (
	"regexp"
	"strings"
)

// headerMarker matches the first cell of a block header, "DESDE CHILE".
var headerMarker = regexp.MustCompile(`(?i)^\s*desde\s+(\S.*?)\s*$`)

// Row is the classified form of one spreadsheet row. It is one of HeaderRow,
// DataRow or IgnoredRow.
type Row interface {
	isRow()
}

// HeaderOrigin is one "DESDE <name>" cell and the column it was found in.
type HeaderOrigin struct {
	Origin string
	Column int
}

// HeaderRow opens a block of rates. The narrow layout has a single origin in
// column 0; the wide layout repeats the marker across the row.
type HeaderRow struct {
	Origins []HeaderOrigin
}

// DataRow carries the raw cells of a row inside a block.
type DataRow struct {
	Cells []string
}

// IgnoredRow is a row with nothing usable in it.
type IgnoredRow struct{}

func (HeaderRow) isRow()  {}
func (DataRow) isRow()    {}
func (IgnoredRow) isRow() {}

// ClassifyRow decides what kind of row cells is. A row is a header only when
// its first cell carries the marker.
func ClassifyRow(cells []string) Row {
	if len(cells) == 0 {
		return IgnoredRow{}
	}

	if headerMarker.MatchString(cells[0]) {
		var h HeaderRow
		for col, cell := range cells {
			m := headerMarker.FindStringSubmatch(cell)
			if m == nil {
				continue
			}
			origin := Normalize(m[1])
			if origin == "" {
				continue
			}
			h.Origins = append(h.Origins, HeaderOrigin{Origin: origin, Column: col})
		}
		if len(h.Origins) == 0 {
			return IgnoredRow{}
		}
		return h
	}

	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return DataRow{Cells: cells}
		}
	}
	return IgnoredRow{}
}

// pair returns the destination and rate text found at col and col+1.
func (r DataRow) pair(col int) (dest, rateText string, ok bool) {
	if col+1 >= len(r.Cells) {
		return "", "", false
	}
	dest = strings.TrimSpace(r.Cells[col])
	rateText = strings.TrimSpace(r.Cells[col+1])
	if dest == "" || rateText == "" {
		return "", "", false
	}
	return dest, rateText, true
}
