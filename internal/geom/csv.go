package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// Table is a CSV file with a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// LoadCSV reads a CSV file with a header row.
func LoadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return Table{}, err
	}
	if len(recs) == 0 {
		return Table{}, errors.New("empty csv")
	}
	return Table{Header: recs[0], Rows: recs[1:]}, nil
}

// Col returns the index of the first header matching one of the names,
// case-insensitively, or -1.
func (t Table) Col(names ...string) int {
	for i, h := range t.Header {
		lh := strings.ToLower(strings.TrimSpace(h))
		for _, n := range names {
			if lh == n {
				return i
			}
		}
	}
	return -1
}

// LonLatCols detects longitude/latitude columns:
// lat|latitude|y and lon|lng|long|longitude|x.
func (t Table) LonLatCols() (lon, lat int, ok bool) {
	lat = t.Col("lat", "latitude", "y")
	lon = t.Col("lon", "lng", "long", "longitude", "x")
	return lon, lat, lon >= 0 && lat >= 0
}

// Cell returns the trimmed cell, or "" when the row is short or idx < 0.
func (t Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Float parses a numeric cell.
func (t Table) Float(row []string, idx int) (float64, bool) {
	s := t.Cell(row, idx)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
