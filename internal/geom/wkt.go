package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseWKTData parses POLYGON and MULTIPOLYGON area paths into Data.
func ParseWKTData(wkt string) (Data, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	var d Data
	switch {
	case strings.HasPrefix(up, "MULTIPOLYGON"):
		body, err := between(s, "(((", ")))")
		if err != nil {
			return Data{}, err
		}
		for _, part := range splitGroups(body, ")),((") {
			d.addPolygon(parseRings(part))
		}
	case strings.HasPrefix(up, "POLYGON"):
		body, err := between(s, "((", "))")
		if err != nil {
			return Data{}, err
		}
		d.addPolygon(parseRings(body))
	default:
		return Data{}, errors.New("unsupported wkt type")
	}
	if d.Empty() || d.BBox.Empty() {
		return Data{}, errors.New("wkt: no coordinates parsed")
	}
	return d, nil
}

func between(s, open, close string) (string, error) {
	i := strings.Index(s, open)
	j := strings.LastIndex(s, close)
	if i < 0 || j < i+len(open) {
		return "", errors.New("wkt: unbalanced parentheses")
	}
	return s[i+len(open) : j], nil
}

// splitGroups splits on sep after removing the spaces WKT allows around
// separators.
func splitGroups(body, sep string) []string {
	norm := strings.Join(strings.Fields(body), " ")
	norm = strings.NewReplacer(") ,", "),", ", (", ",(", ") )", "))", "( (", "((").Replace(norm)
	return strings.Split(norm, sep)
}

func parseRings(body string) Polygon {
	var poly Polygon
	for _, rp := range splitGroups(body, "),(") {
		if ring := parseTuples(rp); len(ring) > 0 {
			poly = append(poly, Ring(ring))
		}
	}
	return poly
}

func parseTuples(block string) [][2]float64 {
	var out [][2]float64
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, [2]float64{x, y})
	}
	return out
}
