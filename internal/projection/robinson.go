package projection

import "math"

const (
	robinsonXScale = 0.8487
	robinsonYScale = 1.3523
	robinsonStep   = 5.0
)

// Robinson table: parallel length and distance from the equator, one row
// every 5 degrees of latitude from 0 to 90.
var (
	robinsonPLEN = [...]float64{
		1.0000, 0.9986, 0.9954, 0.9900, 0.9822, 0.9730, 0.9600, 0.9427, 0.9216, 0.8962,
		0.8679, 0.8350, 0.7986, 0.7597, 0.7186, 0.6732, 0.6213, 0.5722, 0.5322,
	}
	robinsonPDFE = [...]float64{
		0.0000, 0.0620, 0.1240, 0.1860, 0.2480, 0.3100, 0.3720, 0.4340, 0.4958, 0.5571,
		0.6176, 0.6769, 0.7346, 0.7903, 0.8435, 0.8936, 0.9394, 0.9761, 1.0000,
	}
)

// Robinson is the pseudo-cylindrical Robinson projection, linearly
// interpolated between the tabulated rows.
type Robinson struct{}

// robinsonRow returns the interval index and the fraction within it for an
// absolute latitude in degrees.
func robinsonRow(absLat float64) (int, float64) {
	i := int(math.Floor(absLat / robinsonStep))
	if i < 0 {
		i = 0
	}
	if last := len(robinsonPLEN) - 2; i > last {
		i = last
	}
	f := (absLat - float64(i)*robinsonStep) / robinsonStep
	return i, f
}

func robinsonInterp(table []float64, i int, f float64) float64 {
	return table[i] + f*(table[i+1]-table[i])
}

func (Robinson) Forward(lon, lat float64) (float64, float64) {
	deg := math.Abs(ToDegrees(lat))
	i, f := robinsonRow(deg)
	x := robinsonXScale * robinsonInterp(robinsonPLEN[:], i, f) * lon
	y := robinsonYScale * robinsonInterp(robinsonPDFE[:], i, f)
	if lat < 0 {
		y = -y
	}
	return x, y
}

func (Robinson) Inverse(x, y float64) (float64, float64) {
	yn := math.Abs(y) / robinsonYScale
	i := 0
	for i < len(robinsonPDFE)-2 && robinsonPDFE[i+1] < yn {
		i++
	}
	f := (yn - robinsonPDFE[i]) / (robinsonPDFE[i+1] - robinsonPDFE[i])
	deg := clamp((float64(i)+f)*robinsonStep, 0, 90)
	j, g := robinsonRow(deg)
	plen := robinsonInterp(robinsonPLEN[:], j, g)
	lat := ToRadians(deg)
	if y < 0 {
		lat = -lat
	}
	return x / (robinsonXScale * plen), lat
}
