package projection

import "math"

// Formula is a planar projection of the unit sphere. Angles are radians;
// planar y grows northward.
type Formula interface {
	Forward(lon, lat float64) (x, y float64)
	Inverse(x, y float64) (lon, lat float64)
}

func ToRadians(deg float64) float64 { return deg * math.Pi / 180 }
func ToDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// Identity leaves coordinates untouched; used for basemaps drawn in plain
// lon/lat.
type Identity struct{}

func (Identity) Forward(lon, lat float64) (float64, float64) { return lon, lat }
func (Identity) Inverse(x, y float64) (float64, float64)     { return x, y }

// Mercator is the spherical normal Mercator projection.
type Mercator struct{}

func (Mercator) Forward(lon, lat float64) (float64, float64) {
	return lon, math.Log(math.Tan(math.Pi/4 + lat/2))
}

func (Mercator) Inverse(x, y float64) (float64, float64) {
	return x, 2*math.Atan(math.Exp(y)) - math.Pi/2
}

// Albers is the spherical Albers equal-area conic projection.
type Albers struct {
	lon0 float64
	n    float64
	c    float64
	rho0 float64
}

// NewAlbers builds an Albers projection from its origin and two standard
// parallels, all in degrees.
func NewAlbers(lon0, lat0, lat1, lat2 float64) Albers {
	phi1, phi2 := ToRadians(lat1), ToRadians(lat2)
	n := (math.Sin(phi1) + math.Sin(phi2)) / 2
	c := math.Cos(phi1)*math.Cos(phi1) + 2*n*math.Sin(phi1)
	a := Albers{lon0: ToRadians(lon0), n: n, c: c}
	a.rho0 = a.rho(ToRadians(lat0))
	return a
}

func (a Albers) rho(lat float64) float64 {
	v := a.c - 2*a.n*math.Sin(lat)
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v) / a.n
}

func (a Albers) Forward(lon, lat float64) (float64, float64) {
	rho := a.rho(lat)
	theta := a.n * (lon - a.lon0)
	return rho * math.Sin(theta), a.rho0 - rho*math.Cos(theta)
}

func (a Albers) Inverse(x, y float64) (float64, float64) {
	dy := a.rho0 - y
	rho := math.Hypot(x, dy)
	theta := math.Atan2(x, dy)
	if a.n < 0 {
		rho = -rho
		theta = math.Atan2(-x, -dy)
	}
	rn := rho * a.n
	lat := math.Asin(clamp((a.c-rn*rn)/(2*a.n), -1, 1))
	return a.lon0 + theta/a.n, lat
}

// Orthographic is the azimuthal orthographic projection centred at a fixed
// origin. Only the hemisphere facing the origin inverts meaningfully.
type Orthographic struct {
	lon0    float64
	sinLat0 float64
	cosLat0 float64
}

// NewOrthographic centres the projection at lon0/lat0 in degrees.
func NewOrthographic(lon0, lat0 float64) Orthographic {
	phi := ToRadians(lat0)
	return Orthographic{lon0: ToRadians(lon0), sinLat0: math.Sin(phi), cosLat0: math.Cos(phi)}
}

func (o Orthographic) Forward(lon, lat float64) (float64, float64) {
	dl := lon - o.lon0
	x := math.Cos(lat) * math.Sin(dl)
	y := o.cosLat0*math.Sin(lat) - o.sinLat0*math.Cos(lat)*math.Cos(dl)
	return x, y
}

func (o Orthographic) Inverse(x, y float64) (float64, float64) {
	rho := math.Hypot(x, y)
	if rho == 0 {
		return o.lon0, math.Asin(o.sinLat0)
	}
	c := math.Asin(clamp(rho, -1, 1))
	sinC, cosC := math.Sin(c), math.Cos(c)
	lat := math.Asin(clamp(cosC*o.sinLat0+y*sinC*o.cosLat0/rho, -1, 1))
	lon := o.lon0 + math.Atan2(x*sinC, rho*cosC*o.cosLat0-y*sinC*o.sinLat0)
	return lon, lat
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
