package projection

var (
	alaskaWindow = Rect{X: 0, Y: 350, W: 240, H: 150}
	hawaiiWindow = Rect{X: 250, Y: 400, W: 100, H: 100}

	alaskaExtents = []Extent{
		{Rect: Rect{X: 172, Y: 51, W: 8, H: 3}, LonShift: -360},
		{Rect: Rect{X: -180, Y: 51, W: 51, H: 21}},
	}
	hawaiiExtent   = Extent{Rect: Rect{X: -178.5, Y: 18.9, W: 35, H: 11}}
	mainlandExtent = Extent{Rect: Rect{X: -124.8, Y: 24.4, W: 58, H: 25.5}}
)

func single(name string, ext Rect, f Formula, rotation float64) Definition {
	return Definition{
		Name: name,
		Regions: []Region{{
			Name:     name,
			Extents:  []Extent{{Rect: ext}},
			Formula:  f,
			Rotation: rotation,
			Window:   Viewport,
		}},
	}
}

// Definitions returns the builtin basemaps.
func Definitions() []Definition {
	world := Rect{X: -180, Y: -90, W: 360, H: 180}
	northAmerica := NewAlbers(-96, 23, 20, 60)
	return []Definition{
		single("world", world, Robinson{}, 0),
		single("worldRegions", world, Robinson{}, 0),
		{
			Name: "usa",
			Regions: []Region{
				{Name: "alaska", Extents: alaskaExtents, Formula: NewAlbers(-154, 50, 55, 65), Window: alaskaWindow},
				{Name: "hawaii", Extents: []Extent{hawaiiExtent}, Formula: NewAlbers(-157, 3, 8, 18), Window: hawaiiWindow},
				{Name: "mainland", Extents: []Extent{mainlandExtent}, Formula: NewAlbers(-96, 37.5, 29.5, 45.5), Window: Viewport},
			},
		},
		single("usaAndCanada", Rect{X: -170, Y: 15, W: 120, H: 69}, northAmerica, 0),
		single("northAmerica", Rect{X: -170, Y: 5, W: 120, H: 79}, northAmerica, 0),
		single("asia", Rect{X: 25, Y: -12, W: 155, H: 94}, NewAlbers(95, 40, 20, 60), 0),
		single("europe", Rect{X: -25, Y: 34, W: 70, H: 38}, NewOrthographic(10, 50), 0),
		single("africa", Rect{X: -20, Y: -37, W: 75, H: 75}, Mercator{}, 0),
		single("apac", Rect{X: 65, Y: -50, W: 115, H: 105}, Mercator{}, 0),
		single("emea", Rect{X: -25, Y: -36, W: 90, H: 108}, Mercator{}, 0),
		single("latinAmerica", Rect{X: -118, Y: -56, W: 84, H: 89}, Mercator{}, 0),
		single("southAmerica", Rect{X: -92, Y: -57, W: 62, H: 72}, Mercator{}, 5),
		single("australia", Rect{X: 110, Y: -50, W: 70, H: 42}, Identity{}, 0),
	}
}
