package colour

import (
	"sort"

	"golang.org/x/image/colornames"
)

// namedColour pairs an SVG 1.1 colour keyword with its value.
type namedColour struct {
	name string
	rgb  RGB
}

// svgNames holds the keywords in alphabetical order so ties resolve deterministically.
var svgNames = func() []namedColour {
	keys := make([]string, 0, len(colornames.Map))
	for k := range colornames.Map {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]namedColour, 0, len(keys))
	for _, k := range keys {
		c := colornames.Map[k]
		out = append(out, namedColour{name: k, rgb: RGB{R: c.R, G: c.G, B: c.B}})
	}
	return out
}()

// NearestName returns the SVG colour keyword closest to rgb by squared
// euclidean distance in RGB space, and that distance.
// Exact matches return a distance of 0. Where several keywords share a value
// (gray/grey, aqua/cyan) the alphabetically first wins.
func NearestName(rgb RGB) (string, int) {
	best := ""
	bestDist := -1
	for _, nc := range svgNames {
		d := distSq(rgb, nc.rgb)
		if bestDist < 0 || d < bestDist {
			best, bestDist = nc.name, d
			if d == 0 {
				break
			}
		}
	}
	return best, bestDist
}

func distSq(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
