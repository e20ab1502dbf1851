package utils

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette of visually distinct colors handed out to a user's cliques in
// order; cliques beyond the palette get a random color kept at a minimum
// RGB distance from the ones already assigned.
var Palette = []string{
	"#FE7743", "#273F4F", "#7C4585", "#E9A319",
	"#FFC6C6", "#46F0F0", "#C5172E", "#E9F5BE", "#000000",
	"#FBF8EF", "#A76545", "#FF8383", "#9AA6B2", "#FFF085",
	"#5F8B4C", "#8F87F1", "#410445", "#A59D84", "#E07B39",
}

const minColorDistance = 0.3

func colorDistance(c1, c2 string) float64 {
	a, err1 := colorful.Hex(c1)
	b, err2 := colorful.Hex(c2)
	if err1 != nil || err2 != nil {
		return 1
	}
	return a.DistanceRgb(b)
}

func generateSafeRandomColor(existing []string) string {
	for tries := 0; tries < 1000; tries++ {
		color := fmt.Sprintf("#%02x%02x%02x", rand.Intn(256), rand.Intn(256), rand.Intn(256))
		safe := true
		for _, c := range existing {
			if colorDistance(color, c) < minColorDistance {
				safe = false
				break
			}
		}
		if safe {
			return color
		}
	}
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}

// AssignCliqueColors maps each clique id to a color, palette first, random
// fallbacks after. Callers pass ids in a stable order so assignments are
// repeatable between requests.
func AssignCliqueColors(cliqueIDs []uuid.UUID) map[uuid.UUID]string {
	assigned := make(map[uuid.UUID]string, len(cliqueIDs))
	used := make([]string, 0, len(cliqueIDs))

	for idx, id := range cliqueIDs {
		var color string
		if idx < len(Palette) {
			color = Palette[idx]
		} else {
			color = generateSafeRandomColor(used)
		}
		assigned[id] = color
		used = append(used, color)
	}
	return assigned
}
