package progress

import (
	"math"
	"strings"
)

// BarCells is the width of a rendered progress bar.
const BarCells = 10

const (
	filledCell = "█"
	emptyCell  = "░"
)

// Bar renders percent as a fixed-width bar with round(percent/10) filled cells.
func Bar(percent int) string {
	percent = min(max(percent, 0), 100)
	filled := int(math.Round(float64(percent) / 10))
	return strings.Repeat(filledCell, filled) + strings.Repeat(emptyCell, BarCells-filled)
}
