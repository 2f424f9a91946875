package services

import (
	"errors"
	"math"
)

// The matrix is a logical square grid. Cards carry grid coordinates; the
// client renders them inside a padded container, so converting either way is
// a linear scale plus the padding offset. The y axis grows upward on the
// grid and downward in pixels.
const (
	GridMax = 520.0
	GridMid = GridMax / 2
	Padding = 40.0
)

// Quadrants by (effort, value): x is effort growing right, y is value
// growing up. The boundary between quadrants sits at the grid midpoint.
const (
	QuadrantQuickWin  = "quick-win"
	QuadrantStrategic = "strategic"
	QuadrantFillIn    = "fill-in"
	QuadrantMoneyPit  = "money-pit"
)

var ErrBadContainer = errors.New("container too small for matrix padding")

func InBounds(x, y float64) bool {
	return x >= 0 && x <= GridMax && y >= 0 && y <= GridMax
}

func QuadrantFor(x, y float64) string {
	highEffort := x >= GridMid
	highValue := y >= GridMid

	switch {
	case highValue && !highEffort:
		return QuadrantQuickWin
	case highValue && highEffort:
		return QuadrantStrategic
	case !highValue && !highEffort:
		return QuadrantFillIn
	default:
		return QuadrantMoneyPit
	}
}

// ToPixels maps grid coordinates to a pixel position inside a w×h container.
func ToPixels(x, y, w, h float64) (float64, float64, error) {
	innerW := w - 2*Padding
	innerH := h - 2*Padding
	if innerW <= 0 || innerH <= 0 {
		return 0, 0, ErrBadContainer
	}

	px := Padding + x/GridMax*innerW
	py := Padding + (GridMax-y)/GridMax*innerH
	return px, py, nil
}

// FromPixels inverts ToPixels and clamps the result onto the grid, so drops
// just outside the padded area land on the nearest edge.
func FromPixels(px, py, w, h float64) (float64, float64, error) {
	innerW := w - 2*Padding
	innerH := h - 2*Padding
	if innerW <= 0 || innerH <= 0 {
		return 0, 0, ErrBadContainer
	}

	x := (px - Padding) / innerW * GridMax
	y := GridMax - (py-Padding)/innerH*GridMax
	return clampGrid(x), clampGrid(y), nil
}

func clampGrid(v float64) float64 {
	return math.Min(GridMax, math.Max(0, v))
}
