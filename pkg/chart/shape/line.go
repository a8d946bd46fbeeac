// Package shape turns ordered data into SVG path geometry.
package shape

import (
	"strconv"
	"strings"
)

// Line builds a polyline path from data using accessor functions for the
// x and y pixel coordinates.
type Line[T any] struct {
	X func(T) float64
	Y func(T) float64
}

// Path returns SVG path data connecting the points in order.
// An empty input yields an empty string.
func (l Line[T]) Path(data []T) string {
	var sb strings.Builder
	for i, d := range data {
		if i == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteByte('L')
		}
		sb.WriteString(strconv.FormatFloat(l.X(d), 'f', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(l.Y(d), 'f', -1, 64))
	}
	return sb.String()
}
