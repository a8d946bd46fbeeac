// Package bisect finds insertion points in sorted sequences.
package bisect

// Left returns the leftmost index in data[lo:] at which x could be inserted
// while keeping data sorted by key. data must be ascending by key.
//
// The result is at least lo, even when x sorts before data[lo].
func Left[T any](data []T, x float64, key func(T) float64, lo int) int {
	hi := len(data)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if key(data[mid]) < x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
