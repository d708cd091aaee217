// Package mathutil provides coordinate hashing for seeding per-pixel RNGs
package mathutil

// HashCoords generates a simple hash from coordinates for seeding
func HashCoords(x, y, z int) int {
	hash := 17
	hash = hash*31 + x
	hash = hash*31 + y
	hash = hash*31 + z
	return hash
}
