package util

// Map applies fn to each element of a slice and returns a new slice of the
// results.
func Map[T, R any](slice []T, fn func(T) R) []R {
	rSlice := make([]R, len(slice))

	for i, item := range slice {
		rSlice[i] = fn(item)
	}

	return rSlice
}
