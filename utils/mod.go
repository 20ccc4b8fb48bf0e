package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Remove deletes the first occurrence of item and reports whether it was found.
// The relative order of the remaining elements is preserved.
func Remove[T comparable](slice []T, item T) ([]T, bool) {
	i := FindIndex(slice, item)
	if i < 0 {
		return slice, false
	}
	return append(slice[:i], slice[i+1:]...), true
}

// Clone returns a copy of slice that shares no backing array with it; nil stays nil.
func Clone[T any](slice []T) []T {
	if slice == nil {
		return nil
	}
	out := make([]T, len(slice))
	copy(out, slice)
	return out
}
