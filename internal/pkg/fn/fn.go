package fn

// Map applies selector to every item. The result is never nil, so it encodes
// as an empty JSON array.
func Map[T any, V any](items []T, selector func(T) V) []V {
	results := make([]V, 0, len(items))
	for _, item := range items {
		results = append(results, selector(item))
	}
	return results
}

// MapIndex is Map with the item position passed to selector.
func MapIndex[T any, V any](items []T, selector func(int, T) V) []V {
	results := make([]V, 0, len(items))
	for i, item := range items {
		results = append(results, selector(i, item))
	}
	return results
}
