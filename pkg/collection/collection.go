// Package collection provides small generic slice helpers used across the
// catalog and reporting code.
//
//	names := collection.Map(products, func(p models.Product) string { return p.Name })
//	active := collection.Filter(products, func(p models.Product) bool { return p.Active })
//	byCat := collection.GroupBy(products, func(p models.Product) uint { return p.CategoryID })
package collection

// Map transforms each element of s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns the elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// GroupBy partitions s into a map keyed by fn's result.
func GroupBy[T any, K comparable](s []T, fn func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, v := range s {
		out[fn(v)] = append(out[fn(v)], v)
	}
	return out
}

// KeyBy turns s into a map keyed by fn's result. Later elements win on
// key collisions.
func KeyBy[T any, K comparable](s []T, fn func(T) K) map[K]T {
	out := make(map[K]T, len(s))
	for _, v := range s {
		out[fn(v)] = v
	}
	return out
}

// Sum adds up the values extracted by fn.
func Sum[T any](s []T, fn func(T) float64) float64 {
	var total float64
	for _, v := range s {
		total += fn(v)
	}
	return total
}

// Chunk splits s into slices of at most n elements. Campaign fan-out
// batches recipients this way.
func Chunk[T any](s []T, n int) [][]T {
	if n <= 0 {
		return nil
	}
	var out [][]T
	for i := 0; i < len(s); i += n {
		end := i + n
		if end > len(s) {
			end = len(s)
		}
		out = append(out, s[i:end])
	}
	return out
}
