package slices

// Map applies mapper to each element and collects results.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	if sli == nil {
		return nil
	}
	mapped := make([]R, len(sli))
	for i, v := range sli {
		mapped[i] = mapper(v)
	}
	return mapped
}

func RefOf[T any](sli []T) []*T {
	return Map(sli, func(v T) *T { return &v })
}

// Filter returns elements for which predicator holds, keeping order.
func Filter[T any](sli []T, predicator func(T) bool) []T {
	filtered := []T{}
	for _, v := range sli {
		if predicator(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// First finds the first element matching predicator.
//
// When no elements match, it returns (zero-value, false).
func First[T any](sli []T, predicator func(T) bool) (T, bool) {
	for _, v := range sli {
		if predicator(v) {
			return v, true
		}
	}
	return *new(T), false
}

// ToMap converts a slice to a map, keyed with getkey.
//
// When keys collide, the last element wins.
func ToMap[T any, K comparable](sli []T, getkey func(v T) K) map[K]T {
	m := make(map[K]T, len(sli))
	for _, v := range sli {
		m[getkey(v)] = v
	}
	return m
}

func KeysOf[T any, K comparable](m map[K]T) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func ValuesOf[T any, K comparable](m map[K]T) []T {
	values := make([]T, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	return values
}

func Contains[T comparable](sli []T, item T) bool {
	for _, v := range sli {
		if v == item {
			return true
		}
	}
	return false
}
