package util

// Set is an unordered collection of unique values. The zero value is not
// usable; create sets with NewSet or NewSetOf.
type Set[V comparable] struct {
	values map[V]struct{}
}

func NewSet[V comparable]() *Set[V] {
	return &Set[V]{
		values: map[V]struct{}{},
	}
}

func NewSetOf[V comparable](values ...V) *Set[V] {
	set := NewSet[V]()
	for _, value := range values {
		set.Add(value)
	}
	return set
}

func (s *Set[V]) Add(value V) {
	s.values[value] = struct{}{}
}

// Contains is safe to call on a nil set.
func (s *Set[V]) Contains(value V) bool {
	if s == nil {
		return false
	}
	_, found := s.values[value]
	return found
}

func (s *Set[V]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}
