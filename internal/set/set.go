package set

// Set is a generic set of comparable values. It remembers insertion order so
// that iteration over a set built from a directory listing follows the listing.
type Set[T comparable] struct {
	items map[T]struct{}
	order []T
}

// New creates a new empty set
func New[T comparable]() *Set[T] {
	return &Set[T]{
		items: make(map[T]struct{}),
	}
}

// FromSlice creates a new set with values from the given slice
func FromSlice[T comparable](values []T) *Set[T] {
	s := New[T]()
	s.AddValues(values)
	return s
}

// Add adds a value to the set
func (s *Set[T]) Add(value T) {
	if _, ok := s.items[value]; ok {
		return
	}
	s.items[value] = struct{}{}
	s.order = append(s.order, value)
}

// AddValues adds multiple values to the set
func (s *Set[T]) AddValues(values []T) {
	for _, value := range values {
		s.Add(value)
	}
}

// Remove removes a value from the set
func (s *Set[T]) Remove(value T) {
	if _, ok := s.items[value]; !ok {
		return
	}
	delete(s.items, value)
	for i, v := range s.order {
		if v == value {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Contains checks if the set contains a value
func (s *Set[T]) Contains(value T) bool {
	_, exists := s.items[value]
	return exists
}

// Len returns the number of elements in the set
func (s *Set[T]) Len() int {
	return len(s.items)
}

// Values returns the elements in insertion order.
func (s *Set[T]) Values() []T {
	values := make([]T, len(s.order))
	copy(values, s.order)
	return values
}

// Difference returns a new set with elements in this set that are not in the
// other set, in this set's insertion order.
func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	result := New[T]()
	for _, value := range s.order {
		if !other.Contains(value) {
			result.Add(value)
		}
	}
	return result
}
