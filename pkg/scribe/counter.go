// counter.go implements the named integer counter store.
package scribe

import "fmt"

// CounterStore holds the counters of a compilation unit. Counters are
// created explicitly, start at zero, and retain no history.
type CounterStore struct {
	values map[string]int
}

// NewCounterStore returns an empty store.
func NewCounterStore() *CounterStore {
	return &CounterStore{values: make(map[string]int)}
}

// Create registers a counter initialized to zero. It fails if the counter
// already exists.
func (s *CounterStore) Create(name string) error {
	if _, exists := s.values[name]; exists {
		return fmt.Errorf("counter already created: %q", name)
	}
	s.values[name] = 0
	return nil
}

// Set assigns a value to an existing counter.
func (s *CounterStore) Set(name string, value int) error {
	if _, exists := s.values[name]; !exists {
		return fmt.Errorf("counter not found: %q", name)
	}
	s.values[name] = value
	return nil
}

// Increment adds one to an existing counter.
func (s *CounterStore) Increment(name string) error {
	if _, exists := s.values[name]; !exists {
		return fmt.Errorf("counter not found: %q", name)
	}
	s.values[name]++
	return nil
}

// Read returns the current value of a counter.
func (s *CounterStore) Read(name string) (int, error) {
	value, exists := s.values[name]
	if !exists {
		return 0, fmt.Errorf("counter not found: %q", name)
	}
	return value, nil
}

// Positive reports whether the counter value is strictly greater than zero.
func (s *CounterStore) Positive(name string) (bool, error) {
	value, err := s.Read(name)
	return value > 0, err
}
