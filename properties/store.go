package properties

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Store is an immutable snapshot of flattened configuration.
// Keys are kept sorted so that prefix scans visit a contiguous range.
type Store struct {
	keys   []string
	values map[string]string
}

// New creates a Store holding a copy of values.
func New(values map[string]string) *Store {
	copied := maps.Clone(values)
	if copied == nil {
		copied = map[string]string{}
	}

	keys := slices.Sorted(maps.Keys(copied))

	return &Store{
		keys:   keys,
		values: copied,
	}
}

// Empty returns a Store without any properties.
func Empty() *Store {
	return New(nil)
}

// Len returns the number of properties.
func (s *Store) Len() int {
	return len(s.keys)
}

// Keys returns all keys in sorted order.
func (s *Store) Keys() []string {
	return slices.Clone(s.keys)
}

// Map returns a copy of the underlying key/value pairs.
func (s *Store) Map() map[string]string {
	return maps.Clone(s.values)
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	value, ok := s.values[key]

	return value, ok
}

// Contains reports whether key itself is present.
func (s *Store) Contains(key string) bool {
	_, ok := s.values[key]

	return ok
}

// Defines reports whether key is present, or any property nested below it
// (key.x or key[x]) is present.
func (s *Store) Defines(key string) bool {
	if s.Contains(key) {
		return true
	}

	found := false

	s.scan(key, func(_, rest string) bool {
		if rest[0] == '.' || rest[0] == '[' {
			found = true

			return false
		}

		return true
	})

	return found
}

// String returns the value of key, or fallback when it is absent.
func (s *Store) String(key, fallback string) string {
	value, ok := s.values[key]
	if !ok {
		return fallback
	}

	return value
}

// Bool parses the value of key as a boolean, returning fallback when it is absent.
func (s *Store) Bool(key string, fallback bool) (bool, error) {
	value, ok := s.values[key]
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("property %q: %w", key, err)
	}

	return parsed, nil
}

// SubProperties returns the indexed collection addressed by name, keyed by index
// token and then by the remaining path inside each element.
// Only keys where name is immediately followed by "[token]" take part; a scalar
// element such as "name[0]" appears under the empty sub-key.
func (s *Store) SubProperties(name string) map[string]map[string]string {
	result := map[string]map[string]string{}

	s.scan(name, func(key, rest string) bool {
		token, tail, ok := splitIndex(rest)
		if !ok {
			return true
		}

		element, exists := result[token]
		if !exists {
			element = map[string]string{}
			result[token] = element
		}

		element[strings.TrimPrefix(tail, ".")] = s.values[key]

		return true
	})

	return result
}

// Indices returns the distinct index tokens under name. Ordinal tokens come
// first in numeric order, followed by the remaining tokens in lexical order.
func (s *Store) Indices(name string) []string {
	seen := map[string]struct{}{}

	s.scan(name, func(_, rest string) bool {
		token, _, ok := splitIndex(rest)
		if ok {
			seen[token] = struct{}{}
		}

		return true
	})

	indices := slices.Collect(maps.Keys(seen))
	slices.SortFunc(indices, compareIndex)

	return indices
}

// Strings returns the scalar elements name[i] in index order.
// Elements that only have nested properties are skipped.
func (s *Store) Strings(name string) []string {
	var values []string

	for _, token := range s.Indices(name) {
		value, ok := s.values[name+Index(token)]
		if ok {
			values = append(values, value)
		}
	}

	return values
}

// scan calls visit for every key that starts with prefix, passing the key and
// the non-empty remainder after the prefix. Iteration stops when visit returns false.
func (s *Store) scan(prefix string, visit func(key, rest string) bool) {
	if prefix == "" {
		return
	}

	start, _ := slices.BinarySearch(s.keys, prefix)

	for _, key := range s.keys[start:] {
		if !strings.HasPrefix(key, prefix) {
			return
		}

		rest := key[len(prefix):]
		if rest == "" {
			continue
		}

		if !visit(key, rest) {
			return
		}
	}
}

// splitIndex splits "[token]tail" into its token and tail. The tail must be
// empty or start a new segment.
func splitIndex(rest string) (string, string, bool) {
	if !strings.HasPrefix(rest, "[") {
		return "", "", false
	}

	end := strings.IndexByte(rest, ']')
	if end <= 1 {
		return "", "", false
	}

	token := rest[1:end]
	if strings.ContainsRune(token, '[') {
		return "", "", false
	}

	tail := rest[end+1:]
	if tail != "" && tail[0] != '.' && tail[0] != '[' {
		return "", "", false
	}

	return token, tail, true
}

func compareIndex(left, right string) int {
	leftOrdinal, rightOrdinal := isOrdinal(left), isOrdinal(right)

	switch {
	case leftOrdinal && rightOrdinal:
		leftValue, _ := strconv.ParseUint(left, 10, 64)
		rightValue, _ := strconv.ParseUint(right, 10, 64)

		switch {
		case leftValue < rightValue:
			return -1
		case leftValue > rightValue:
			return 1
		default:
			return strings.Compare(left, right)
		}
	case leftOrdinal:
		return -1
	case rightOrdinal:
		return 1
	default:
		return strings.Compare(left, right)
	}
}
