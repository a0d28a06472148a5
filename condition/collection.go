package condition

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/0xalexb/hjarta-extras/properties"
)

// ErrEmptyName is returned when a collection condition has no base path.
var ErrEmptyName = errors.New("collection name must not be empty")

// ErrNoSubProperties is returned when a collection condition requires no sub-properties.
var ErrNoSubProperties = errors.New("at least one sub-property is required")

// ErrInvalidSubProperty is returned for empty, duplicated or path-like sub-property names.
var ErrInvalidSubProperty = errors.New("invalid sub-property name")

// OnPropertiesCollection matches when every element of the indexed collection
// under Name defines all SubProperties.
type OnPropertiesCollection struct {
	name          string
	subProperties []string
}

// NewOnPropertiesCollection validates the request and returns the condition.
func NewOnPropertiesCollection(name string, subProperties ...string) (*OnPropertiesCollection, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	_, err := properties.ParsePath(name)
	if err != nil {
		return nil, fmt.Errorf("collection name: %w", err)
	}

	if len(subProperties) == 0 {
		return nil, fmt.Errorf("collection %q: %w", name, ErrNoSubProperties)
	}

	seen := make(map[string]struct{}, len(subProperties))

	for _, sub := range subProperties {
		if !properties.ValidKey(sub) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSubProperty, sub)
		}

		if _, duplicate := seen[sub]; duplicate {
			return nil, fmt.Errorf("%w: %q is listed twice", ErrInvalidSubProperty, sub)
		}

		seen[sub] = struct{}{}
	}

	return &OnPropertiesCollection{
		name:          name,
		subProperties: slices.Clone(subProperties),
	}, nil
}

// MustOnPropertiesCollection is like NewOnPropertiesCollection but panics on invalid input.
// It is meant for package-level declarations with literal arguments.
func MustOnPropertiesCollection(name string, subProperties ...string) *OnPropertiesCollection {
	cond, err := NewOnPropertiesCollection(name, subProperties...)
	if err != nil {
		panic(err)
	}

	return cond
}

// Name returns a description including the collection and its required sub-properties.
func (c *OnPropertiesCollection) Name() string {
	return fmt.Sprintf("OnPropertiesCollection(%s[].{%s})", c.name, strings.Join(c.subProperties, ","))
}

// Evaluate checks the store.
func (c *OnPropertiesCollection) Evaluate(store *properties.Store) Outcome {
	return Validate(store, c.name, c.subProperties)
}

// Validate checks that every element of the indexed collection addressed by name
// defines each of the required sub-properties.
//
// A store without any name[token] entries yields an Absent no-match listing
// name[].sub for every required sub. Otherwise the outcome lists exactly the
// name[token].sub paths that are not defined. An empty name never matches; an
// empty required list matches whenever the collection has elements.
func Validate(store *properties.Store, name string, required []string) Outcome {
	if name == "" || store == nil {
		return NotFound("no collection name or properties to inspect", unresolved(name, required)...)
	}

	indices := store.Indices(name)
	if len(indices) == 0 {
		return NotFound(
			fmt.Sprintf("did not find property collection %s", name),
			unresolved(name, required)...,
		)
	}

	var missing []string

	for _, index := range indices {
		element := name + properties.Index(index)

		for _, sub := range required {
			fullPath := properties.Join(element, sub)
			if !store.Defines(fullPath) {
				missing = append(missing, fullPath)
			}
		}
	}

	if len(missing) > 0 {
		outcome := NoMatch("", missing...)
		outcome.Message = "did not find properties " + strings.Join(outcome.Missing, ", ")

		return outcome
	}

	return Match(fmt.Sprintf("found property collection %s (%d elements)", name, len(indices)))
}

func unresolved(name string, required []string) []string {
	items := make([]string, 0, len(required))
	for _, sub := range required {
		items = append(items, fmt.Sprintf("%s[].%s", name, sub))
	}

	return items
}
