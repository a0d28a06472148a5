package condition

import (
	"fmt"
	"slices"
	"strings"

	"github.com/0xalexb/hjarta-extras/properties"
)

// Outcome is the result of evaluating a Condition.
type Outcome struct {
	Matched bool
	Message string
	// Missing lists fully-qualified property paths that were required but not found, sorted.
	Missing []string
	// Absent is set when nothing at all was found for the condition,
	// as opposed to something found but incomplete.
	Absent bool
}

// Match returns a matching Outcome.
func Match(message string) Outcome {
	return Outcome{Matched: true, Message: message, Missing: nil, Absent: false}
}

// NoMatch returns a non-matching Outcome with the given missing items, deduplicated and sorted.
func NoMatch(message string, missing ...string) Outcome {
	return Outcome{Matched: false, Message: message, Missing: sortedUnique(missing), Absent: false}
}

// NotFound returns a non-matching Outcome flagged as Absent.
func NotFound(message string, missing ...string) Outcome {
	outcome := NoMatch(message, missing...)
	outcome.Absent = true

	return outcome
}

// String renders the outcome for logs and CLI output.
func (o Outcome) String() string {
	if o.Matched {
		return "match: " + o.Message
	}

	return "no match: " + o.Message
}

// Condition decides whether a unit of configuration should be registered.
type Condition interface {
	// Name identifies the condition in reports and logs.
	Name() string
	// Evaluate inspects the store. It must not retain or mutate it.
	Evaluate(store *properties.Store) Outcome
}

type funcCondition struct {
	name string
	fn   func(*properties.Store) Outcome
}

func (c funcCondition) Name() string { return c.name }

func (c funcCondition) Evaluate(store *properties.Store) Outcome { return c.fn(store) }

// Func adapts a function into a Condition.
//
//nolint:ireturn // conditions are consumed through the interface
func Func(name string, fn func(*properties.Store) Outcome) Condition {
	return funcCondition{name: name, fn: fn}
}

type allCondition struct {
	conditions []Condition
}

// All returns a Condition that matches only when every given condition matches.
// Missing items of all failing conditions are merged. An empty All matches.
//
//nolint:ireturn // conditions are consumed through the interface
func All(conditions ...Condition) Condition {
	return allCondition{conditions: slices.Clone(conditions)}
}

func (c allCondition) Name() string {
	names := make([]string, 0, len(c.conditions))
	for _, cond := range c.conditions {
		names = append(names, cond.Name())
	}

	return "All(" + strings.Join(names, ", ") + ")"
}

func (c allCondition) Evaluate(store *properties.Store) Outcome {
	var (
		missing  []string
		messages []string
		absent   = true
	)

	for _, cond := range c.conditions {
		outcome := cond.Evaluate(store)
		if outcome.Matched {
			continue
		}

		missing = append(missing, outcome.Missing...)
		messages = append(messages, fmt.Sprintf("%s %s", cond.Name(), outcome.Message))
		absent = absent && outcome.Absent
	}

	if len(messages) == 0 {
		return Match(fmt.Sprintf("all %d conditions matched", len(c.conditions)))
	}

	outcome := NoMatch(strings.Join(messages, "; "), missing...)
	outcome.Absent = absent

	return outcome
}

func sortedUnique(items []string) []string {
	if len(items) == 0 {
		return nil
	}

	sorted := slices.Clone(items)
	slices.Sort(sorted)

	return slices.Compact(sorted)
}
