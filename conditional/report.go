package conditional

import (
	"slices"
	"sync"

	"github.com/0xalexb/hjarta-extras/condition"
)

// Entry records one condition evaluation.
type Entry struct {
	Module    string
	Condition string
	Outcome   condition.Outcome
}

// Report collects condition evaluations in the order they happened.
type Report struct {
	mu      sync.Mutex
	entries []Entry
}

// NewReport creates an empty Report.
func NewReport() *Report {
	return &Report{mu: sync.Mutex{}, entries: nil}
}

func (r *Report) record(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
}

// Entries returns a copy of all recorded evaluations.
func (r *Report) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.entries)
}

// Matched returns the evaluations whose condition matched.
func (r *Report) Matched() []Entry {
	return r.filter(true)
}

// Skipped returns the evaluations whose condition did not match.
func (r *Report) Skipped() []Entry {
	return r.filter(false)
}

func (r *Report) filter(matched bool) []Entry {
	var result []Entry

	for _, entry := range r.Entries() {
		if entry.Outcome.Matched == matched {
			result = append(result, entry)
		}
	}

	return result
}
