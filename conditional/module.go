package conditional

import (
	"errors"
	"log/slog"

	"github.com/0xalexb/hjarta-extras/condition"
	"github.com/0xalexb/hjarta-extras/properties"

	"go.uber.org/fx"
)

// ErrEmptyName is returned when the module name is empty.
var ErrEmptyName = errors.New("module name must not be empty")

// ErrNilCondition is returned when no condition is given.
var ErrNilCondition = errors.New("condition must not be nil")

// Evaluator gates modules on conditions evaluated against one properties snapshot.
type Evaluator struct {
	store  *properties.Store
	report *Report
}

// NewEvaluator creates an Evaluator with a fresh Report. A nil store is treated as empty.
func NewEvaluator(store *properties.Store) *Evaluator {
	if store == nil {
		store = properties.Empty()
	}

	return &Evaluator{
		store:  store,
		report: NewReport(),
	}
}

// Store returns the snapshot conditions are evaluated against.
func (e *Evaluator) Store() *properties.Store {
	return e.store
}

// Report returns the evaluations made so far.
func (e *Evaluator) Report() *Report {
	return e.report
}

// Module evaluates cond and returns an Fx module named name holding opts when
// it matches, or an empty option otherwise.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func (e *Evaluator) Module(name string, cond condition.Condition, opts ...fx.Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	if cond == nil {
		return fx.Error(ErrNilCondition)
	}

	outcome := cond.Evaluate(e.store)

	e.report.record(Entry{
		Module:    name,
		Condition: cond.Name(),
		Outcome:   outcome,
	})
	Evaluations.WithLabelValues(name, outcomeLabel(outcome.Matched)).Inc()

	if !outcome.Matched {
		slog.Info("module skipped",
			slog.String("module", name),
			slog.String("condition", cond.Name()),
			slog.String("reason", outcome.Message),
			slog.Any("missing", outcome.Missing),
		)

		return fx.Options()
	}

	slog.Debug("module enabled",
		slog.String("module", name),
		slog.String("condition", cond.Name()),
		slog.String("reason", outcome.Message),
	)

	return fx.Module(name, opts...)
}

// Module gates opts on cond using a one-off Evaluator over store.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module(name string, store *properties.Store, cond condition.Condition, opts ...fx.Option) fx.Option {
	return NewEvaluator(store).Module(name, cond, opts...)
}
