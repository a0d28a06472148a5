// Package exclude injects every member of an Fx value group except those
// carrying a given qualifier.
//
// Members opt in to qualification by implementing Qualified. Members that do
// not implement it are always kept.
//
//	fx.Provide(
//	    fx.Annotate(newAuditSink, fx.ResultTags(`group:"sinks"`)),
//	    fx.Annotate(newDebugSink, fx.ResultTags(`group:"sinks"`)),
//	),
//	exclude.Provide[Sink]("sinks", "debug", "sinks.production"),
//
// The filtered slice is then available as []Sink tagged name:"sinks.production".
package exclude

import (
	"errors"
	"fmt"
	"log/slog"

	"go.uber.org/fx"
)

// ErrEmptyGroup is returned when no source value group is given.
var ErrEmptyGroup = errors.New("value group must not be empty")

// ErrEmptyName is returned when no result name is given.
var ErrEmptyName = errors.New("result name must not be empty")

// Qualified is implemented by instances that carry a qualifier.
type Qualified interface {
	Qualifier() string
}

// Filter returns the candidates whose qualifier differs from qualifier, preserving their order.
// Candidates that are not Qualified are kept. The input slice is not modified.
func Filter[T any](candidates []T, qualifier string) []T {
	kept := make([]T, 0, len(candidates))

	for _, candidate := range candidates {
		if Excluded(candidate, qualifier) {
			continue
		}

		kept = append(kept, candidate)
	}

	return kept
}

// Excluded reports whether candidate carries qualifier.
func Excluded(candidate any, qualifier string) bool {
	qualified, ok := candidate.(Qualified)

	return ok && qualified.Qualifier() == qualifier
}

// Provide registers a constructor consuming the value group and providing the
// members not qualified with qualifier as []T tagged name:"<name>".
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Provide[T any](group, qualifier, name string) fx.Option {
	if group == "" {
		return fx.Error(ErrEmptyGroup)
	}

	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	return fx.Provide(
		fx.Annotate(
			func(candidates []T) []T {
				kept := Filter(candidates, qualifier)

				slog.Debug("group members excluded",
					slog.String("group", group),
					slog.String("qualifier", qualifier),
					slog.String("name", name),
					slog.Int("candidates", len(candidates)),
					slog.Int("kept", len(kept)),
				)

				return kept
			},
			fx.ParamTags(fmt.Sprintf(`group:"%s"`, group)),
			fx.ResultTags(fmt.Sprintf(`name:"%s"`, name)),
		),
	)
}
