package config

import (
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-extras/properties"
)

// Binder defines an interface for filling a configuration structure from a
// properties snapshot. The prefix is the dotted path of the section, e.g. "web".
type Binder interface {
	Bind(store *properties.Store, prefix string) error
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that binds, sets defaults, and validates a configuration section.
// The returned function is Fx-friendly: it depends only on the *properties.Store in the graph.
func Provider[T any, PT interface {
	*T
	Binder
}](target PT, prefix string) func(*properties.Store) (*T, error) {
	return func(store *properties.Store) (*T, error) {
		if store == nil {
			store = properties.Empty()
		}

		err := target.Bind(store, prefix)
		if err != nil {
			return nil, fmt.Errorf("binding error: %w", err)
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("prefix", prefix))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return (*T)(target), nil
	}
}
