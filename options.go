package extras

import (
	"github.com/0xalexb/hjarta-extras/condition"
	"github.com/0xalexb/hjarta-extras/properties"
	"github.com/0xalexb/hjarta-extras/web"

	"go.uber.org/fx"
)

// ConditionalModule is a module registered only when its condition matches the properties.
type ConditionalModule struct {
	Name      string
	Condition condition.Condition
	Options   []fx.Option
}

// Options holds configuration settings for the application.
type Options struct {
	Modules            []fx.Option
	ConditionalModules []ConditionalModule
	Properties         *properties.Store
	LogLevel           string
	LogFile            string
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithProperties sets the properties the application is configured from.
// The store is supplied to the graph and drives conditional modules.
func WithProperties(store *properties.Store) Option {
	return func(opts *Options) {
		opts.Properties = store
	}
}

// WithConditionalModule adds a module whose options are registered only when cond matches.
// The outcome is recorded in the *conditional.Report supplied to the graph.
func WithConditionalModule(name string, cond condition.Condition, modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.ConditionalModules = append(opts.ConditionalModules, ConditionalModule{
			Name:      name,
			Condition: cond,
			Options:   modules,
		})
	}
}

// WithFrontController adds a named front controller module to the application.
// The primary and fallback handlers are looked up by web.PrimaryTag(name) and web.FallbackTag(name).
// Without options, *web.Config tagged name must be provided, e.g. by web.ConfigFromProperties.
func WithFrontController(name string, opts ...web.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, web.NewModule(name, opts...))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// It overrides logging.level from the properties; if neither is set the level is "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFile sends log records to a rotated file instead of stderr.
func WithLogFile(path string) Option {
	return func(opts *Options) {
		opts.LogFile = path
	}
}
