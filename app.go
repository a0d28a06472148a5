package extras

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta-extras/conditional"
	"github.com/0xalexb/hjarta-extras/logging"
	"github.com/0xalexb/hjarta-extras/properties"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// LoggingPrefix is the property section read into the logger configuration.
const LoggingPrefix = "logging"

var errAppNotInitialized = errors.New("app not initialized")

// App is a configured starting point for an application using Fx.
type App struct {
	app    *fx.App
	report *conditional.Report
}

// NewApp creates a new instance of App with Fx configured.
// Conditional modules are evaluated here, against the properties in effect.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return configure(&options, os.Stderr)
}

func configure(options *Options, w io.Writer) *App {
	store := options.Properties
	if store == nil {
		store = properties.Empty()
	}

	loggerConfig := resolveLoggerConfig(options, store)
	logger := logging.NewLogger(loggerConfig, w)
	slog.SetDefault(logger)

	evaluator := conditional.NewEvaluator(store)

	modules := make([]fx.Option, 0, len(options.ConditionalModules))
	for _, module := range options.ConditionalModules {
		modules = append(modules, evaluator.Module(module.Name, module.Condition, module.Options...))
	}

	return &App{
		app: fx.New(
			fx.WithLogger(func() fxevent.Logger {
				return &fxevent.SlogLogger{Logger: logger}
			}),
			fx.Supply(loggerConfig),
			fx.Supply(logger),
			fx.Supply(store),
			fx.Supply(evaluator.Report()),
			fx.Options(options.Modules...),
			fx.Options(modules...),
		),
		report: evaluator.Report(),
	}
}

// resolveLoggerConfig reads the logging section of the store; explicit options win.
func resolveLoggerConfig(options *Options, store *properties.Store) logging.LoggerConfig {
	var config logging.LoggerConfig

	_ = config.Bind(store, LoggingPrefix)

	if options.LogLevel != "" {
		config.Level = options.LogLevel
	}

	if options.LogFile != "" {
		config.File = options.LogFile
	}

	return config
}

// Report returns the outcomes of the conditional modules, nil for an uninitialized app.
func (app *App) Report() *conditional.Report {
	if app == nil {
		return nil
	}

	return app.report
}

// Err returns the error Fx recorded while building the graph, if any.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err() //nolint:wrapcheck // fx already describes the failing constructor.
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
