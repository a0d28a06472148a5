package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/0xalexb/hjarta-extras/config"

	"go.uber.org/fx"
)

// PrimaryTag returns the DI tag of the handler owning the URL mappings of the named front controller.
func PrimaryTag(name string) string {
	return fmt.Sprintf(`name:"%s.primary"`, name)
}

// FallbackTag returns the DI tag of the handler receiving unmapped requests.
func FallbackTag(name string) string {
	return fmt.Sprintf(`name:"%s.fallback"`, name)
}

// ConfigTag returns the DI tag of the named front controller's *Config.
func ConfigTag(name string) string {
	return fmt.Sprintf(`name:"%s"`, name)
}

// NewModule creates an Fx module for a named front controller.
// It consumes the http.Handler values tagged PrimaryTag(name) and FallbackTag(name).
// If any options are passed, the module supplies *Config from those options.
// Otherwise *Config tagged ConfigTag(name) must be provided externally, e.g. by ConfigFromProperties.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		cfg := &Config{}

		for _, apply := range opts {
			apply(cfg)
		}

		moduleOpts = append(moduleOpts, fx.Supply(
			fx.Annotate(cfg, fx.ResultTags(ConfigTag(name))),
		))
	}

	moduleOpts = append(moduleOpts, fx.Invoke(
		fx.Annotate(
			func(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, primary, fallback http.Handler, cfg *Config) error {
				if cfg == nil {
					return ErrInvalidConfig
				}

				srv, err := NewServer(name, primary, fallback, *cfg, func() {
					shutdownErr := shutdowner.Shutdown()
					if shutdownErr != nil {
						slog.Error("failed to trigger shutdown", "name", name, "error", shutdownErr)
					}
				})
				if err != nil {
					return err
				}

				lifecycle.Append(fx.Hook{
					OnStart: srv.Start,
					OnStop:  srv.Stop,
				})

				return nil
			},
			fx.ParamTags("", "", PrimaryTag(name), FallbackTag(name), ConfigTag(name)),
		),
	))

	return fx.Module(name, moduleOpts...)
}

// ConfigFromProperties provides the named front controller's *Config, bound
// from the *properties.Store below prefix.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func ConfigFromProperties(name, prefix string) fx.Option {
	return fx.Provide(
		fx.Annotate(
			config.Provider(&Config{}, prefix),
			fx.ResultTags(ConfigTag(name)),
		),
	)
}
