package web

import (
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-extras/properties"

	"github.com/go-playground/validator/v10"
)

// DefaultAddress is the default address for the front controller listener.
const DefaultAddress = ":8080"

// ErrInvalidConfig is returned when the Config fails validation.
var ErrInvalidConfig = errors.New("invalid front controller config")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrEmptyName is returned when the module name is empty.
var ErrEmptyName = errors.New("front controller name must not be empty")

// ErrNilHandler is returned when a nil http.Handler is provided.
var ErrNilHandler = errors.New("handler must not be nil")

// Property keys read by Config.Bind, relative to the bound prefix.
const (
	AddressKey         = "address"
	URLMappingsKey     = "url-mappings"
	ServletRelativeKey = "servlet-relative-paths"
)

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	err := v.RegisterValidation("url_mapping", func(fl validator.FieldLevel) bool {
		_, parseErr := ParseMapping(fl.Field().String())

		return parseErr == nil
	})
	if err != nil {
		panic(err)
	}

	return v
}

// Config holds the configuration for a front controller.
type Config struct {
	// Address is the listen address, e.g. ":8080".
	Address string `validate:"required,hostname_port"`
	// URLMappings are the patterns routed to the primary handler.
	URLMappings []string `validate:"dive,url_mapping"`
	// ServletRelative strips the matched prefix before the primary handler sees the path.
	// By default the primary handler sees the full path.
	ServletRelative bool
}

// Bind reads the configuration below prefix.
func (c *Config) Bind(store *properties.Store, prefix string) error {
	c.Address = store.String(properties.Join(prefix, AddressKey), c.Address)

	if mappings := store.Strings(properties.Join(prefix, URLMappingsKey)); len(mappings) > 0 {
		c.URLMappings = mappings
	}

	servletRelative, err := store.Bool(properties.Join(prefix, ServletRelativeKey), c.ServletRelative)
	if err != nil {
		return err
	}

	c.ServletRelative = servletRelative

	return nil
}

// SetDefaults sets default values for the Config.
func (c *Config) SetDefaults() bool {
	if c.Address != "" {
		return false
	}

	c.Address = DefaultAddress

	return true
}

// Validate validates the Config.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}
