// Package config binds typed configuration sections from a properties.Store.
//
// The package uses an interface-based design with three extension points:
//   - Binder: copies values under a prefix from the store into the struct
//   - Defaulter: applies default values before validation
//   - Validator: validates config after defaults
//
// # Prefixes
//
// The Provider function accepts the dotted prefix of the section to bind.
// Binders typically read keys with properties.Join(prefix, "key"):
//
//	"web"        -> web.address, web.url-mappings[0], ...
//	""           -> top-level keys
//
// # Example
//
//	type APIConfig struct {
//	    BaseURL string
//	}
//
//	func (c *APIConfig) Bind(store *properties.Store, prefix string) error {
//	    c.BaseURL = store.String(properties.Join(prefix, "base-url"), "")
//	    return nil
//	}
//
//	provide := config.Provider(&APIConfig{}, "services.api")
//	cfg, err := provide(store)
package config
