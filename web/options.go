package web

// Option defines a function type for configuring a front controller.
type Option func(*Config)

// WithAddress sets the listen address.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithURLMappings adds URL patterns routed to the primary handler.
func WithURLMappings(patterns ...string) Option {
	return func(cfg *Config) {
		cfg.URLMappings = append(cfg.URLMappings, patterns...)
	}
}

// WithServletRelativePaths makes the primary handler see paths relative to the matched prefix.
func WithServletRelativePaths() Option {
	return func(cfg *Config) {
		cfg.ServletRelative = true
	}
}
