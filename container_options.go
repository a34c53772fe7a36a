package switchboard

import "go.uber.org/zap"

// Option configures a Container at construction time.
type Option interface {
	apply(*Container)
}

type optionFunc func(*Container)

func (f optionFunc) apply(c *Container) {
	f(c)
}

// WithFactoryKey replaces the reserved mapping key that marks factory
// invocations. The default is ":".
func WithFactoryKey(key string) Option {
	return optionFunc(func(c *Container) {
		c.factoryKey = key
	})
}

// WithSymbolResolver replaces the built-in Registry with a custom symbol
// resolver. Useful for substituting a deterministic fake in tests.
func WithSymbolResolver(resolver SymbolResolver) Option {
	return optionFunc(func(c *Container) {
		c.symbols = resolver
	})
}

// WithLogger attaches a structured logger. Builds, cache activity, and
// failures are logged at debug level. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	})
}
