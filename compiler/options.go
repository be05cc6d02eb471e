package compiler

// Option configures a Compile call, following the functional-options
// pattern used throughout this module (see vm.Option).
type Option interface{ apply(c *compiler) }

// WithLogf installs a trace logging function, called once per folded run,
// per loop classification decision (including dead-loop skips), and per
// emitted Input or Output. Nil (the default) disables trace logging.
func WithLogf(logf func(mess string, args ...interface{})) Option {
	return logfOption(logf)
}

type logfOption func(mess string, args ...interface{})

func (o logfOption) apply(c *compiler) { c.logf = o }

// Options folds a slice of Option into a single Option, in order.
func Options(opts ...Option) Option {
	return optionSlice(opts)
}

type optionSlice []Option

func (opts optionSlice) apply(c *compiler) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(c)
		}
	}
}
