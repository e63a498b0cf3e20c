package asset

import "go.uber.org/zap"

// DefaultMaxPayload is the largest bitmap payload a Loader accepts unless
// configured otherwise.
const DefaultMaxPayload int64 = 256 << 20

type options struct {
	log        *zap.Logger
	maxPayload int64
}

// Option configures an Encoder or Loader.
type Option func(*options)

// WithLogger sets the logger used for debug output. Nil restores the no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithMaxPayload caps the declared bitmap payload length accepted by a Loader.
// Non-positive values restore DefaultMaxPayload.
func WithMaxPayload(n int64) Option {
	return func(o *options) {
		o.maxPayload = n
	}
}

func buildOptions(opts []Option) options {
	o := options{maxPayload: DefaultMaxPayload}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.maxPayload <= 0 {
		o.maxPayload = DefaultMaxPayload
	}
	return o
}
