package tool

import "github.com/hashicorp/go-hclog"

// options are shared by Extractor and Transcoder.
type options struct {
	runner ProcessRunner
	logger hclog.Logger
}

// Option configures an Extractor or Transcoder.
type Option func(*options)

// WithRunner sets the process runner used to invoke the tool.
func WithRunner(r ProcessRunner) Option {
	return func(o *options) {
		o.runner = r
	}
}

// WithLogger sets the logger for tool invocations.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{
		runner: NewRealProcessRunner(),
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
