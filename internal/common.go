package internal

// FnModeOptions carries the cross-cutting run modes. Debug turns on
// request/response logging; Test keeps components from touching the
// network (used by the TUI remote).
type FnModeOptions struct {
	Debug bool
	Test  bool
}

type FnModeOption func(*FnModeOptions)

func WithDebug(debug bool) FnModeOption {
	return func(opts *FnModeOptions) {
		opts.Debug = debug
	}
}

func WithTest(test bool) FnModeOption {
	return func(opts *FnModeOptions) {
		opts.Test = test
	}
}

func NewModeOptions(options ...FnModeOption) *FnModeOptions {
	opts := &FnModeOptions{}
	for _, option := range options {
		option(opts)
	}
	return opts
}
