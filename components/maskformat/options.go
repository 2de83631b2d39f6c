package maskformat

import (
	"net/http"

	"github.com/goliatone/go-formmask/pkg/binder"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath      string
	PresetParam    string
	ValueParam     string
	DefaultPreset  string
	MaxValueLength int
	Guard          GuardFunc

	Registry *binder.Registry
	Metrics  *Metrics
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:      "/api/masks",
		PresetParam:    "preset",
		ValueParam:     "value",
		DefaultPreset:  "datetime",
		MaxValueLength: 256,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/masks"
	}
	if opts.PresetParam == "" {
		opts.PresetParam = "preset"
	}
	if opts.ValueParam == "" {
		opts.ValueParam = "value"
	}
	if opts.MaxValueLength <= 0 {
		opts.MaxValueLength = 256
	}
	if opts.Registry == nil {
		opts.Registry = binder.NewRegistry()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithPresetParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PresetParam = name
	}
}

func WithValueParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ValueParam = name
	}
}

// WithDefaultPreset sets the preset used when the request names none. An
// empty name makes the preset parameter mandatory.
func WithDefaultPreset(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultPreset = name
	}
}

func WithMaxValueLength(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxValueLength = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithRegistry(reg *binder.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = reg
	}
}

func WithMetrics(m *Metrics) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Metrics = m
	}
}
