package ordersubmit

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-reorder/pkg/order"
)

const (
	DefaultRoutePath    = "/api/order"
	DefaultFieldName    = "drop-article-order"
	DefaultMaxBodyBytes = int64(1 << 20)
)

type GuardFunc func(r *http.Request) error

// SubmitFunc receives the validated records. Returning a StatusError selects
// the response code.
type SubmitFunc func(ctx context.Context, records []order.Record) error

type Options struct {
	RoutePath    string
	FieldName    string
	MaxBodyBytes int64
	Guard        GuardFunc
	OnSubmit     SubmitFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    DefaultRoutePath,
		FieldName:    DefaultFieldName,
		MaxBodyBytes: DefaultMaxBodyBytes,
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
	if strings.TrimSpace(opts.RoutePath) == "" {
		opts.RoutePath = DefaultRoutePath
	}
	if strings.TrimSpace(opts.FieldName) == "" {
		opts.FieldName = DefaultFieldName
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
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

// WithFieldName sets the form field carrying the serialized order. It should
// match the name attribute of the sink input.
func WithFieldName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FieldName = strings.TrimSpace(name)
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
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

func WithOnSubmit(fn SubmitFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OnSubmit = fn
	}
}
