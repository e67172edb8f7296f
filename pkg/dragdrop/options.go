package dragdrop

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultDragItemClass          = "item"
	DefaultDraggableClass         = "draggable"
	DefaultLockedClass            = "locked"
	DefaultOverClass              = "over"
	DefaultInputOrder             = "drop-article-order"
	DefaultLockedCheckboxSelector = "lock-element"
)

// Options configures a Controller. Build it through NewOptions so defaults
// and normalisation are applied; the controller keeps its own copy.
type Options struct {
	DragItemClass          string   `json:"dragItemClass" yaml:"dragItemClass"`
	DraggableClass         string   `json:"draggableClass" yaml:"draggableClass"`
	LockedClass            string   `json:"lockedClass" yaml:"lockedClass"`
	OverClass              string   `json:"overClass" yaml:"overClass"`
	InputOrder             string   `json:"inputOrder" yaml:"inputOrder"`
	LockedCheckboxSelector string   `json:"lockedCheckboxSelector" yaml:"lockedCheckboxSelector"`
	ElementsToSwitch       []string `json:"elementsToSwitch" yaml:"elementsToSwitch"`
	CheckSameClasses       []string `json:"checkSameClasses" yaml:"checkSameClasses"`

	// Sanitizer, when set, cleans markup that arrives through an external
	// DataTransfer before it is applied to the drop target.
	Sanitizer *bluemonday.Policy `json:"-" yaml:"-"`
	Logger    Logger             `json:"-" yaml:"-"`
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		DragItemClass:          DefaultDragItemClass,
		DraggableClass:         DefaultDraggableClass,
		LockedClass:            DefaultLockedClass,
		OverClass:              DefaultOverClass,
		InputOrder:             DefaultInputOrder,
		LockedCheckboxSelector: DefaultLockedCheckboxSelector,
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

	opts.DragItemClass = orDefault(opts.DragItemClass, DefaultDragItemClass)
	opts.DraggableClass = orDefault(opts.DraggableClass, DefaultDraggableClass)
	opts.LockedClass = orDefault(opts.LockedClass, DefaultLockedClass)
	opts.OverClass = orDefault(opts.OverClass, DefaultOverClass)
	opts.InputOrder = orDefault(opts.InputOrder, DefaultInputOrder)
	opts.LockedCheckboxSelector = strings.TrimPrefix(
		orDefault(opts.LockedCheckboxSelector, DefaultLockedCheckboxSelector), ".")
	opts.ElementsToSwitch = normaliseList(opts.ElementsToSwitch, true)
	opts.CheckSameClasses = normaliseList(opts.CheckSameClasses, false)
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	return opts
}

// Validate reports configuration that would break the controller
// invariants. NewOptions output only fails on caller supplied values.
func (o Options) Validate() error {
	tokens := []struct{ key, value string }{
		{"dragItemClass", o.DragItemClass},
		{"draggableClass", o.DraggableClass},
		{"lockedClass", o.LockedClass},
		{"overClass", o.OverClass},
		{"inputOrder", o.InputOrder},
		{"lockedCheckboxSelector", o.LockedCheckboxSelector},
	}
	for _, token := range tokens {
		if token.value == "" {
			return fmt.Errorf("dragdrop: %s is required", token.key)
		}
		if strings.ContainsAny(token.value, " \t\r\n\f") {
			return fmt.Errorf("dragdrop: %s %q must be a single token", token.key, token.value)
		}
	}
	if o.DraggableClass == o.LockedClass {
		return fmt.Errorf("dragdrop: draggableClass and lockedClass must differ (both %q)", o.LockedClass)
	}
	for _, tag := range o.ElementsToSwitch {
		if strings.ContainsAny(tag, " \t\r\n\f.#[]>") {
			return fmt.Errorf("dragdrop: elementsToSwitch entry %q must be a tag name", tag)
		}
		if tag == payloadIDKey {
			return fmt.Errorf("dragdrop: elementsToSwitch cannot contain %q, it is reserved for the identity", payloadIDKey)
		}
	}
	for _, class := range o.CheckSameClasses {
		if strings.ContainsAny(class, " \t\r\n\f") {
			return fmt.Errorf("dragdrop: checkSameClasses entry %q must be a single token", class)
		}
	}
	return nil
}

func WithDragItemClass(class string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DragItemClass = class
	}
}

func WithDraggableClass(class string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DraggableClass = class
	}
}

func WithLockedClass(class string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LockedClass = class
	}
}

func WithOverClass(class string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OverClass = class
	}
}

func WithInputOrder(id string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.InputOrder = id
	}
}

func WithLockedCheckboxSelector(class string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LockedCheckboxSelector = class
	}
}

// WithElementsToSwitch sets the tag names whose first descendant travels
// with an element during an exchange.
func WithElementsToSwitch(tags ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ElementsToSwitch = append([]string{}, tags...)
	}
}

// WithCheckSameClasses restricts exchanges to elements sharing the same
// group class.
func WithCheckSameClasses(classes ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CheckSameClasses = append([]string{}, classes...)
	}
}

func WithSanitizer(policy *bluemonday.Policy) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Sanitizer = policy
	}
}

func WithLogger(logger Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithOptions replaces the whole configuration, typically with the result
// of LoadConfig. Later OptionFns still apply on top.
func WithOptions(opts Options) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		*o = opts
		o.ElementsToSwitch = append([]string(nil), opts.ElementsToSwitch...)
		o.CheckSameClasses = append([]string(nil), opts.CheckSameClasses...)
	}
}

func orDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

func normaliseList(values []string, lower bool) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if lower {
			value = strings.ToLower(value)
		}
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
