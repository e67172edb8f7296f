// Package page renders a reorderable list as a complete HTML document whose
// markup matches the class and id conventions a dragdrop.Controller expects.
package page

import (
	"embed"
	"errors"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-reorder/pkg/dom"
	"github.com/goliatone/go-reorder/pkg/dragdrop"
	"github.com/goliatone/go-reorder/pkg/order"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

const (
	listTemplate = "templates/list.tpl"

	DefaultTitle       = "Reorder"
	DefaultFieldName   = "drop-article-order"
	DefaultLockLabel   = "Lock"
	DefaultSubmitLabel = "Save order"
)

// Templates exposes the embedded templates so callers can copy or extend them.
func Templates() fs.FS {
	return templatesFS
}

// Item is a single entry of the list. Body is trusted markup placed inside the
// element before the lock control.
type Item struct {
	ID     string   `json:"id" yaml:"id"`
	Body   string   `json:"body" yaml:"body"`
	Groups []string `json:"groups,omitempty" yaml:"groups,omitempty"`
	Locked bool     `json:"locked,omitempty" yaml:"locked,omitempty"`
}

// List is the page model.
type List struct {
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Action    string `json:"action,omitempty" yaml:"action,omitempty"`
	FieldName string `json:"fieldName,omitempty" yaml:"fieldName,omitempty"`
	Items     []Item `json:"items" yaml:"items"`
}

// Records reports the order the rendered page serializes to before any gesture.
func (l List) Records() []order.Record {
	out := make([]order.Record, 0, len(l.Items))
	for _, item := range l.Items {
		out = append(out, order.Record{ID: item.ID, Locked: item.Locked})
	}
	return out
}

type Option func(*Renderer)

// WithControllerOptions sets the class names and ids used in the markup.
func WithControllerOptions(opts dragdrop.Options) Option {
	return func(r *Renderer) {
		r.controller = dragdrop.NewOptions(dragdrop.WithOptions(opts))
	}
}

func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// WithStylesheet links a stylesheet when the theme does not resolve one.
func WithStylesheet(href string) Option {
	return func(r *Renderer) {
		r.stylesheet = strings.TrimSpace(href)
	}
}

// WithTemplatesDir loads templates from disk ahead of the embedded set.
func WithTemplatesDir(dir string) Option {
	return func(r *Renderer) {
		r.baseDir = strings.TrimSpace(dir)
	}
}

// WithTemplatesFS replaces the embedded templates. The filesystem must carry
// templates/list.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.files = files
		}
	}
}

func WithLabels(lock, submit string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(lock) != "" {
			r.lockLabel = lock
		}
		if strings.TrimSpace(submit) != "" {
			r.submitLabel = submit
		}
	}
}

type Renderer struct {
	controller  dragdrop.Options
	theme       *theme.RendererConfig
	stylesheet  string
	baseDir     string
	files       fs.FS
	lockLabel   string
	submitLabel string

	engine *engine
}

func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		controller:  dragdrop.NewOptions(),
		files:       templatesFS,
		lockLabel:   DefaultLockLabel,
		submitLabel: DefaultSubmitLabel,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if err := r.controller.Validate(); err != nil {
		return nil, err
	}

	eng, err := newEngine(r.files, r.baseDir)
	if err != nil {
		return nil, err
	}
	r.engine = eng
	return r, nil
}

// ControllerOptions returns the options the markup was rendered for.
func (r *Renderer) ControllerOptions() dragdrop.Options {
	return r.controller
}

// Render produces the HTML document for list, writing it to every writer in
// out as well as returning it.
func (r *Renderer) Render(list List, out ...io.Writer) (string, error) {
	if r == nil || r.engine == nil {
		return "", errors.New("page: renderer is nil")
	}

	rendered, err := r.engine.render(listTemplate, r.context(list))
	if err != nil {
		return "", err
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// Document renders list and parses the result, ready for a controller.
func (r *Renderer) Document(list List) (*dom.Document, error) {
	rendered, err := r.Render(list)
	if err != nil {
		return nil, err
	}
	return dom.ParseString(rendered)
}

func (r *Renderer) context(list List) pongo2.Context {
	title := strings.TrimSpace(list.Title)
	if title == "" {
		title = DefaultTitle
	}
	fieldName := strings.TrimSpace(list.FieldName)
	if fieldName == "" {
		fieldName = DefaultFieldName
	}

	items := make([]map[string]any, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, map[string]any{
			"id":     item.ID,
			"class":  r.itemClass(item),
			"body":   item.Body,
			"locked": item.Locked,
		})
	}

	return pongo2.Context{
		"title":       title,
		"action":      strings.TrimSpace(list.Action),
		"fieldName":   fieldName,
		"items":       items,
		"lockClass":   r.controller.LockedCheckboxSelector,
		"inputOrder":  r.controller.InputOrder,
		"lockLabel":   r.lockLabel,
		"submitLabel": r.submitLabel,
		"theme":       buildThemeContext(r.theme),
		"stylesheet":  r.stylesheetHref(),
	}
}

func (r *Renderer) itemClass(item Item) string {
	classes := []string{r.controller.DragItemClass}
	if item.Locked {
		classes = append(classes, r.controller.LockedClass)
	} else {
		classes = append(classes, r.controller.DraggableClass)
	}
	for _, group := range item.Groups {
		if group = strings.TrimSpace(group); group != "" {
			classes = append(classes, group)
		}
	}
	return strings.Join(classes, " ")
}

func (r *Renderer) stylesheetHref() string {
	if resolver := themeAssetResolver(r.theme); resolver != nil {
		if resolved := strings.TrimSpace(resolver(themeAssetStylesheet)); resolved != "" {
			return resolved
		}
	}
	return r.stylesheet
}
