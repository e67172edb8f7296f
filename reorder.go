// Package reorder is the top-level entry point for drag-and-drop reordering of
// HTML lists. It re-exports the controller types and wires the common
// parse, bootstrap and render steps.
package reorder

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/goliatone/go-reorder/pkg/dom"
	"github.com/goliatone/go-reorder/pkg/dragdrop"
	"github.com/goliatone/go-reorder/pkg/order"
	"github.com/goliatone/go-reorder/pkg/page"
)

// Controller aliases dragdrop.Controller.
type Controller = dragdrop.Controller

type Options = dragdrop.Options

type OptionFn = dragdrop.OptionFn

// Record is one entry of the serialized order.
type Record = order.Record

type Outcome = dragdrop.Outcome

// List and Item describe a page rendered by RenderList.
type (
	List = page.List
	Item = page.Item
)

// New wires a controller to doc without initialising it.
func New(doc *dom.Document, fns ...OptionFn) (*Controller, error) {
	return dragdrop.New(doc, fns...)
}

// Bootstrap parses r, builds a controller and runs its initial pass. The
// returned records are the order written to the sink.
func Bootstrap(r io.Reader, fns ...OptionFn) (*Controller, []Record, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reorder: parse document: %w", err)
	}
	ctrl, err := dragdrop.New(doc, fns...)
	if err != nil {
		return nil, nil, err
	}
	return ctrl, ctrl.Init(), nil
}

// RenderList renders list with the built-in template and returns a live
// controller over the result.
func RenderList(list List, fns ...OptionFn) (*Controller, error) {
	opts := dragdrop.NewOptions(fns...)
	renderer, err := page.New(page.WithControllerOptions(opts))
	if err != nil {
		return nil, err
	}
	doc, err := renderer.Document(list)
	if err != nil {
		return nil, err
	}
	ctrl, err := dragdrop.New(doc, dragdrop.WithOptions(opts))
	if err != nil {
		return nil, err
	}
	ctrl.Init()
	return ctrl, nil
}

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the page package directly.
func EmbeddedTemplates() fs.FS {
	return page.Templates()
}
