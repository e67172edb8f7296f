package dragdrop

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-reorder/pkg/dom"
)

// LockCoordinator switches elements between draggable and locked modes from
// the state of their lock checkbox.
type LockCoordinator struct {
	doc        *dom.Document
	opts       Options
	serializer *Serializer
	attached   map[*html.Node]struct{}
}

func NewLockCoordinator(doc *dom.Document, opts Options, serializer *Serializer) *LockCoordinator {
	return &LockCoordinator{
		doc:        doc,
		opts:       opts,
		serializer: serializer,
		attached:   make(map[*html.Node]struct{}),
	}
}

// Controls returns the lock checkboxes currently in the document.
func (l *LockCoordinator) Controls() []*html.Node {
	return l.doc.ElementsByTagAndClass("input", l.opts.LockedCheckboxSelector)
}

// AttachListeners replaces the attached set with the controls currently in
// the document, so repeated calls never make a control fire twice.
func (l *LockCoordinator) AttachListeners() int {
	controls := l.Controls()
	l.attached = make(map[*html.Node]struct{}, len(controls))
	for _, control := range controls {
		l.attached[control] = struct{}{}
	}
	return len(controls)
}

func (l *LockCoordinator) Attached(control *html.Node) bool {
	_, ok := l.attached[control]
	return ok
}

// Toggle sets the checked state of control, as a user click would, and
// runs the change handler when a listener is attached to it.
func (l *LockCoordinator) Toggle(control *html.Node, checked bool) bool {
	if control == nil {
		return false
	}
	dom.SetChecked(control, checked)
	if !l.Attached(control) {
		return false
	}
	l.Handle(control)
	return true
}

// Handle applies the checked state of control to the element two levels up
// and re-serializes the order. It reports the resulting mode and whether
// that ancestor is a reorderable element.
func (l *LockCoordinator) Handle(control *html.Node) (Mode, bool) {
	defer l.serializer.Serialize()

	target := dom.Ancestor(control, 2)
	if target == nil || !dom.HasClass(target, l.opts.DragItemClass) {
		l.opts.Logger.Debugf("dragdrop: lock control has no reorderable grandparent")
		return ModeNeutral, false
	}

	if dom.Checked(control) {
		dom.RemoveClass(target, l.opts.DraggableClass)
		dom.AddClass(target, l.opts.LockedClass)
		return ModeLocked, true
	}
	dom.AddClass(target, l.opts.DraggableClass)
	dom.RemoveClass(target, l.opts.LockedClass)
	return ModeDraggable, true
}

// ApplyInitial runs Handle once for every control already checked, so
// pre-rendered checkboxes and lock classes agree after startup.
func (l *LockCoordinator) ApplyInitial() int {
	applied := 0
	for _, control := range l.Controls() {
		if !dom.Checked(control) {
			continue
		}
		l.Handle(control)
		applied++
	}
	return applied
}

// ControlFor returns the first lock control inside el.
func (l *LockCoordinator) ControlFor(el *html.Node) *html.Node {
	if el == nil {
		return nil
	}
	for _, control := range l.Controls() {
		if dom.Contains(el, control) {
			return control
		}
	}
	return nil
}
