// Package dragdrop implements the drag-to-reorder state machine over an HTML
// document: a Controller that exchanges identity and payload markup between
// two reorderable elements, a LockCoordinator that flips elements between
// draggable and locked modes from their lock checkboxes, and a Serializer
// that writes the resulting {id, locked} order into a hidden sink input.
//
// Elements are located by class, identities live in data-id attributes and
// every mutation is applied to the document in place, so rendering the
// document afterwards yields the same markup a browser would show after the
// same gestures. A Controller is not safe for concurrent use.
//
// Typical use:
//
//	doc, _ := dom.ParseString(markup)
//	ctrl, err := dragdrop.New(doc, dragdrop.WithElementsToSwitch("p"))
//	if err != nil { ... }
//	ctrl.Init()
//	ctrl.DragStart(source, nil)
//	outcome, err := ctrl.Drop(target, nil)
package dragdrop
