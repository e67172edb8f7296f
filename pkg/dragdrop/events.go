package dragdrop

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/goliatone/go-reorder/pkg/dom"
)

// EventType names the events Dispatch understands.
type EventType string

const (
	EventDragStart EventType = "dragstart"
	EventDragEnter EventType = "dragenter"
	EventDragOver  EventType = "dragover"
	EventDragLeave EventType = "dragleave"
	EventDrop      EventType = "drop"
	EventDragEnd   EventType = "dragend"
	EventChange    EventType = "change"
)

// Event is a user interaction delivered by the host. Target may be any node
// inside a reorderable element; Dispatch resolves the element the way event
// bubbling would. Checked carries the new state of a lock checkbox for
// change events; when nil the current attribute is used.
type Event struct {
	Type         EventType
	Target       *html.Node
	DataTransfer *DataTransfer
	Checked      *bool
}

// Result reports what Dispatch did with an event.
type Result struct {
	Handled bool
	// Element is the reorderable element (or lock control) that handled it.
	Element *html.Node
	// Accepted is false when a pick-up was refused.
	Accepted bool
	Outcome  Outcome
}

// Dispatch routes evt to the matching handler. Events whose target is not
// inside a bound element, or change events on controls without a listener,
// are reported as not handled.
func (c *Controller) Dispatch(evt Event) (Result, error) {
	if evt.Type == EventChange {
		return c.dispatchChange(evt), nil
	}

	el := c.closestBound(evt.Target)
	if el == nil {
		return Result{}, nil
	}
	res := Result{Handled: true, Element: el, Accepted: true}

	switch evt.Type {
	case EventDragStart:
		res.Accepted = c.DragStart(el, evt.DataTransfer)
	case EventDragEnter:
		c.DragEnter(el)
	case EventDragOver:
		res.Accepted = c.DragOver(el, evt.DataTransfer)
	case EventDragLeave:
		c.DragLeave(el)
	case EventDrop:
		outcome, err := c.Drop(el, evt.DataTransfer)
		res.Outcome = outcome
		res.Accepted = outcome == OutcomeExchanged
		if err != nil {
			return res, err
		}
	case EventDragEnd:
		c.DragEnd(el)
	default:
		return Result{}, fmt.Errorf("dragdrop: unknown event type %q", evt.Type)
	}
	return res, nil
}

func (c *Controller) dispatchChange(evt Event) Result {
	control := evt.Target
	if control == nil {
		return Result{}
	}
	checked := dom.Checked(control)
	if evt.Checked != nil {
		checked = *evt.Checked
	}
	if !c.locks.Toggle(control, checked) {
		return Result{}
	}
	return Result{Handled: true, Element: control, Accepted: true}
}

func (c *Controller) closestBound(target *html.Node) *html.Node {
	return dom.Closest(target, c.Bound)
}
