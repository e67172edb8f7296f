package dragdrop

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/goliatone/go-reorder/pkg/dom"
	"github.com/goliatone/go-reorder/pkg/order"
)

// Mode is the interaction mode of a reorderable element.
type Mode int

const (
	ModeNeutral Mode = iota
	ModeDraggable
	ModeLocked
)

func (m Mode) String() string {
	switch m {
	case ModeDraggable:
		return "draggable"
	case ModeLocked:
		return "locked"
	default:
		return "neutral"
	}
}

// Outcome describes how a drop was resolved.
type Outcome string

const (
	OutcomeExchanged     Outcome = "exchanged"
	OutcomeSelf          Outcome = "self"
	OutcomeLocked        Outcome = "locked"
	OutcomeGroupMismatch Outcome = "group-mismatch"
	OutcomeNoSession     Outcome = "no-session"
	OutcomeIgnored       Outcome = "ignored"
	OutcomeMalformed     Outcome = "malformed"
)

type session struct {
	source  *html.Node
	payload Payload
}

// Controller owns the drag lifecycle between reorderable elements.
type Controller struct {
	doc        *dom.Document
	opts       Options
	serializer *Serializer
	locks      *LockCoordinator
	bound      map[*html.Node]struct{}
	session    *session
}

// New validates the configuration and wires the serializer and lock
// coordinator. Call Init once the document is ready.
func New(doc *dom.Document, fns ...OptionFn) (*Controller, error) {
	if doc == nil || doc.Root() == nil {
		return nil, fmt.Errorf("dragdrop: missing document")
	}
	opts := NewOptions(fns...)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	serializer := NewSerializer(doc, opts)
	return &Controller{
		doc:        doc,
		opts:       opts,
		serializer: serializer,
		locks:      NewLockCoordinator(doc, opts, serializer),
		bound:      make(map[*html.Node]struct{}),
	}, nil
}

// Init attaches lock listeners, replays the checkboxes that are already
// checked, binds every element, and writes the initial order.
func (c *Controller) Init() []order.Record {
	c.locks.AttachListeners()
	c.locks.ApplyInitial()
	c.BindAll()
	return c.serializer.Serialize()
}

// Options returns a copy of the controller configuration.
func (c *Controller) Options() Options {
	return NewOptions(WithOptions(c.opts))
}

func (c *Controller) Document() *dom.Document { return c.doc }

func (c *Controller) Serializer() *Serializer { return c.serializer }

func (c *Controller) Locks() *LockCoordinator { return c.locks }

// Elements returns the reorderable elements in document order.
func (c *Controller) Elements() []*html.Node {
	return c.serializer.Elements()
}

// Element returns the first element whose identity is id.
func (c *Controller) Element(id string) *html.Node {
	for _, el := range c.Elements() {
		if value, ok := dom.Dataset(el, "id"); ok && value == id {
			return el
		}
	}
	return nil
}

// BindAll marks every element draggable and makes it a drag event target.
// The bound set is rebuilt, not extended, so calling it again is safe.
func (c *Controller) BindAll() int {
	elements := c.Elements()
	c.bound = make(map[*html.Node]struct{}, len(elements))
	for _, el := range elements {
		dom.SetAttr(el, "draggable", "true")
		c.bound[el] = struct{}{}
	}
	return len(elements)
}

func (c *Controller) Bound(el *html.Node) bool {
	if el == nil {
		return false
	}
	_, ok := c.bound[el]
	return ok
}

// Mode reports the interaction mode of el. The locked class wins when
// host markup carries both classes.
func (c *Controller) Mode(el *html.Node) Mode {
	switch {
	case dom.HasClass(el, c.opts.LockedClass):
		return ModeLocked
	case dom.HasClass(el, c.opts.DraggableClass):
		return ModeDraggable
	default:
		return ModeNeutral
	}
}

// Source returns the element picked up by the active drag session.
func (c *Controller) Source() *html.Node {
	if c.session == nil {
		return nil
	}
	return c.session.source
}

// DragStart picks el up. Elements without the draggable class or with the
// locked class are refused and leave no session behind. When dt is not nil
// the payload is also written to it as JSON text.
func (c *Controller) DragStart(el *html.Node, dt *DataTransfer) bool {
	if !c.Bound(el) {
		return false
	}
	if !dom.HasClass(el, c.opts.DraggableClass) || dom.HasClass(el, c.opts.LockedClass) {
		c.session = nil
		c.opts.Logger.Debugf("dragdrop: pick-up refused for %s element", c.Mode(el))
		return false
	}

	payload := c.capture(el)
	c.session = &session{source: el, payload: payload}
	if dt != nil {
		dt.EffectAllowed = EffectMove
		dt.SetData(MIMEText, EncodePayload(payload))
	}
	return true
}

func (c *Controller) DragEnter(el *html.Node) {
	if c.Bound(el) {
		dom.AddClass(el, c.opts.OverClass)
	}
}

// DragOver accepts the hovered element as a drop candidate.
func (c *Controller) DragOver(el *html.Node, dt *DataTransfer) bool {
	if !c.Bound(el) {
		return false
	}
	if dt != nil {
		dt.DropEffect = EffectMove
	}
	return true
}

func (c *Controller) DragLeave(el *html.Node) {
	if c.Bound(el) {
		dom.RemoveClass(el, c.opts.OverClass)
	}
}

// DragEnd is a reserved hook.
func (c *Controller) DragEnd(*html.Node) {}

// Drop exchanges identity and payload markup between the session source and
// target. Positions and mode classes stay where they are. Rejections are
// reported through the Outcome and never mutate the document; the only
// error is ErrMalformedTransfer. The session ends with the drop.
func (c *Controller) Drop(target *html.Node, dt *DataTransfer) (Outcome, error) {
	if !c.Bound(target) {
		return OutcomeIgnored, nil
	}
	sess := c.session
	if sess == nil || sess.source == nil {
		return OutcomeNoSession, nil
	}
	c.session = nil

	if sess.source == target {
		return OutcomeSelf, nil
	}
	if dom.HasClass(target, c.opts.LockedClass) {
		c.opts.Logger.Debugf("dragdrop: drop refused, target is locked")
		return OutcomeLocked, nil
	}
	if len(c.opts.CheckSameClasses) > 0 {
		from, to := c.groupOf(sess.source), c.groupOf(target)
		if from != to {
			c.opts.Logger.Debugf("dragdrop: drop refused, group %q does not match %q", from, to)
			return OutcomeGroupMismatch, nil
		}
	}

	captured := c.capture(target)
	incoming, err := c.incoming(sess, dt)
	if err != nil {
		c.opts.Logger.Debugf("dragdrop: drop abandoned: %v", err)
		return OutcomeMalformed, err
	}

	toTarget, err := c.plan(target, incoming)
	if err != nil {
		return OutcomeMalformed, err
	}
	toSource, err := c.plan(sess.source, captured)
	if err != nil {
		return OutcomeMalformed, err
	}
	toTarget.commit()
	toSource.commit()

	c.serializer.Serialize()
	c.BindAll()
	c.locks.AttachListeners()
	return OutcomeExchanged, nil
}

func (c *Controller) groupOf(el *html.Node) string {
	group := ""
	for _, class := range c.opts.CheckSameClasses {
		if dom.HasClass(el, class) {
			group = class
		}
	}
	return group
}

// capture reads the identity and configured sub-element markup of el.
func (c *Controller) capture(el *html.Node) Payload {
	id, _ := dom.Dataset(el, "id")
	payload := Payload{ID: id, Fields: make(map[string]string, len(c.opts.ElementsToSwitch))}
	for _, tag := range c.opts.ElementsToSwitch {
		field := dom.FirstByTag(el, tag)
		if field == nil {
			continue
		}
		markup, err := dom.OuterHTML(field)
		if err != nil {
			continue
		}
		payload.Fields[tag] = markup
	}
	return payload
}

// incoming resolves the source payload: the drag data when the host
// supplied some, the pick-up snapshot otherwise.
func (c *Controller) incoming(sess *session, dt *DataTransfer) (Payload, error) {
	if dt == nil || !dt.HasData(MIMEText) {
		return sess.payload, nil
	}
	payload, err := DecodePayload(dt.GetData(MIMEText))
	if err != nil {
		return Payload{}, err
	}
	if c.opts.Sanitizer != nil {
		payload = sanitizePayload(c.opts.Sanitizer, payload)
	}
	return payload, nil
}

type replacement struct {
	tag    string
	markup string
}

type exchangePlan struct {
	el           *html.Node
	id           string
	replacements []replacement
}

// plan parses every replacement once up front so a markup failure leaves
// both elements untouched.
func (c *Controller) plan(el *html.Node, payload Payload) (exchangePlan, error) {
	p := exchangePlan{el: el, id: payload.ID}
	for _, tag := range c.opts.ElementsToSwitch {
		markup, ok := payload.Fields[tag]
		if !ok {
			continue
		}
		field := dom.FirstByTag(el, tag)
		if field == nil {
			continue
		}
		if _, err := dom.ParseFragmentFor(field, markup); err != nil {
			return exchangePlan{}, fmt.Errorf("%w: field %q: %v", ErrMalformedTransfer, tag, err)
		}
		p.replacements = append(p.replacements, replacement{tag: tag, markup: markup})
	}
	return p, nil
}

// commit applies the plan in configuration order. Fields are looked up
// again before each replacement because an earlier one may have swapped
// the subtree holding them.
func (p exchangePlan) commit() {
	if p.id == "" {
		dom.RemoveDataset(p.el, "id")
	} else {
		dom.SetDataset(p.el, "id", p.id)
	}
	for _, r := range p.replacements {
		field := dom.FirstByTag(p.el, r.tag)
		if field == nil {
			continue
		}
		_, _ = dom.ReplaceOuterHTML(field, r.markup)
	}
}
