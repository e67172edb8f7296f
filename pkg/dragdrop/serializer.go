package dragdrop

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-reorder/pkg/dom"
	"github.com/goliatone/go-reorder/pkg/order"
)

// Serializer snapshots the current arrangement into the output sink.
type Serializer struct {
	doc  *dom.Document
	opts Options
}

func NewSerializer(doc *dom.Document, opts Options) *Serializer {
	return &Serializer{doc: doc, opts: opts}
}

// Elements returns the reorderable elements in document order.
func (s *Serializer) Elements() []*html.Node {
	if s == nil {
		return nil
	}
	return s.doc.ElementsByClass(s.opts.DragItemClass)
}

// Serialize walks the elements, clears any leftover hover highlight, and
// writes the {id, locked} records to the sink when the sink exists.
func (s *Serializer) Serialize() []order.Record {
	if s == nil {
		return nil
	}
	elements := s.Elements()
	records := make([]order.Record, 0, len(elements))
	for _, el := range elements {
		dom.RemoveClass(el, s.opts.OverClass)
		id, _ := dom.Dataset(el, "id")
		records = append(records, order.Record{
			ID:     id,
			Locked: dom.HasClass(el, s.opts.LockedClass),
		})
	}

	if sink := s.Sink(); sink != nil {
		dom.SetValue(sink, order.Encode(records))
	}
	return records
}

// Sink returns the output element, or nil when the page has none.
func (s *Serializer) Sink() *html.Node {
	if s == nil {
		return nil
	}
	return s.doc.ElementByID(s.opts.InputOrder)
}

// Value returns the JSON currently held by the sink.
func (s *Serializer) Value() (string, bool) {
	sink := s.Sink()
	if sink == nil {
		return "", false
	}
	return dom.Value(sink), true
}
