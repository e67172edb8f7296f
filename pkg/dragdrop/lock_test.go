package dragdrop

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reorder/pkg/dom"
	"github.com/goliatone/go-reorder/pkg/order"
	"github.com/goliatone/go-reorder/pkg/testsupport"
)

func TestLockToggle_ExclusiveModes(t *testing.T) {
	ctrl := newController(t)
	elements := ctrl.Elements()

	steps := []struct {
		index   int
		checked bool
	}{
		{0, true}, {2, true}, {0, false}, {1, true}, {2, false}, {2, false}, {1, false},
	}
	for _, step := range steps {
		el := elements[step.index]
		ctrl.Locks().Toggle(lockControl(t, el), step.checked)

		for _, candidate := range elements {
			draggable := dom.HasClass(candidate, DefaultDraggableClass)
			locked := dom.HasClass(candidate, DefaultLockedClass)
			if draggable == locked {
				t.Fatalf("element %q violates mode exclusivity (draggable=%v locked=%v)", identityOf(candidate), draggable, locked)
			}
		}

		records := sinkRecords(t, ctrl)
		if len(records) != len(ctrl.Elements()) {
			t.Fatalf("expected %d records, got %d", len(ctrl.Elements()), len(records))
		}
		for i, record := range records {
			if record.Locked != dom.HasClass(elements[i], DefaultLockedClass) {
				t.Fatalf("record %d locked=%v disagrees with element classes", i, record.Locked)
			}
		}
	}
}

func TestLockToggle_UncheckRestoresDraggable(t *testing.T) {
	ctrl := newController(t)
	first := ctrl.Elements()[0]
	dom.RemoveClass(first, DefaultDraggableClass)

	mode, ok := ctrl.Locks().Handle(lockControl(t, first))
	if !ok || mode != ModeDraggable {
		t.Fatalf("expected draggable after handling an unchecked control, got %s (%v)", mode, ok)
	}
	if !ctrl.DragStart(first, nil) {
		t.Fatalf("element should be draggable again")
	}
}

func TestLockToggle_WithoutListenerOnlyFlipsCheckbox(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "list.html"))
	ctrl, err := New(doc)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	first := ctrl.Elements()[0]
	control := lockControl(t, first)

	if ctrl.Locks().Toggle(control, true) {
		t.Fatalf("toggle must not be handled before listeners are attached")
	}
	if !dom.Checked(control) {
		t.Fatalf("checkbox state should still change")
	}
	if dom.HasClass(first, DefaultLockedClass) {
		t.Fatalf("element must not be locked without a listener")
	}
}

func TestLockHandle_UnresolvedAncestorIsNoOp(t *testing.T) {
	doc, err := dom.ParseString(`<div class="item draggable" data-id="1"><div><span><input type="checkbox" class="lock-element" checked></span></div></div>
<input type="hidden" id="drop-article-order">`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ctrl, err := New(doc)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	records := ctrl.Init()

	item := ctrl.Elements()[0]
	if dom.HasClass(item, DefaultLockedClass) {
		t.Fatalf("control nested three levels deep must not lock the item")
	}
	if diff := cmp.Diff([]order.Record{{ID: "1"}}, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if value, _ := ctrl.Serializer().Value(); value != `[{"id":"1","locked":false}]` {
		t.Fatalf("sink should still be written, got %q", value)
	}
}

func TestInit_AppliesPreCheckedControls(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "list.html"))
	items := doc.ElementsByClass(DefaultDragItemClass)
	dom.SetChecked(dom.FirstByTag(items[1], "input"), true)

	ctrl, err := New(doc)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	records := ctrl.Init()

	want := []order.Record{{ID: "1"}, {ID: "2", Locked: true}, {ID: "3"}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if dom.HasClass(items[1], DefaultDraggableClass) {
		t.Fatalf("pre-checked element must lose the draggable class")
	}

	ctrl.Init()
	if diff := cmp.Diff(want, sinkRecords(t, ctrl)); diff != "" {
		t.Fatalf("second init changed the outcome (-want +got):\n%s", diff)
	}
}

func TestSerializer_AbsentSinkIsSkipped(t *testing.T) {
	doc, err := dom.ParseString(`<ul><li class="item draggable over" data-id="a"></li><li class="item locked" data-id="b"></li></ul>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	serializer := NewSerializer(doc, NewOptions())

	records := serializer.Serialize()
	want := []order.Record{{ID: "a"}, {ID: "b", Locked: true}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if _, ok := serializer.Value(); ok {
		t.Fatalf("expected no sink")
	}
	if dom.HasClass(serializer.Elements()[0], DefaultOverClass) {
		t.Fatalf("over class should be stripped")
	}
}

func TestLockControlFor(t *testing.T) {
	ctrl := newController(t)
	second := ctrl.Elements()[1]

	control := ctrl.Locks().ControlFor(second)
	if control == nil || !dom.Contains(second, control) {
		t.Fatalf("expected the control inside the element")
	}
	if ctrl.Locks().ControlFor(nil) != nil {
		t.Fatalf("nil element has no control")
	}
	if ctrl.Locks().ControlFor(ctrl.Serializer().Sink()) != nil {
		t.Fatalf("sink has no control")
	}
}
