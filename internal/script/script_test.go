package script

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-reorder/pkg/dragdrop"
	"github.com/goliatone/go-reorder/pkg/order"
	"github.com/goliatone/go-reorder/pkg/testsupport"
)

func newController(t *testing.T) *dragdrop.Controller {
	t.Helper()
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "list.html"))
	ctrl, err := dragdrop.New(doc)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	ctrl.Init()
	return ctrl
}

func TestLoadAndRun(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "swap.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctrl := newController(t)

	results, err := Run(ctrl, s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []StepResult{
		{Step: Step{Drag: "1", Drop: "3"}, Handled: true, Outcome: dragdrop.OutcomeExchanged},
		{Step: Step{Lock: "2"}, Handled: true},
		{Step: Step{Drag: "3", Drop: "2"}, Handled: true, Outcome: dragdrop.OutcomeLocked},
		{Step: Step{Unlock: "2"}, Handled: true},
	}
	if diff := cmp.Diff(want, results, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}

	value, _ := ctrl.Serializer().Value()
	records, err := order.Decode(value)
	if err != nil {
		t.Fatalf("decode sink: %v", err)
	}
	if diff := cmp.Diff([]string{"3", "2", "1"}, order.IDs(records)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_RefusedPickUp(t *testing.T) {
	ctrl := newController(t)
	s, err := Parse([]byte(`{"steps": [{"lock": "1"}, {"drag": "1", "drop": "2"}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	results, err := Run(ctrl, s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !results[1].Refused || results[1].Outcome != "" {
		t.Fatalf("expected a refused pick-up, got %#v", results[1])
	}
	if ctrl.Source() != nil {
		t.Fatalf("refused pick-up must not leave a session")
	}
}

func TestRun_UnknownIdentity(t *testing.T) {
	ctrl := newController(t)
	results, err := Run(ctrl, Script{Steps: []Step{{Lock: "1"}, {Drag: "1", Drop: "9"}}})
	if err == nil {
		t.Fatalf("expected error for unknown identity")
	}
	if len(results) != 1 {
		t.Fatalf("expected the completed step to be reported, got %d", len(results))
	}
	if _, err := Run(nil, Script{}); err == nil {
		t.Fatalf("expected error for nil controller")
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":        "  ",
		"syntax":       "steps: [",
		"half drag":    "steps:\n  - drag: \"1\"\n",
		"two actions":  "steps:\n  - lock: \"1\"\n    unlock: \"1\"\n",
		"blank action": "steps:\n  - lock: \"  \"\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(raw)); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}

	_, err := Parse([]byte("steps:\n  - drop: \"1\"\n"))
	if !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
}

func TestStepString(t *testing.T) {
	if got := (Step{Drag: "a", Drop: "b"}).String(); got != "drag a onto b" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := (Step{Unlock: "a"}).String(); got != "unlock a" {
		t.Fatalf("unexpected description %q", got)
	}
}
