// Package script replays recorded gestures against a dragdrop controller. A
// script is a YAML (or JSON) document listing drag/drop pairs and lock
// toggles by element identity.
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-reorder/pkg/dragdrop"
)

var ErrInvalidStep = errors.New("script: invalid step")

// Step is one gesture. Either Drag and Drop are both set, or exactly one of
// Lock and Unlock.
type Step struct {
	Drag   string `yaml:"drag,omitempty" json:"drag,omitempty"`
	Drop   string `yaml:"drop,omitempty" json:"drop,omitempty"`
	Lock   string `yaml:"lock,omitempty" json:"lock,omitempty"`
	Unlock string `yaml:"unlock,omitempty" json:"unlock,omitempty"`
}

func (s Step) String() string {
	switch {
	case s.Lock != "":
		return "lock " + s.Lock
	case s.Unlock != "":
		return "unlock " + s.Unlock
	default:
		return fmt.Sprintf("drag %s onto %s", s.Drag, s.Drop)
	}
}

func (s Step) validate() error {
	actions := 0
	if s.Drag != "" || s.Drop != "" {
		if s.Drag == "" || s.Drop == "" {
			return fmt.Errorf("%w: drag and drop must be set together", ErrInvalidStep)
		}
		actions++
	}
	if s.Lock != "" {
		actions++
	}
	if s.Unlock != "" {
		actions++
	}
	if actions != 1 {
		return fmt.Errorf("%w: expected exactly one action, got %d", ErrInvalidStep, actions)
	}
	return nil
}

type Script struct {
	Steps []Step `yaml:"steps" json:"steps"`
}

// Parse decodes a script. YAML is a superset of JSON, so both are accepted.
func Parse(data []byte) (Script, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Script{}, errors.New("script: empty document")
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("script: decode: %w", err)
	}
	for i := range s.Steps {
		s.Steps[i] = normaliseStep(s.Steps[i])
		if err := s.Steps[i].validate(); err != nil {
			return Script{}, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return s, nil
}

func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("script: read %q: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func normaliseStep(s Step) Step {
	return Step{
		Drag:   strings.TrimSpace(s.Drag),
		Drop:   strings.TrimSpace(s.Drop),
		Lock:   strings.TrimSpace(s.Lock),
		Unlock: strings.TrimSpace(s.Unlock),
	}
}

// StepResult reports what a step did. Refused is set when the pick-up was
// rejected and the drop was never attempted.
type StepResult struct {
	Step    Step
	Handled bool
	Refused bool
	Outcome dragdrop.Outcome
	Err     error
}

// Run applies every step through Controller.Dispatch, the way a browser
// would deliver the events. Unknown identities abort the run; rejected
// gestures are reported and the run continues.
func Run(ctrl *dragdrop.Controller, s Script) ([]StepResult, error) {
	if ctrl == nil {
		return nil, errors.New("script: controller is nil")
	}
	results := make([]StepResult, 0, len(s.Steps))
	for i, step := range s.Steps {
		res, err := apply(ctrl, step)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func apply(ctrl *dragdrop.Controller, step Step) (StepResult, error) {
	if err := step.validate(); err != nil {
		return StepResult{}, err
	}
	switch {
	case step.Lock != "":
		return toggle(ctrl, step, step.Lock, true)
	case step.Unlock != "":
		return toggle(ctrl, step, step.Unlock, false)
	default:
		return drag(ctrl, step)
	}
}

func drag(ctrl *dragdrop.Controller, step Step) (StepResult, error) {
	source, err := lookup(ctrl, step.Drag)
	if err != nil {
		return StepResult{}, err
	}
	target, err := lookup(ctrl, step.Drop)
	if err != nil {
		return StepResult{}, err
	}

	res := StepResult{Step: step}
	dt := dragdrop.NewDataTransfer()
	start, err := ctrl.Dispatch(dragdrop.Event{Type: dragdrop.EventDragStart, Target: source, DataTransfer: dt})
	if err != nil {
		return res, err
	}
	if !start.Accepted {
		res.Handled = start.Handled
		res.Refused = true
		return res, nil
	}

	for _, typ := range []dragdrop.EventType{dragdrop.EventDragEnter, dragdrop.EventDragOver} {
		if _, err := ctrl.Dispatch(dragdrop.Event{Type: typ, Target: target, DataTransfer: dt}); err != nil {
			return res, err
		}
	}
	dropped, err := ctrl.Dispatch(dragdrop.Event{Type: dragdrop.EventDrop, Target: target, DataTransfer: dt})
	res.Handled = dropped.Handled
	res.Outcome = dropped.Outcome
	res.Err = err
	if _, err := ctrl.Dispatch(dragdrop.Event{Type: dragdrop.EventDragEnd, Target: source}); err != nil {
		return res, err
	}
	return res, nil
}

func toggle(ctrl *dragdrop.Controller, step Step, id string, checked bool) (StepResult, error) {
	el, err := lookup(ctrl, id)
	if err != nil {
		return StepResult{}, err
	}
	control := ctrl.Locks().ControlFor(el)
	if control == nil {
		return StepResult{}, fmt.Errorf("element %q has no lock control", id)
	}
	res, err := ctrl.Dispatch(dragdrop.Event{Type: dragdrop.EventChange, Target: control, Checked: &checked})
	if err != nil {
		return StepResult{}, err
	}
	return StepResult{Step: step, Handled: res.Handled}, nil
}

func lookup(ctrl *dragdrop.Controller, id string) (*html.Node, error) {
	el := ctrl.Element(id)
	if el == nil {
		return nil, fmt.Errorf("no element with identity %q", id)
	}
	return el, nil
}
