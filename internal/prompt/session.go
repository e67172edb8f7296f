package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-reorder/internal/script"
	"github.com/goliatone/go-reorder/pkg/dom"
	"github.com/goliatone/go-reorder/pkg/dragdrop"
	"github.com/goliatone/go-reorder/pkg/order"
)

const (
	actionMove   = "Move an element"
	actionLock   = "Lock an element"
	actionUnlock = "Unlock an element"
	actionShow   = "Show order"
	actionDone   = "Done"
)

var actions = []string{actionMove, actionLock, actionUnlock, actionShow, actionDone}

// Session runs an interactive loop over a controller. Every applied gesture
// is recorded so it can be saved as a replayable script.
type Session struct {
	driver Driver
	ctrl   *dragdrop.Controller
	steps  []script.Step
}

func NewSession(driver Driver, ctrl *dragdrop.Controller) (*Session, error) {
	if driver == nil {
		return nil, errors.New("prompt: driver is nil")
	}
	if ctrl == nil {
		return nil, errors.New("prompt: controller is nil")
	}
	return &Session{driver: driver, ctrl: ctrl}, nil
}

// Script returns the gestures applied so far.
func (s *Session) Script() script.Script {
	return script.Script{Steps: append([]script.Step(nil), s.steps...)}
}

// Run prompts for gestures until the user picks Done. It returns the final
// order.
func (s *Session) Run(ctx context.Context) ([]order.Record, error) {
	for {
		choice, err := s.driver.Select(ctx, SelectConfig{Message: "What next?", Options: actions})
		if err != nil {
			return nil, err
		}
		if choice < 0 || choice >= len(actions) {
			return nil, fmt.Errorf("prompt: invalid choice %d", choice)
		}

		var step *script.Step
		switch actions[choice] {
		case actionMove:
			step, err = s.move(ctx)
		case actionLock:
			step, err = s.pick(ctx, "Lock which element?", func(id string) script.Step { return script.Step{Lock: id} })
		case actionUnlock:
			step, err = s.pick(ctx, "Unlock which element?", func(id string) script.Step { return script.Step{Unlock: id} })
		case actionShow:
			err = s.driver.Info(ctx, s.describe())
		case actionDone:
			return s.ctrl.Serializer().Serialize(), nil
		}
		if err != nil {
			return nil, err
		}
		if step == nil {
			continue
		}
		if err := s.apply(ctx, *step); err != nil {
			return nil, err
		}
	}
}

func (s *Session) move(ctx context.Context) (*script.Step, error) {
	labels, ids := s.labels()
	from, err := s.driver.Select(ctx, SelectConfig{Message: "Drag which element?", Options: labels})
	if err != nil {
		return nil, err
	}
	to, err := s.driver.Select(ctx, SelectConfig{Message: "Drop onto which element?", Options: labels, DefaultIndex: from})
	if err != nil {
		return nil, err
	}
	if !validIndex(from, ids) || !validIndex(to, ids) {
		return nil, nil
	}
	return &script.Step{Drag: ids[from], Drop: ids[to]}, nil
}

func (s *Session) pick(ctx context.Context, message string, build func(string) script.Step) (*script.Step, error) {
	labels, ids := s.labels()
	index, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: labels})
	if err != nil {
		return nil, err
	}
	if !validIndex(index, ids) {
		return nil, nil
	}
	step := build(ids[index])
	return &step, nil
}

func (s *Session) apply(ctx context.Context, step script.Step) error {
	results, err := script.Run(s.ctrl, script.Script{Steps: []script.Step{step}})
	if err != nil {
		return s.driver.Info(ctx, err.Error())
	}
	s.steps = append(s.steps, step)

	res := results[0]
	switch {
	case res.Refused:
		return s.driver.Info(ctx, fmt.Sprintf("%s: element is locked", step))
	case res.Err != nil:
		return s.driver.Info(ctx, fmt.Sprintf("%s: %v", step, res.Err))
	case res.Outcome != "":
		return s.driver.Info(ctx, fmt.Sprintf("%s: %s", step, res.Outcome))
	}
	return s.driver.Info(ctx, step.String())
}

func (s *Session) labels() ([]string, []string) {
	elements := s.ctrl.Elements()
	labels := make([]string, 0, len(elements))
	ids := make([]string, 0, len(elements))
	for i, el := range elements {
		id, _ := dom.Dataset(el, "id")
		ids = append(ids, id)
		labels = append(labels, fmt.Sprintf("%d. %s (%s)", i+1, id, s.ctrl.Mode(el)))
	}
	return labels, ids
}

func (s *Session) describe() string {
	return order.Encode(s.ctrl.Serializer().Serialize())
}

func validIndex(index int, ids []string) bool {
	return index >= 0 && index < len(ids)
}
