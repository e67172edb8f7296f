// Package server exposes dragdrop controllers over HTTP. Each session owns
// its own rendered document and controller; gestures arrive as JSON events
// addressed by element identity.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/net/html"

	"github.com/goliatone/go-reorder/components/ordersubmit"
	"github.com/goliatone/go-reorder/pkg/dragdrop"
	"github.com/goliatone/go-reorder/pkg/order"
	"github.com/goliatone/go-reorder/pkg/page"
)

var ErrSessionNotFound = errors.New("server: session not found")

type session struct {
	mu       sync.Mutex
	ctrl     *dragdrop.Controller
	transfer *dragdrop.DataTransfer
}

// Server holds the live sessions. The zero value is not usable; use New.
type Server struct {
	echo     *echo.Echo
	renderer *page.Renderer
	list     page.List
	submit   ordersubmit.SubmitFunc

	mu       sync.RWMutex
	sessions map[string]*session
}

type Option func(*Server)

// WithOnSubmit receives orders posted to the submit route.
func WithOnSubmit(fn ordersubmit.SubmitFunc) Option {
	return func(s *Server) {
		s.submit = fn
	}
}

// WithEcho replaces the echo instance routes are registered on.
func WithEcho(e *echo.Echo) Option {
	return func(s *Server) {
		if e != nil {
			s.echo = e
		}
	}
}

// EventRequest is the JSON body of an event post. Target is the identity of
// the element the event is delivered to; change events go to its lock control.
// Data, when set, replaces the drag data of the session transfer.
type EventRequest struct {
	Type    dragdrop.EventType `json:"type"`
	Target  string             `json:"target"`
	Checked *bool              `json:"checked,omitempty"`
	Data    *string            `json:"data,omitempty"`
}

type EventResponse struct {
	Handled  bool             `json:"handled"`
	Accepted bool             `json:"accepted"`
	Outcome  dragdrop.Outcome `json:"outcome,omitempty"`
	Error    string           `json:"error,omitempty"`
	Order    []order.Record   `json:"order"`
}

type SessionResponse struct {
	ID    string         `json:"id"`
	Order []order.Record `json:"order"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(renderer *page.Renderer, list page.List, opts ...Option) (*Server, error) {
	if renderer == nil {
		return nil, errors.New("server: renderer is required")
	}
	s := &Server{
		renderer: renderer,
		list:     list,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.echo == nil {
		s.echo = echo.New()
		s.echo.HideBanner = true
	}
	s.routes()
	return s, nil
}

// Echo returns the underlying echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) routes() {
	e := s.echo
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.POST("/sessions", s.createSession)
	e.GET("/sessions/:id", s.showSession)
	e.GET("/sessions/:id/order", s.showOrder)
	e.POST("/sessions/:id/events", s.postEvent)
	e.DELETE("/sessions/:id", s.deleteSession)

	submit := ordersubmit.New(
		ordersubmit.WithFieldName(s.fieldName()),
		ordersubmit.WithOnSubmit(s.submit),
	)
	e.POST(submit.Options().RoutePath, echo.WrapHandler(submit.Handler()))
}

func (s *Server) fieldName() string {
	if name := strings.TrimSpace(s.list.FieldName); name != "" {
		return name
	}
	return page.DefaultFieldName
}

// NewSession renders a fresh document and bootstraps a controller for it.
func (s *Server) NewSession() (string, []order.Record, error) {
	doc, err := s.renderer.Document(s.list)
	if err != nil {
		return "", nil, err
	}
	opts := s.renderer.ControllerOptions()
	ctrl, err := dragdrop.New(doc, dragdrop.WithOptions(opts), dragdrop.WithLogger(s.echo.Logger))
	if err != nil {
		return "", nil, err
	}
	records := ctrl.Init()

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{ctrl: ctrl}
	s.mu.Unlock()
	return id, records, nil
}

func (s *Server) lookup(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Server) createSession(c echo.Context) error {
	id, records, err := s.NewSession()
	if err != nil {
		c.Logger().Errorf("server: create session: %v", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create session"})
	}
	return c.JSON(http.StatusCreated, SessionResponse{ID: id, Order: records})
}

func (s *Server) showSession(c echo.Context) error {
	sess, err := s.lookup(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}
	sess.mu.Lock()
	body := sess.ctrl.Document().String()
	sess.mu.Unlock()
	return c.HTML(http.StatusOK, body)
}

func (s *Server) showOrder(c echo.Context) error {
	sess, err := s.lookup(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}
	sess.mu.Lock()
	records := sess.ctrl.Serializer().Serialize()
	sess.mu.Unlock()
	return c.JSON(http.StatusOK, SessionResponse{ID: c.Param("id"), Order: records})
}

func (s *Server) deleteSession(c echo.Context) error {
	id := c.Param("id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: ErrSessionNotFound.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) postEvent(c echo.Context) error {
	sess, err := s.lookup(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	target, err := resolveTarget(sess.ctrl, req)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}

	if req.Type == dragdrop.EventDragStart || sess.transfer == nil {
		sess.transfer = dragdrop.NewDataTransfer()
	}
	if req.Data != nil {
		sess.transfer.SetData(dragdrop.MIMEText, *req.Data)
	}

	res, err := sess.ctrl.Dispatch(dragdrop.Event{
		Type:         req.Type,
		Target:       target,
		DataTransfer: sess.transfer,
		Checked:      req.Checked,
	})
	resp := EventResponse{
		Handled:  res.Handled,
		Accepted: res.Accepted,
		Outcome:  res.Outcome,
	}
	if err != nil && !errors.Is(err, dragdrop.ErrMalformedTransfer) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if req.Type == dragdrop.EventDrop || req.Type == dragdrop.EventDragEnd {
		sess.transfer = nil
	}
	resp.Order = sess.ctrl.Serializer().Serialize()
	if err != nil {
		resp.Error = err.Error()
		return c.JSON(http.StatusUnprocessableEntity, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func resolveTarget(ctrl *dragdrop.Controller, req EventRequest) (*html.Node, error) {
	el := ctrl.Element(strings.TrimSpace(req.Target))
	if el == nil {
		return nil, fmt.Errorf("server: no element with identity %q", req.Target)
	}
	if req.Type != dragdrop.EventChange {
		return el, nil
	}
	control := ctrl.Locks().ControlFor(el)
	if control == nil {
		return nil, errors.New("server: element has no lock control")
	}
	return control, nil
}

// Sessions reports the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
