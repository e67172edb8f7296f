package ordersubmit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reorder/pkg/order"
)

type handlerResponse struct {
	Data   []order.Record `json:"data"`
	IDs    []string       `json:"ids"`
	Locked []string       `json:"locked"`
	Error  string         `json:"error"`
}

func postForm(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) handlerResponse {
	t.Helper()
	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func TestHandler_FormSubmission(t *testing.T) {
	var received []order.Record
	h := NewHandler(WithOnSubmit(func(_ context.Context, records []order.Record) error {
		received = records
		return nil
	}))

	rec := postForm(h, url.Values{
		DefaultFieldName: {`[{"id":"3","locked":false},{"id":"2","locked":true},{"id":1,"locked":false}]`},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	want := []order.Record{{ID: "3"}, {ID: "2", Locked: true}, {ID: "1"}}
	if diff := cmp.Diff(want, received); diff != "" {
		t.Fatalf("callback records mismatch (-want +got):\n%s", diff)
	}
	payload := decodeResponse(t, rec)
	if diff := cmp.Diff([]string{"3", "2", "1"}, payload.IDs); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2"}, payload.Locked); diff != "" {
		t.Fatalf("locked mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_JSONBody(t *testing.T) {
	h := NewHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(`[]`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeResponse(t, rec)
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
	if payload.Locked == nil {
		t.Fatalf("expected empty locked array")
	}
}

func TestHandler_Rejections(t *testing.T) {
	h := NewHandler(WithFieldName("order"))

	cases := []struct {
		name   string
		values url.Values
		code   int
	}{
		{name: "missing field", values: url.Values{"other": {"[]"}}, code: http.StatusBadRequest},
		{name: "not json", values: url.Values{"order": {"nope"}}, code: http.StatusUnprocessableEntity},
		{name: "missing locked", values: url.Values{"order": {`[{"id":"1"}]`}}, code: http.StatusUnprocessableEntity},
		{name: "empty", values: url.Values{"order": {""}}, code: http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postForm(h, tc.values)
			if rec.Code != tc.code {
				t.Fatalf("expected status %d, got %d", tc.code, rec.Code)
			}
			if payload := decodeResponse(t, rec); payload.Error == "" {
				t.Fatalf("expected an error message")
			}
		})
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/order", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestHandler_GuardAndCallbackErrors(t *testing.T) {
	guarded := NewHandler(WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized}
	}))
	if rec := postForm(guarded, url.Values{DefaultFieldName: {"[]"}}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected guard status 401, got %d", rec.Code)
	}

	conflict := NewHandler(WithOnSubmit(func(context.Context, []order.Record) error {
		return StatusError{Code: http.StatusConflict, Err: errors.New("stale order")}
	}))
	rec := postForm(conflict, url.Values{DefaultFieldName: {"[]"}})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	if payload := decodeResponse(t, rec); payload.Error != "stale order" {
		t.Fatalf("unexpected error message %q", payload.Error)
	}

	failing := NewHandler(WithOnSubmit(func(context.Context, []order.Record) error {
		return errors.New("boom")
	}))
	if rec := postForm(failing, url.Values{DefaultFieldName: {"[]"}}); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestHandler_BodyTooLarge(t *testing.T) {
	h := NewHandler(WithMaxBodyBytes(8))
	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(`[{"id":"1","locked":false}]`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rec.Code)
	}
}
