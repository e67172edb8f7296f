package ordersubmit

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/admin"); got != "/admin/api/order" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("admin"); got != "/admin/api/order" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/", WithRoutePath("save")); got != "/save" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestComponent_RegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	component := New(WithRoutePath("/order"))
	pattern, err := component.RegisterRoutes(mux, "/admin")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/admin/order" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	body := url.Values{DefaultFieldName: {`[{"id":"1","locked":true}]`}}.Encode()
	req := httptest.NewRequest(http.MethodPost, pattern, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
	if got := component.Options().RoutePath; got != "/order" {
		t.Fatalf("unexpected route path %q", got)
	}
}
