package ordersubmit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/goliatone/go-reorder/pkg/order"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type submitResponse struct {
	Data   []order.Record `json:"data"`
	IDs    []string       `json:"ids"`
	Locked []string       `json:"locked"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		raw, err := readOrder(w, r, opts)
		if err != nil {
			writeError(w, err, http.StatusBadRequest)
			return
		}

		records, err := order.Decode(raw)
		if err != nil {
			writeError(w, StatusError{Code: http.StatusUnprocessableEntity, Err: err}, http.StatusUnprocessableEntity)
			return
		}

		if opts.OnSubmit != nil {
			if err := opts.OnSubmit(r.Context(), records); err != nil {
				writeError(w, err, http.StatusInternalServerError)
				return
			}
		}

		writeJSON(w, http.StatusOK, submitResponse{
			Data:   records,
			IDs:    nonNil(order.IDs(records)),
			Locked: nonNil(order.LockedIDs(records)),
		})
	})
}

func readOrder(w http.ResponseWriter, r *http.Request, opts Options) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes)

	if isJSON(r.Header.Get("Content-Type")) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return "", bodyError(err)
		}
		return string(body), nil
	}

	if err := r.ParseForm(); err != nil {
		return "", bodyError(err)
	}
	if _, ok := r.PostForm[opts.FieldName]; !ok {
		return "", StatusError{
			Code: http.StatusBadRequest,
			Err:  fmt.Errorf("ordersubmit: missing form field %q", opts.FieldName),
		}
	}
	return r.PostForm.Get(opts.FieldName), nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return StatusError{Code: http.StatusRequestEntityTooLarge, Err: err}
	}
	return StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("ordersubmit: read body: %w", err)}
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return media == "application/json" || strings.HasSuffix(media, "+json")
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil && httpErr.StatusCode() > 0 {
		code = httpErr.StatusCode()
	}
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
