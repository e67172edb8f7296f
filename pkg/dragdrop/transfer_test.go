package dragdrop

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPayload_WireFormat(t *testing.T) {
	raw := EncodePayload(Payload{ID: "7", Fields: map[string]string{"p": "<p>x</p>"}})
	if !strings.Contains(raw, `"id":"7"`) || !strings.Contains(raw, `"p":"<p>x</p>"`) {
		t.Fatalf("unexpected wire format %s", raw)
	}
	if got := EncodePayload(Payload{}); got != "{}" {
		t.Fatalf("expected empty object, got %s", got)
	}
}

func TestDecodePayload(t *testing.T) {
	got, err := DecodePayload(`{"id": 12, "P": "<p>x</p>", "h3": "<h3>y</h3>"}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Payload{ID: "12", Fields: map[string]string{"p": "<p>x</p>", "h3": "<h3>y</h3>"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePayload_Malformed(t *testing.T) {
	for _, raw := range []string{"", "null", "[]", `{"p": 3}`, `{"id": true}`, "{"} {
		if _, err := DecodePayload(raw); !errors.Is(err, ErrMalformedTransfer) {
			t.Fatalf("expected ErrMalformedTransfer for %q, got %v", raw, err)
		}
	}
}

func TestDataTransfer(t *testing.T) {
	dt := NewDataTransfer()
	dt.SetData("Text", "hello")
	dt.SetData("text/html", "<b>hi</b>")

	if dt.GetData(MIMEText) != "hello" || !dt.HasData("text") {
		t.Fatalf("text alias not honoured")
	}
	if diff := cmp.Diff([]string{"text/html", "text/plain"}, dt.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}

	var nilTransfer *DataTransfer
	nilTransfer.SetData("text", "x")
	if nilTransfer.HasData("text") || nilTransfer.GetData("text") != "" || nilTransfer.Types() != nil {
		t.Fatalf("nil transfer should behave as empty")
	}
	zero := &DataTransfer{}
	zero.SetData("text", "x")
	if zero.GetData("text") != "x" {
		t.Fatalf("zero value transfer should accept data")
	}
}

func TestSanitizer_StripsActiveContent(t *testing.T) {
	out := sanitizePayload(DefaultSanitizer(), Payload{
		ID:     "1",
		Fields: map[string]string{"p": `<p data-rank="2" onclick="x()">Alpha<script>alert(1)</script></p>`},
	})
	got := out.Fields["p"]
	if strings.Contains(got, "script") || strings.Contains(got, "onclick") {
		t.Fatalf("active content survived: %q", got)
	}
	if !strings.Contains(got, `data-rank="2"`) || !strings.Contains(got, "Alpha") {
		t.Fatalf("expected data attribute and text to survive: %q", got)
	}
	if out.ID != "1" {
		t.Fatalf("identity must be preserved")
	}
}
