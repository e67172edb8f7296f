package order

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncode_MatchesSinkFormat(t *testing.T) {
	got := Encode([]Record{
		{ID: "3"},
		{ID: "2", Locked: true},
		{ID: "1"},
	})
	want := `[{"id":"3","locked":false},{"id":"2","locked":true},{"id":"1","locked":false}]`
	if got != want {
		t.Fatalf("unexpected encoding\nwant %s\ngot  %s", want, got)
	}
}

func TestEncode_EmptyAndMissingIdentity(t *testing.T) {
	if got := Encode(nil); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
	if got := Encode([]Record{{Locked: true}}); got != `[{"locked":true}]` {
		t.Fatalf("expected id to be omitted, got %s", got)
	}
}

func TestDecode_AcceptsStringAndNumericIdentities(t *testing.T) {
	got, err := Decode(`[{"id":"a","locked":false},{"id":42,"locked":true},{"locked":false}]`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []Record{{ID: "a"}, {ID: "42", Locked: true}, {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "42", ""}, IDs(got)); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"42"}, LockedIDs(got)); diff != "" {
		t.Fatalf("locked ids mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_RejectsInvalidPayloads(t *testing.T) {
	cases := map[string]string{
		"empty":          "  ",
		"not json":       "[{",
		"not array":      `{"id":"1","locked":false}`,
		"missing locked": `[{"id":"1"}]`,
		"locked type":    `[{"id":"1","locked":"yes"}]`,
		"id type":        `[{"id":true,"locked":false}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(raw); !errors.Is(err, ErrInvalidRecord) {
				t.Fatalf("expected ErrInvalidRecord, got %v", err)
			}
		})
	}
}

func TestDecode_RoundTripsEncode(t *testing.T) {
	records := []Record{{ID: "1", Locked: true}, {ID: "2"}}
	got, err := Decode(Encode(records))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(records, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
