package page

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reorder/pkg/order"
)

func TestLoadList(t *testing.T) {
	list, err := LoadList(filepath.Join("testdata", "articles.yaml"))
	if err != nil {
		t.Fatalf("load list: %v", err)
	}
	if list.Title != "Front page" || list.Action != "/api/order" {
		t.Fatalf("unexpected list header %#v", list)
	}
	want := []order.Record{{ID: "101"}, {ID: "102", Locked: true}, {ID: "103"}}
	if diff := cmp.Diff(want, list.Records()); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"group-misc"}, list.Items[2].Groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestParseList_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":     " ",
		"syntax":    "items: [",
		"duplicate": `{"items": [{"id": "1"}, {"id": " 1 "}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseList([]byte(raw)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := LoadList(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
