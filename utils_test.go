package sendlog

import (
	"bytes"
	"encoding/json"
	"testing"
)

type named struct {
	Name string `json:"name"`
}

func TestDecodeOneOrMany(t *testing.T) {
	tests := []struct {
		label  string
		single string
		many   string
		want   []string
	}{
		{"array wins", `{"name":"a"}`, `[{"name":"b"},{"name":"c"}]`, []string{"b", "c"}},
		{"single object", `{"name":"a"}`, ``, []string{"a"}},
		{"single array", `[{"name":"a"},{"name":"b"}]`, `null`, []string{"a", "b"}},
		{"nothing", ``, ``, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			items, err := DecodeOneOrMany[named](json.RawMessage(tt.single), json.RawMessage(tt.many))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != len(tt.want) {
				t.Fatalf("expected %d items, got %d", len(tt.want), len(items))
			}
			for i, item := range items {
				if item.Name != tt.want[i] {
					t.Errorf("item %d: expected %q, got %q", i, tt.want[i], item.Name)
				}
			}
		})
	}

	if _, err := DecodeOneOrMany[named](json.RawMessage(`"oops"`), nil); err == nil {
		t.Fatalf("expected error for a bare string")
	}
}

func TestJsonPrint(t *testing.T) {
	var buf bytes.Buffer
	if err := JsonPrint(&buf, MessageResponse{Message: "ok"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"message\": \"ok\"\n}\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}
