package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestElement_JSONKeepsPassThroughProps(t *testing.T) {
	t.Parallel()

	raw := `{"id":"e1","type":"text","text":"{{user.name}}","x":10,"y":20,"fontSize":32,"fill":"#000"}`

	var el Element
	if err := json.Unmarshal([]byte(raw), &el); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if el.Type != ElementTypeText || el.Text != "{{user.name}}" || el.ID != "e1" {
		t.Fatalf("unexpected typed fields: %+v", el)
	}
	wantProps := map[string]any{"x": 10.0, "y": 20.0, "fontSize": 32.0, "fill": "#000"}
	if diff := cmp.Diff(wantProps, el.Props); diff != "" {
		t.Fatalf("props mismatch (-want +got):\n%s", diff)
	}

	encoded, err := json.Marshal(el)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back, original map[string]any
	_ = json.Unmarshal(encoded, &back)
	_ = json.Unmarshal([]byte(raw), &original)
	if diff := cmp.Diff(original, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestElement_CloneCopiesProps(t *testing.T) {
	t.Parallel()

	el := Element{Type: ElementTypeImage, Props: map[string]any{"x": 1}}
	clone := el.Clone()
	clone.Props["x"] = 2

	if el.Props["x"] != 1 {
		t.Fatalf("clone shares props with original")
	}
}

func TestTemplate_DecodesElementsInOrder(t *testing.T) {
	t.Parallel()

	raw := `{"width":100,"height":50,"elements":[{"type":"image","src":"a.png"},{"type":"text","text":"hi"}],"background":{"mode":"static","src":"bg.png"}}`
	var tpl Template
	if err := json.Unmarshal([]byte(raw), &tpl); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(tpl.Elements) != 2 || tpl.Elements[0].Type != ElementTypeImage || tpl.Elements[1].Type != ElementTypeText {
		t.Fatalf("unexpected elements: %+v", tpl.Elements)
	}
	if tpl.Background == nil || !tpl.Background.IsStatic() {
		t.Fatalf("expected static background, got %+v", tpl.Background)
	}
}

func TestBackground_IsStatic(t *testing.T) {
	t.Parallel()

	cases := []struct {
		bg   Background
		want bool
	}{
		{Background{Mode: "static", Src: "a.png"}, true},
		{Background{Mode: "static"}, false},
		{Background{Mode: "video", Src: "a.mp4"}, false},
		{Background{}, false},
	}
	for _, tc := range cases {
		if got := tc.bg.IsStatic(); got != tc.want {
			t.Fatalf("IsStatic(%+v) = %v, want %v", tc.bg, got, tc.want)
		}
	}
}
