package scene

import (
	"testing"
)

func TestAppendAndSelect(t *testing.T) {
	root := New("div")
	svg := root.Append("svg")
	g := svg.Append("g").Attr("class", "grid axis")
	line := g.Append("line").Attr("class", "x")
	svg.Append("line").Attr("class", "y")

	if got := root.Select("svg"); got != svg {
		t.Error("Select(svg) should return the svg element")
	}
	if got := root.Select(".grid"); got != g {
		t.Error("Select(.grid) should match multi-class element")
	}
	if got := root.Select("line.x"); got != line {
		t.Error("Select(line.x) should match tag and class")
	}
	if got := root.SelectAll("line"); len(got) != 2 {
		t.Errorf("SelectAll(line) = %d elements, want 2", len(got))
	}
	if got := root.Select("circle"); got != nil {
		t.Error("Select of missing tag should return nil")
	}
	if got := g.Select("g"); got != nil {
		t.Error("Select should not match the receiver itself")
	}
}

func TestRemove(t *testing.T) {
	root := New("div")
	a := root.Append("svg")
	b := root.Append("div")

	a.Remove()
	if len(root.Children()) != 1 || root.Children()[0] != b {
		t.Errorf("Remove should detach only the receiver, children = %v", root.Children())
	}
	if a.Parent() != nil {
		t.Error("removed element should have no parent")
	}
	a.Remove() // no-op
}

func TestAttrFormatting(t *testing.T) {
	e := New("rect").
		Attr("width", 800).
		Attr("x", 12.5).
		Attr("y", 3.0).
		Attr("fill", "none")

	tests := map[string]string{"width": "800", "x": "12.5", "y": "3", "fill": "none"}
	for name, want := range tests {
		if got, _ := e.AttrValue(name); got != want {
			t.Errorf("attr %s = %q, want %q", name, got, want)
		}
	}
	if got := e.Float("x"); got != 12.5 {
		t.Errorf("Float(x) = %v, want 12.5", got)
	}

	e.Attr("width", 10)
	attrs := e.Attrs()
	if attrs[0] != [2]string{"width", "10"} {
		t.Errorf("overwriting should keep original order, got %v", attrs)
	}
}

func TestHidden(t *testing.T) {
	root := New("g").Style("display", "none")
	child := root.Append("circle")
	if !child.Hidden() {
		t.Error("child of hidden element should be hidden")
	}
	root.Style("display", "unset")
	if child.Hidden() {
		t.Error("child should be visible after parent display is unset")
	}
}

func TestDispatch(t *testing.T) {
	e := New("rect")
	var got []Event
	e.On(EventPointerMove, func(ev Event) { got = append(got, ev) })
	e.On(EventPointerMove, func(ev Event) { got = append(got, ev) })

	e.Dispatch(Event{Type: EventPointerMove, X: 1, Y: 2})
	e.Dispatch(Event{Type: EventPointerLeave})

	if len(got) != 2 {
		t.Fatalf("expected 2 handler calls, got %d", len(got))
	}
	if got[0].X != 1 || got[0].Y != 2 {
		t.Errorf("unexpected event %+v", got[0])
	}
	if !e.Listens(EventPointerMove) || e.Listens(EventPointerEnter) {
		t.Error("Listens reports wrong registration state")
	}
}

func TestTextAndHTML(t *testing.T) {
	e := New("div").SetText("hello")
	e.SetHTML("a<br/>")
	if e.Text() != "" || e.HTML() != "a<br/>" {
		t.Error("SetHTML should replace text content")
	}
}
