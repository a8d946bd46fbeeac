package brush

import (
	"testing"

	"github.com/matzehuels/linechart/pkg/chart/scene"
)

func newTestBrush(t *testing.T) (*Brush, *scene.Element, *[]Event) {
	t.Helper()
	var events []Event
	record := func(ev Event) { events = append(events, ev) }

	g := scene.New("g")
	b := NewX().Extent(0, -2, 700, 25).
		On(EventStart, record).
		On(EventBrush, record).
		On(EventEnd, record)
	b.Render(g)
	return b, g, &events
}

func TestRenderStartsEmpty(t *testing.T) {
	b, g, _ := newTestBrush(t)

	if _, ok := b.Selection(); ok {
		t.Error("new brush should have no selection")
	}
	overlay := g.Select("rect.overlay")
	if overlay.Float("width") != 700 || overlay.Float("height") != 27 || overlay.Float("y") != -2 {
		t.Errorf("overlay geometry wrong: %v", overlay.Attrs())
	}
	if !g.Select("rect.selection").Hidden() {
		t.Error("selection rect should be hidden before a move")
	}
}

func TestMove(t *testing.T) {
	b, g, events := newTestBrush(t)

	b.Move(&[2]float64{0, 700.0 / 3})

	sel, ok := b.Selection()
	if !ok || sel[0] != 0 || sel[1] != 700.0/3 {
		t.Fatalf("Selection() = %v, %v", sel, ok)
	}
	rect := g.Select("rect.selection")
	if rect.Hidden() || rect.Float("width") != 700.0/3 {
		t.Errorf("selection rect not drawn: %v", rect.Attrs())
	}

	want := []string{EventStart, EventBrush, EventEnd}
	if len(*events) != len(want) {
		t.Fatalf("got %d events, want %d", len(*events), len(want))
	}
	for i, ev := range *events {
		if ev.Type != want[i] || !ev.Programmatic {
			t.Errorf("event %d = %+v, want programmatic %s", i, ev, want[i])
		}
	}
}

func TestMoveClampsToExtent(t *testing.T) {
	b, _, _ := newTestBrush(t)
	b.Move(&[2]float64{-50, 900})
	if sel, _ := b.Selection(); sel != [2]float64{0, 700} {
		t.Errorf("selection should be clamped, got %v", sel)
	}
}

func TestDragMovesSelection(t *testing.T) {
	b, _, events := newTestBrush(t)
	b.Move(&[2]float64{100, 200})
	*events = nil

	b.Start(150)
	b.Drag(180)
	b.End()

	if sel, _ := b.Selection(); sel != [2]float64{130, 230} {
		t.Errorf("selection after drag = %v, want [130 230]", sel)
	}
	if len(*events) != 3 || (*events)[1].Type != EventBrush || (*events)[2].Type != EventEnd {
		t.Errorf("unexpected events %+v", *events)
	}
	if (*events)[1].Programmatic {
		t.Error("gesture events should not be programmatic")
	}
}

func TestDragMoveStopsAtEdge(t *testing.T) {
	b, _, _ := newTestBrush(t)
	b.Move(&[2]float64{100, 200})

	b.Start(150)
	b.Drag(700)
	b.End()

	if sel, _ := b.Selection(); sel != [2]float64{600, 700} {
		t.Errorf("selection should stop at the extent, got %v", sel)
	}
}

func TestDragResizesFromHandle(t *testing.T) {
	b, _, _ := newTestBrush(t)
	b.Move(&[2]float64{100, 200})

	b.Start(200)
	b.Drag(300)
	b.End()

	if sel, _ := b.Selection(); sel != [2]float64{100, 300} {
		t.Errorf("east resize = %v, want [100 300]", sel)
	}
}

func TestNewSelectionAndClear(t *testing.T) {
	b, g, _ := newTestBrush(t)

	b.Start(400)
	b.Drag(350)
	b.End()
	if sel, ok := b.Selection(); !ok || sel != [2]float64{350, 400} {
		t.Errorf("new selection = %v, %v", sel, ok)
	}

	b.Start(600)
	b.End()
	if _, ok := b.Selection(); ok {
		t.Error("click without drag should clear the selection")
	}
	if !g.Select("rect.selection").Hidden() {
		t.Error("cleared selection should be hidden")
	}
}

func TestDragWithoutStartIsIgnored(t *testing.T) {
	b, _, events := newTestBrush(t)
	b.Drag(100)
	b.End()
	if len(*events) != 0 {
		t.Errorf("expected no events, got %+v", *events)
	}
}
