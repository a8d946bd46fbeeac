package linechart

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/linechart/pkg/chart/scene"
	"github.com/matzehuels/linechart/pkg/dataset"
)

// scenarioA aggregates to [{1 40 [a b]} {2 60 [c]}].
func scenarioA() []dataset.CategorySummary {
	return dataset.Aggregate([]dataset.RawObservation{
		{Category: 1, Value: 10, User: "a"},
		{Category: 1, Value: 30, User: "b"},
		{Category: 2, Value: 60, User: "c"},
	})
}

func newTestRenderer(opts ...Option) (*Renderer, *scene.Element, *scene.Element) {
	chart := scene.New("div").Attr("id", "lineChart")
	summary := scene.New("div").Attr("id", "summaryChart")
	return New(chart, summary, opts...), chart, summary
}

func px(t *testing.T, e *scene.Element, style string) float64 {
	t.Helper()
	v, ok := e.StyleValue(style)
	if !ok {
		t.Fatalf("style %s not set", style)
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		t.Fatalf("style %s = %q: %v", style, v, err)
	}
	return f
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRenderBuildsBothCharts(t *testing.T) {
	r, chart, summary := newTestRenderer(WithID("test"))
	r.Render(scenarioA())

	if r.State() != StateDrawn {
		t.Errorf("state = %v, want drawn", r.State())
	}

	svg := chart.Select("svg")
	if svg == nil {
		t.Fatal("primary svg missing")
	}
	if svg.Float("width") != 800 || svg.Float("height") != 400 {
		t.Errorf("primary svg size = %v", svg.Attrs())
	}
	if id, _ := svg.AttrValue("id"); id != "test-chart" {
		t.Errorf("primary svg id = %q", id)
	}
	if n := len(chart.SelectAll("g.grid")); n != 2 {
		t.Errorf("expected 2 grid groups, got %d", n)
	}
	if d, _ := chart.Select("path.line").AttrValue("d"); d != "M0,198L700,132" {
		t.Errorf("line path = %q", d)
	}
	if !chart.Select("g.focus").Hidden() {
		t.Error("focus group should start hidden")
	}
	if !r.Tooltip().Hidden() {
		t.Error("tooltip should start hidden")
	}
	if title := chart.Select("text.title"); title == nil || title.Text() != DefaultTitle {
		t.Error("title missing")
	}

	ssvg := summary.Select("svg")
	if ssvg == nil {
		t.Fatal("summary svg missing")
	}
	if ssvg.Float("width") != 780 || ssvg.Float("height") != 65 {
		t.Errorf("summary svg size = %v", ssvg.Attrs())
	}
	// Summary y spans the observed 40..60 range over a 25px plot.
	if d, _ := summary.Select("path.line").AttrValue("d"); d != "M0,25L700,0" {
		t.Errorf("summary path = %q", d)
	}

	sel, ok := r.Brush().Selection()
	if !ok || sel[0] != 0 || !approx(sel[1], 700.0/3) {
		t.Errorf("initial brush selection = %v, %v", sel, ok)
	}
}

func TestRenderTearsDownPreviousChart(t *testing.T) {
	r, chart, summary := newTestRenderer()
	keep := chart.Append("p").Attr("class", "caption")

	r.Render(scenarioA())
	r.Render(dataset.Aggregate([]dataset.RawObservation{
		{Category: 1, Value: 1, User: "x"},
		{Category: 2, Value: 1, User: "y"},
		{Category: 3, Value: 2, User: "z"},
	}))

	if n := len(chart.SelectAll("svg")); n != 1 {
		t.Errorf("primary container has %d svgs, want 1", n)
	}
	if n := len(chart.SelectAll(".tooltip")); n != 1 {
		t.Errorf("primary container has %d tooltips, want 1", n)
	}
	if n := len(summary.SelectAll("svg")); n != 1 {
		t.Errorf("summary container has %d svgs, want 1", n)
	}
	if keep.Parent() != chart {
		t.Error("teardown should not remove unrelated elements")
	}
	if len(r.Context().Data) != 3 {
		t.Errorf("context should hold the latest data, got %d summaries", len(r.Context().Data))
	}
}

func TestTeardown(t *testing.T) {
	r, chart, summary := newTestRenderer()
	r.Render(scenarioA())
	r.Teardown()

	if chart.Select("svg") != nil || chart.Select(".tooltip") != nil || summary.Select("svg") != nil {
		t.Error("teardown should remove charts and tooltip")
	}
	if r.State() != StateIdle || r.Context() != nil || r.Surface() != nil {
		t.Error("teardown should reset renderer state")
	}
}

func TestHoverLifecycle(t *testing.T) {
	r, chart, _ := newTestRenderer()
	r.Render(scenarioA())
	surface := r.Surface()
	focus := chart.Select("g.focus")

	surface.Dispatch(scene.Event{Type: scene.EventPointerEnter})
	if focus.Hidden() {
		t.Error("focus should be visible after pointer enter")
	}
	if r.State() != StateHovering {
		t.Errorf("state = %v, want hovering", r.State())
	}

	surface.Dispatch(scene.Event{Type: scene.EventPointerMove, X: 300, Y: 100})

	d, ok := r.Focus()
	if !ok || d.Category != 1 {
		t.Fatalf("focus = %+v, %v; want category 1", d, ok)
	}
	if got, _ := chart.Select("circle").AttrValue("transform"); got != "translate(0, 198)" {
		t.Errorf("dot transform = %q", got)
	}
	if hl := chart.Select("line.x"); hl.Float("y1") != 198 || hl.Float("y2") != 198 {
		t.Errorf("horizontal guide = %v", hl.Attrs())
	}
	if vl := chart.Select("line.y"); vl.Float("x1") != 0 || vl.Float("x2") != 0 {
		t.Errorf("vertical guide = %v", vl.Attrs())
	}

	tip := r.Tooltip()
	if tip.Hidden() {
		t.Error("tooltip should be visible after a snapped move")
	}
	if tip.HTML() != "a<br/>b<br/>" {
		t.Errorf("tooltip html = %q", tip.HTML())
	}
	if !approx(px(t, tip, "left"), 85) || !approx(px(t, tip, "top"), 213) {
		t.Errorf("tooltip position = %v", tip.Styles())
	}

	surface.Dispatch(scene.Event{Type: scene.EventPointerMove, X: 600})
	if d, _ := r.Focus(); d.Category != 2 {
		t.Errorf("focus after second move = %v, want 2", d.Category)
	}
	if !approx(px(t, tip, "left"), 785) || !approx(px(t, tip, "top"), 147) {
		t.Errorf("tooltip position = %v", tip.Styles())
	}

	surface.Dispatch(scene.Event{Type: scene.EventPointerLeave})
	if !focus.Hidden() || !tip.Hidden() {
		t.Error("focus and tooltip should hide on pointer leave")
	}
	if r.State() != StateDrawn {
		t.Errorf("state = %v, want drawn", r.State())
	}
}

func TestHoverWithoutBracketKeepsPreviousState(t *testing.T) {
	r, chart, _ := newTestRenderer()
	r.Render(scenarioA())
	surface := r.Surface()

	surface.Dispatch(scene.Event{Type: scene.EventPointerEnter})
	surface.Dispatch(scene.Event{Type: scene.EventPointerMove, X: 750})
	if _, ok := r.Focus(); ok {
		t.Error("move past the last category should not snap")
	}
	if !r.Tooltip().Hidden() {
		t.Error("tooltip should stay hidden without a valid bracket")
	}

	surface.Dispatch(scene.Event{Type: scene.EventPointerMove, X: 600})
	before, _ := chart.Select("circle").AttrValue("transform")
	surface.Dispatch(scene.Event{Type: scene.EventPointerMove, X: 790})
	after, _ := chart.Select("circle").AttrValue("transform")
	if before != after {
		t.Errorf("crosshair moved without a bracket: %q -> %q", before, after)
	}
}

func TestWithOrigin(t *testing.T) {
	r, _, _ := newTestRenderer(WithOrigin(func() (float64, float64) { return 100, 20 }))
	r.Render(scenarioA())
	r.Surface().Dispatch(scene.Event{Type: scene.EventPointerMove, X: 10})

	tip := r.Tooltip()
	if !approx(px(t, tip, "left"), 135) || !approx(px(t, tip, "top"), 183) {
		t.Errorf("tooltip position = %v", tip.Styles())
	}
}

func TestStaleHandlersUseTheirOwnRender(t *testing.T) {
	r, _, _ := newTestRenderer()
	r.Render(scenarioA())
	stale := r.Surface()

	r.Render(scenarioA())
	stale.Dispatch(scene.Event{Type: scene.EventPointerMove, X: 300})

	if !r.Tooltip().Hidden() {
		t.Error("handlers from a torn-down render must not touch the new tooltip")
	}
}

func TestStaleBrushDoesNotLockState(t *testing.T) {
	r, _, _ := newTestRenderer()
	r.Render(scenarioA())
	stale := r.Brush()

	r.Render(scenarioA())
	stale.Start(10)
	if got := r.State(); got != StateDrawn {
		t.Errorf("state after stale brush start = %v, want drawn", got)
	}

	r.Surface().Dispatch(scene.Event{Type: scene.EventPointerEnter, X: 10})
	if got := r.State(); got != StateHovering {
		t.Errorf("state after pointer enter = %v, want hovering", got)
	}

	stale.End()
	if got := r.State(); got != StateHovering {
		t.Errorf("state after stale brush end = %v, want hovering", got)
	}
}

func TestBrushIsInert(t *testing.T) {
	r, chart, _ := newTestRenderer()
	r.Render(scenarioA())
	before, _ := chart.Select("path.line").AttrValue("d")

	b := r.Brush()
	b.Start(100)
	if r.State() != StateBrushing {
		t.Errorf("state during gesture = %v, want brushing", r.State())
	}
	b.Drag(400)
	b.End()

	if r.State() != StateDrawn {
		t.Errorf("state after gesture = %v, want drawn", r.State())
	}
	if after, _ := chart.Select("path.line").AttrValue("d"); after != before {
		t.Errorf("brushing changed the primary chart: %q -> %q", before, after)
	}
	if sel, _ := b.Selection(); !approx(sel[0], 300) {
		t.Errorf("brush selection = %v", sel)
	}
}

func TestRenderEmptyData(t *testing.T) {
	r, chart, _ := newTestRenderer()
	r.Render(nil)

	if d, _ := chart.Select("path.line").AttrValue("d"); d != "" {
		t.Errorf("empty data should draw an empty line, got %q", d)
	}
	r.Surface().Dispatch(scene.Event{Type: scene.EventPointerMove, X: 10})
	if _, ok := r.Focus(); ok {
		t.Error("empty data should never snap")
	}
}

func TestLayoutDefaults(t *testing.T) {
	l := Layout{Width: 1000}.WithDefaults()
	if l.Width != 1000 || l.Height != 400 || l.Title != DefaultTitle {
		t.Errorf("WithDefaults() = %+v", l)
	}
	if l.PlotWidth() != 900 || l.PlotHeight() != 330 || l.SummaryPlotHeight() != 25 || l.SummaryWidth() != 980 {
		t.Errorf("derived metrics wrong: %v %v %v %v", l.PlotWidth(), l.PlotHeight(), l.SummaryPlotHeight(), l.SummaryWidth())
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{StateIdle: "idle", StateDrawn: "drawn", StateHovering: "hovering", StateBrushing: "brushing"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestStaleHandlersDoNotChangeFocus(t *testing.T) {
	r, _, _ := newTestRenderer()
	r.Render(scenarioA())
	stale := r.Surface()

	r.Render(scenarioA())
	stale.Dispatch(scene.Event{Type: scene.EventPointerEnter})
	stale.Dispatch(scene.Event{Type: scene.EventPointerMove, X: 300})

	if _, ok := r.Focus(); ok {
		t.Error("stale handler should not set focus")
	}
	if r.State() != StateDrawn {
		t.Errorf("stale handler changed state to %v", r.State())
	}
}
