package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/linechart/pkg/linechart"
	"github.com/matzehuels/linechart/pkg/scale"
)

const pageCSS = `
    body { font-family: sans-serif; margin: 0; padding: 16px; }
    text { font-size: 10px; }
    text.title { font-size: 16px; }
    .grid line { stroke: lightgrey; stroke-opacity: 0.7; shape-rendering: crispEdges; }
    .grid path { stroke-width: 0; }
    .tooltip { position: absolute; pointer-events: none; padding: 4px 8px; font-size: 12px;
               background: rgba(255, 255, 255, 0.9); border: 1px solid #ccc; border-radius: 3px; }`

// pageJS mirrors linechart's hover and brush handlers: the crosshair snaps
// to the nearest data point and the brush selection moves without
// filtering anything.
const pageJS = `
    (function (configID) {
      const cfg = JSON.parse(document.getElementById(configID).textContent);
      const map = (s, v) => s.d0 === s.d1 ? (s.r0 + s.r1) / 2 : s.r0 + (v - s.d0) * (s.r1 - s.r0) / (s.d1 - s.d0);
      const invert = (s, v) => s.r0 === s.r1 ? (s.d0 + s.d1) / 2 : s.d0 + (v - s.r0) * (s.d1 - s.d0) / (s.r1 - s.r0);

      function nearest(x0) {
        const d = cfg.data;
        if (isNaN(x0) || d.length < 2 || x0 < d[0].category) return -1;
        let lo = 1, hi = d.length;
        while (lo < hi) {
          const mid = (lo + hi) >>> 1;
          if (d[mid].category < x0) lo = mid + 1; else hi = mid;
        }
        if (lo >= d.length) return -1;
        return x0 - d[lo - 1].category > d[lo].category - x0 ? lo : lo - 1;
      }

      const chart = document.getElementById(cfg.id + '-chart');
      if (chart) {
        const plot = chart.querySelector('g');
        const focus = plot.querySelector('g.focus');
        const dot = focus.querySelector('circle');
        const hline = focus.querySelector('line.x');
        const vline = focus.querySelector('line.y');
        const tip = chart.parentElement.querySelector('.tooltip');
        const surface = plot.querySelector('rect.surface');

        surface.addEventListener('pointerenter', () => { focus.style.display = ''; });
        surface.addEventListener('pointerleave', () => {
          focus.style.display = 'none';
          tip.style.display = 'none';
        });
        surface.addEventListener('pointermove', ev => {
          // The surface starts at the plot origin; the plot group's box also
          // spans the left axis labels.
          const px = ev.clientX - surface.getBoundingClientRect().left;
          const box = plot.getBoundingClientRect();
          const i = nearest(invert(cfg.x, px));
          if (i < 0) return;
          const d = cfg.data[i];
          if (d.percentage === null) return;
          const xc = map(cfg.x, d.category), yc = map(cfg.y, d.percentage);
          dot.setAttribute('transform', 'translate(' + xc + ', ' + yc + ')');
          hline.setAttribute('y1', yc); hline.setAttribute('y2', yc);
          vline.setAttribute('x1', xc); vline.setAttribute('x2', xc);
          tip.replaceChildren();
          d.users.forEach(u => tip.append(document.createTextNode(u), document.createElement('br')));
          tip.style.left = (box.left + window.scrollX + xc + cfg.offset) + 'px';
          tip.style.top = (box.top + window.scrollY + yc - cfg.offset) + 'px';
          tip.style.display = '';
        });
      }

      const summary = document.getElementById(cfg.id + '-summary');
      const g = summary && summary.querySelector('g.brush');
      if (!g) return;
      const [x0, y0, x1, y1] = cfg.brush.extent;
      const sel = g.querySelector('rect.selection');
      const west = g.querySelector('rect.handle--w');
      const east = g.querySelector('rect.handle--e');
      const hw = 6;
      let selection = cfg.brush.selection, drag = null;

      function redraw() {
        const show = selection ? '' : 'none';
        [sel, west, east].forEach(r => { r.style.display = show; });
        if (!selection) return;
        sel.setAttribute('x', selection[0]);
        sel.setAttribute('width', selection[1] - selection[0]);
        [west, east].forEach((r, i) => r.setAttribute('x', selection[i] - hw / 2));
      }
      const clamp = x => Math.max(x0, Math.min(x1, x));
      const overlay = g.querySelector('rect.overlay');
      const local = ev => clamp(ev.clientX - overlay.getBoundingClientRect().left + x0);

      g.addEventListener('pointerdown', ev => {
        const x = local(ev);
        g.setPointerCapture(ev.pointerId);
        if (selection && Math.abs(x - selection[0]) <= hw) drag = { mode: 'w' };
        else if (selection && Math.abs(x - selection[1]) <= hw) drag = { mode: 'e' };
        else if (selection && x > selection[0] && x < selection[1]) drag = { mode: 'move', from: x, start: selection.slice() };
        else { drag = { mode: 'new', anchor: x }; selection = [x, x]; }
        redraw();
      });
      g.addEventListener('pointermove', ev => {
        if (!drag) return;
        const x = local(ev);
        switch (drag.mode) {
          case 'w': selection = [Math.min(x, selection[1]), Math.max(x, selection[1])]; break;
          case 'e': selection = [Math.min(selection[0], x), Math.max(selection[0], x)]; break;
          case 'new': selection = [Math.min(drag.anchor, x), Math.max(drag.anchor, x)]; break;
          case 'move': {
            const w = drag.start[1] - drag.start[0];
            const a = Math.max(x0, Math.min(x1 - w, drag.start[0] + x - drag.from));
            selection = [a, a + w];
          }
        }
        redraw();
      });
      g.addEventListener('pointerup', () => {
        if (selection && selection[0] === selection[1]) selection = null;
        drag = null;
        redraw();
      });
      redraw();
    })`

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title string
}

// WithPageTitle sets the document title. It defaults to the chart title.
func WithPageTitle(t string) HTMLOption { return func(r *htmlRenderer) { r.title = t } }

type scaleConfig struct {
	D0 float64 `json:"d0"`
	D1 float64 `json:"d1"`
	R0 float64 `json:"r0"`
	R1 float64 `json:"r1"`
}

type pointConfig struct {
	Category   float64  `json:"category"`
	Percentage *float64 `json:"percentage"`
	Users      []string `json:"users"`
}

type brushConfig struct {
	Extent    [4]float64  `json:"extent"`
	Selection *[2]float64 `json:"selection"`
}

type pageConfig struct {
	ID     string        `json:"id"`
	Offset float64       `json:"offset"`
	X      scaleConfig   `json:"x"`
	Y      scaleConfig   `json:"y"`
	Data   []pointConfig `json:"data"`
	Brush  brushConfig   `json:"brush"`
}

// RenderHTML serializes both chart containers into a standalone page with
// the script that drives hover and brush interaction.
func RenderHTML(r *linechart.Renderer, opts ...HTMLOption) ([]byte, error) {
	l := r.Layout()
	h := htmlRenderer{title: l.Title}
	for _, opt := range opts {
		opt(&h)
	}

	cfg, err := json.Marshal(buildConfig(r))
	if err != nil {
		return nil, fmt.Errorf("encode chart config: %w", err)
	}
	configID := r.ID() + "-config"

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	buf.WriteString(`  <meta charset="utf-8">` + "\n")
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(h.title))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", pageCSS)
	buf.WriteString("</head>\n<body>\n")
	writeElement(&buf, r.Chart(), 1)
	writeElement(&buf, r.Summary(), 1)
	fmt.Fprintf(&buf, "  <script type=\"application/json\" id=\"%s\">%s</script>\n", html.EscapeString(configID), cfg)
	idJSON, _ := json.Marshal(configID)
	fmt.Fprintf(&buf, "  <script>%s(%s);\n  </script>\n", pageJS, idJSON)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

func buildConfig(r *linechart.Renderer) pageConfig {
	cfg := pageConfig{
		ID:     r.ID(),
		Offset: r.Layout().Offset(),
		Data:   []pointConfig{},
	}
	ctx := r.Context()
	if ctx == nil {
		return cfg
	}
	cfg.X = toScaleConfig(ctx.X)
	cfg.Y = toScaleConfig(ctx.Y)
	for _, d := range ctx.Data {
		p := pointConfig{Category: d.Category, Users: d.Users}
		if finite(d.Percentage) == d.Percentage {
			pct := d.Percentage
			p.Percentage = &pct
		}
		if p.Users == nil {
			p.Users = []string{}
		}
		cfg.Data = append(cfg.Data, p)
	}

	l := ctx.Layout
	cfg.Brush.Extent = [4]float64{0, -2, l.PlotWidth(), l.SummaryPlotHeight()}
	if b := r.Brush(); b != nil {
		if sel, ok := b.Selection(); ok {
			cfg.Brush.Selection = &sel
		}
	}
	return cfg
}

// toScaleConfig zeroes non-finite bounds, which JSON cannot carry. They only
// occur for empty data, where the script has nothing to snap to.
func toScaleConfig(s scale.Linear) scaleConfig {
	return scaleConfig{D0: finite(s.D0), D1: finite(s.D1), R0: finite(s.R0), R1: finite(s.R1)}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
