package chart

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/guregu/null/v6"
)

type rgb struct{ r, g, b int }

var (
	black  = rgb{20, 20, 20}
	blue   = rgb{31, 119, 180}
	orange = rgb{255, 127, 14}
	green  = rgb{44, 160, 44}
	red    = rgb{214, 39, 40}
	purple = rgb{148, 103, 189}
	grey   = rgb{150, 150, 150}
)

type line struct {
	label  string
	color  rgb
	dashed bool
	values []null.Float
}

type bounds struct{ lo, hi float64 }

// panel is one plot area. bars are drawn as a histogram around zero.
type panel struct {
	title  string
	lines  []line
	bars   []null.Float
	fixed  *bounds
	guides []float64
}

func (p panel) extent() (bounds, bool) {
	if p.fixed != nil {
		return *p.fixed, true
	}
	b := bounds{math.Inf(1), math.Inf(-1)}
	grow := func(vs []null.Float) {
		for _, v := range vs {
			if v.Valid && !math.IsNaN(v.Float64) && !math.IsInf(v.Float64, 0) {
				b.lo = math.Min(b.lo, v.Float64)
				b.hi = math.Max(b.hi, v.Float64)
			}
		}
	}
	for _, l := range p.lines {
		grow(l.values)
	}
	grow(p.bars)
	if len(p.bars) > 0 {
		b.lo, b.hi = math.Min(b.lo, 0), math.Max(b.hi, 0)
	}
	if math.IsInf(b.lo, 0) {
		return b, false
	}
	if b.hi == b.lo {
		b.lo, b.hi = b.lo-1, b.hi+1
	}
	pad := (b.hi - b.lo) * 0.05
	return bounds{b.lo - pad, b.hi + pad}, true
}

func (p panel) points() int {
	n := len(p.bars)
	for _, l := range p.lines {
		n = max(n, len(l.values))
	}
	return n
}

func (p panel) draw(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(x, y-5)
	pdf.CellFormat(w, 5, p.title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, w, h, "D")

	b, ok := p.extent()
	n := p.points()
	if !ok || n < 2 {
		return
	}
	sx := func(i int) float64 { return x + w*float64(i)/float64(n-1) }
	sy := func(v float64) float64 { return y + h - h*(v-b.lo)/(b.hi-b.lo) }

	pdf.SetFont("Helvetica", "", 6)
	for _, v := range []float64{b.lo, (b.lo + b.hi) / 2, b.hi} {
		pdf.SetXY(x-14, sy(v)-2)
		pdf.CellFormat(13, 4, fmt.Sprintf("%.2f", v), "", 0, "R", false, 0, "")
	}

	pdf.SetDashPattern([]float64{1, 1}, 0)
	for _, g := range p.guides {
		if g > b.lo && g < b.hi {
			pdf.Line(x, sy(g), x+w, sy(g))
		}
	}
	pdf.SetDashPattern([]float64{}, 0)

	if len(p.bars) > 0 {
		bw := math.Max(w/float64(n)*0.7, 0.2)
		for i, v := range p.bars {
			if !v.Valid {
				continue
			}
			if v.Float64 >= 0 {
				pdf.SetFillColor(green.r, green.g, green.b)
			} else {
				pdf.SetFillColor(red.r, red.g, red.b)
			}
			top, bottom := sy(math.Max(v.Float64, 0)), sy(math.Min(v.Float64, 0))
			pdf.Rect(sx(i)-bw/2, top, bw, math.Max(bottom-top, 0.1), "F")
		}
	}

	legendX := x + 2
	for _, l := range p.lines {
		pdf.SetDrawColor(l.color.r, l.color.g, l.color.b)
		pdf.SetLineWidth(0.35)
		if l.dashed {
			pdf.SetDashPattern([]float64{1.5, 1}, 0)
		}
		prev := -1
		for i, v := range l.values {
			if !v.Valid {
				prev = -1
				continue
			}
			if prev >= 0 {
				pdf.Line(sx(prev), sy(l.values[prev].Float64), sx(i), sy(v.Float64))
			}
			prev = i
		}
		pdf.SetDashPattern([]float64{}, 0)

		pdf.Line(legendX, y+3, legendX+5, y+3)
		pdf.SetXY(legendX+6, y+1)
		pdf.SetTextColor(l.color.r, l.color.g, l.color.b)
		pdf.CellFormat(16, 4, l.label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		legendX += 24
	}
}
