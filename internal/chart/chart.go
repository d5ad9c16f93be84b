// Package chart renders analysis charts to PDF files.
package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/guregu/null/v6"
	"github.com/phuslu/log"

	"friday/internal/model"
)

// PathPrefix is the relative path reports use to refer to charts.
const PathPrefix = "assets/charts/"

// DefaultDir is where charts are written when no directory is configured.
const DefaultDir = "assets/charts"

const timestampLayout = "20060102150405"

var errNoData = errors.New("not enough data to chart")

// Renderer writes one PDF per analysis into Dir.
type Renderer struct {
	Dir string
	Now func() time.Time
}

// NewRenderer writes charts into dir, creating it when missing.
func NewRenderer(dir string) *Renderer {
	if dir == "" {
		dir = DefaultDir
	}
	return &Renderer{Dir: dir, Now: time.Now}
}

// StockChart draws price with moving averages and Bollinger Bands, RSI and
// MACD panels.
func (r *Renderer) StockChart(a *model.StockAnalysis, set model.IndicatorSet) (string, error) {
	if len(set.Rows) < 2 {
		return "", errNoData
	}
	rows := set.Rows
	name := fmt.Sprintf("%s_%s_%s.pdf", a.Instrument.Symbol, a.Instrument.Exchange, r.Now().Format(timestampLayout))
	title := fmt.Sprintf("%s (%s) Stock Analysis", a.Name, a.Instrument.Exchange)
	footer := fmt.Sprintf("Current Price: Rs.%.2f | Trend: %s | Recommendation: %s", a.LatestPrice, a.Trend, a.Signal.Recommendation)

	panels := []panel{
		{
			title: "Price and Moving Averages",
			lines: []line{
				{label: "Close", color: black, values: values(rows)},
				{label: "SMA 5", color: blue, values: column(rows, func(r model.IndicatorRow) null.Float { return r.SMA5 })},
				{label: "SMA 20", color: orange, values: column(rows, func(r model.IndicatorRow) null.Float { return r.SMA20 })},
				{label: "SMA 50", color: green, values: column(rows, func(r model.IndicatorRow) null.Float { return r.SMA50 })},
				{label: "BB Upper", color: grey, dashed: true, values: column(rows, func(r model.IndicatorRow) null.Float { return r.BBUpper })},
				{label: "BB Lower", color: grey, dashed: true, values: column(rows, func(r model.IndicatorRow) null.Float { return r.BBLower })},
			},
		},
		{
			title:  "Relative Strength Index (RSI)",
			lines:  []line{{label: "RSI 14", color: purple, values: column(rows, func(r model.IndicatorRow) null.Float { return r.RSI14 })}},
			fixed:  &bounds{0, 100},
			guides: []float64{30, 70},
		},
		{
			title: "Moving Average Convergence Divergence (MACD)",
			lines: []line{
				{label: "MACD", color: blue, values: column(rows, func(r model.IndicatorRow) null.Float { return r.MACD })},
				{label: "Signal", color: red, values: column(rows, func(r model.IndicatorRow) null.Float { return r.MACDSig })},
			},
			bars:   column(rows, func(r model.IndicatorRow) null.Float { return r.MACDHist }),
			guides: []float64{0},
		},
	}
	return r.write(name, title, footer, set.Series, panels)
}

// FundChart draws NAV with moving averages, daily returns and rolling
// 7 and 30 observation returns.
func (r *Renderer) FundChart(a *model.FundAnalysis, set model.IndicatorSet) (string, error) {
	if len(set.Rows) < 2 {
		return "", errNoData
	}
	rows := set.Rows
	name := fmt.Sprintf("fund_%s_%s.pdf", a.Meta.Code, r.Now().Format(timestampLayout))
	title := fmt.Sprintf("%s NAV Analysis", a.Name)
	footer := fmt.Sprintf("Current NAV: Rs.%.4f | Trend: %s | %s", a.LatestNAV, a.Trend, a.SIPRecommendation)

	panels := []panel{
		{
			title: "NAV and Moving Averages",
			lines: []line{
				{label: "NAV", color: black, values: values(rows)},
				{label: "SMA 5", color: blue, values: column(rows, func(r model.IndicatorRow) null.Float { return r.SMA5 })},
				{label: "SMA 20", color: orange, values: column(rows, func(r model.IndicatorRow) null.Float { return r.SMA20 })},
			},
		},
		{
			title:  "Daily Returns (%)",
			bars:   column(rows, func(r model.IndicatorRow) null.Float { return r.Return(1) }),
			guides: []float64{0},
		},
		{
			title: "Rolling Returns (%)",
			lines: []line{
				{label: "7 day", color: green, values: column(rows, func(r model.IndicatorRow) null.Float { return r.Return(7) })},
				{label: "30 day", color: purple, values: column(rows, func(r model.IndicatorRow) null.Float { return r.Return(30) })},
			},
			guides: []float64{0},
		},
	}
	return r.write(name, title, footer, set.Series, panels)
}

func (r *Renderer) write(name, title, footer string, series model.Series, panels []panel) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr(title), "", 1, "C", false, 0, "")

	const top, height, gap = 22.0, 52.0, 9.0
	for i, p := range panels {
		p.draw(pdf, 15, top+float64(i)*(height+gap), 267, height)
	}
	dateAxis(pdf, series, 15, top+float64(len(panels))*(height+gap)-gap+1, 267)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(10, 198)
	pdf.CellFormat(0, 5, tr(footer), "", 0, "C", false, 0, "")

	path := filepath.Join(r.Dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	log.Info().Str("path", path).Int("points", series.Len()).Msg("chart generated")
	return PathPrefix + name, nil
}

// dateAxis labels up to six evenly spaced dates under the last panel.
func dateAxis(pdf *fpdf.Fpdf, series model.Series, x, y, w float64) {
	n := series.Len()
	if n < 2 {
		return
	}
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(60, 60, 60)
	ticks := min(6, n)
	for i := 0; i < ticks; i++ {
		idx := i * (n - 1) / (ticks - 1)
		px := x + w*float64(idx)/float64(n-1)
		pdf.SetXY(px-12, y)
		pdf.CellFormat(24, 4, series.Points[idx].Time.Format("2006-01-02"), "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func values(rows []model.IndicatorRow) []null.Float {
	out := make([]null.Float, len(rows))
	for i, r := range rows {
		out[i] = null.FloatFrom(r.Value)
	}
	return out
}

func column(rows []model.IndicatorRow, get func(model.IndicatorRow) null.Float) []null.Float {
	out := make([]null.Float, len(rows))
	for i, r := range rows {
		out[i] = get(r)
	}
	return out
}
