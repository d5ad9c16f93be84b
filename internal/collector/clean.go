package collector

import (
	"math"
	"sort"

	"friday/internal/model"
)

// CleanBars drops bars without a usable close, sorts ascending and keeps
// the last bar for any repeated timestamp. The input is not modified.
func CleanBars(bars []model.OHLCV) []model.OHLCV {
	out := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		if !usable(b.Close) {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return dedupe(out, func(i int) int64 { return out[i].Time.Unix() }, func(dst, src int) { out[dst] = out[src] })
}

// CleanSeries applies the same rules to a value series.
func CleanSeries(s model.Series) model.Series {
	pts := make([]model.Point, 0, len(s.Points))
	for _, p := range s.Points {
		if !usable(p.Value) {
			continue
		}
		pts = append(pts, p)
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Time.Before(pts[j].Time) })
	pts = dedupe(pts, func(i int) int64 { return pts[i].Time.Unix() }, func(dst, src int) { pts[dst] = pts[src] })
	return model.Series{Name: s.Name, Points: pts}
}

func usable(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// dedupe compacts a sorted slice so that each key appears once, keeping
// the last occurrence.
func dedupe[T any](s []T, key func(int) int64, move func(dst, src int)) []T {
	if len(s) < 2 {
		return s
	}
	n := 0
	for i := range s {
		if i+1 < len(s) && key(i) == key(i+1) {
			continue
		}
		move(n, i)
		n++
	}
	return s[:n]
}
