// Package charts renders the presentation layer over the temporal series:
// percentage evolution, registration volume, and the recent trend with its
// inversion-point annotations. Input is the CSV series read back from disk;
// nothing here feeds back into the analysis.
package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/hvaldez/ladacheck/internal/domain"
)

const periodLayout = "2006-01"

// Renderer writes PNG charts into Dir. CutoffYear restricts the trend chart
// to recent periods.
type Renderer struct {
	Dir        string
	CutoffYear int
}

type point struct {
	at     time.Time
	bucket domain.PeriodBucket
}

// RenderAll produces the three charts from the temporal series and returns
// the written paths. Periods must parse as YYYY-MM.
func (r Renderer) RenderAll(buckets []domain.PeriodBucket) ([]string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create charts dir: %w", err)
	}

	points, err := toPoints(buckets)
	if err != nil {
		return nil, err
	}

	paths := []string{
		filepath.Join(r.Dir, "evolucion_porcentajes.png"),
		filepath.Join(r.Dir, "volumen_usuarios.png"),
		filepath.Join(r.Dir, "tendencia_reciente.png"),
	}
	if err := r.renderPercentages(paths[0], points); err != nil {
		return nil, err
	}
	if err := r.renderVolume(paths[1], points); err != nil {
		return nil, err
	}
	if err := r.renderTrend(paths[2], points); err != nil {
		return nil, err
	}
	return paths, nil
}

func toPoints(buckets []domain.PeriodBucket) ([]point, error) {
	points := make([]point, 0, len(buckets))
	for _, bucket := range buckets {
		at, err := time.Parse(periodLayout, bucket.Period)
		if err != nil {
			return nil, fmt.Errorf("parse period %q: %w", bucket.Period, err)
		}
		points = append(points, point{at: at, bucket: bucket})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].at.Before(points[j].at) })
	return points, nil
}

// renderPercentages draws both percentage series over time with a dashed
// reference line at 50%.
func (r Renderer) renderPercentages(path string, points []point) error {
	xs := make([]time.Time, len(points))
	sin := make([]float64, len(points))
	con := make([]float64, len(points))
	ref := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.at
		sin[i] = p.bucket.PctWithoutPrefix
		con[i] = p.bucket.PctWithPrefix
		ref[i] = 50
	}

	graph := chart.Chart{
		Title:  "Evolución porcentual de números con y sin prefijo país",
		Width:  1500,
		Height: 800,
		XAxis: chart.XAxis{
			Name:           "Fecha",
			ValueFormatter: chart.TimeValueFormatterWithFormat(periodLayout),
		},
		YAxis: chart.YAxis{
			Name:  "Porcentaje (%)",
			Range: &chart.ContinuousRange{Min: 0, Max: 105},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Sin prefijo",
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2},
				XValues: xs,
				YValues: sin,
			},
			chart.TimeSeries{
				Name:    "Con prefijo",
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
				XValues: xs,
				YValues: con,
			},
			chart.TimeSeries{
				Name: "50%",
				Style: chart.Style{
					StrokeColor:     chart.ColorLightGray,
					StrokeWidth:     1,
					StrokeDashArray: []float64{5, 5},
				},
				XValues: xs,
				YValues: ref,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderPNG(path, &graph)
}

// renderVolume stacks the without-prefix volume on top of the total so the
// split and the overall registration volume read off the same chart.
func (r Renderer) renderVolume(path string, points []point) error {
	xs := make([]time.Time, len(points))
	sin := make([]float64, len(points))
	total := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.at
		sin[i] = float64(p.bucket.WithoutPrefix)
		total[i] = float64(p.bucket.Total)
	}

	graph := chart.Chart{
		Title:  "Volumen de registros con y sin prefijo país",
		Width:  1500,
		Height: 800,
		XAxis: chart.XAxis{
			Name:           "Fecha",
			ValueFormatter: chart.TimeValueFormatterWithFormat(periodLayout),
		},
		YAxis: chart.YAxis{Name: "Número de usuarios"},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Con prefijo",
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 1,
					FillColor:   chart.ColorBlue.WithAlpha(120),
				},
				XValues: xs,
				YValues: total,
			},
			chart.TimeSeries{
				Name: "Sin prefijo",
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 1,
					FillColor:   chart.ColorRed.WithAlpha(120),
				},
				XValues: xs,
				YValues: sin,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderPNG(path, &graph)
}

// renderTrend draws the recent window (CutoffYear onward) as shaded areas
// and annotates the inversion point plus the first sustained >90% period.
func (r Renderer) renderTrend(path string, points []point) error {
	recent := recentPoints(points, r.CutoffYear)
	if len(recent) == 0 {
		recent = points
	}

	xs := make([]time.Time, len(recent))
	sin := make([]float64, len(recent))
	con := make([]float64, len(recent))
	for i, p := range recent {
		xs[i] = p.at
		sin[i] = p.bucket.PctWithoutPrefix
		con[i] = p.bucket.PctWithPrefix
	}

	graph := chart.Chart{
		Title:  "Tendencia reciente: Cambio en la distribución de números telefónicos",
		Width:  1500,
		Height: 800,
		XAxis: chart.XAxis{
			Name:           "Fecha",
			ValueFormatter: chart.TimeValueFormatterWithFormat(periodLayout),
		},
		YAxis: chart.YAxis{
			Name:  "Porcentaje (%)",
			Range: &chart.ContinuousRange{Min: 0, Max: 105},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Sin prefijo",
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
					FillColor:   chart.ColorRed.WithAlpha(76),
				},
				XValues: xs,
				YValues: sin,
			},
			chart.TimeSeries{
				Name: "Con prefijo",
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					FillColor:   chart.ColorBlue.WithAlpha(76),
				},
				XValues: xs,
				YValues: con,
			},
		},
	}

	annotations := trendAnnotations(recent)
	if len(annotations) > 0 {
		graph.Series = append(graph.Series, chart.AnnotationSeries{
			Annotations: annotations,
			Style:       chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 1},
		})
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderPNG(path, &graph)
}

func recentPoints(points []point, cutoffYear int) []point {
	cutoff := time.Date(cutoffYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	recent := make([]point, 0, len(points))
	for _, p := range points {
		if !p.at.Before(cutoff) {
			recent = append(recent, p)
		}
	}
	return recent
}

// trendAnnotations marks the first period whose without-prefix share crosses
// 50% and the start of each run of periods above 90%.
func trendAnnotations(points []point) []chart.Value2 {
	var annotations []chart.Value2

	if idx := inversionIndex(points); idx >= 0 {
		p := points[idx]
		annotations = append(annotations, chart.Value2{
			XValue: float64(p.at.UnixNano()),
			YValue: p.bucket.PctWithoutPrefix,
			Label:  fmt.Sprintf("Punto de inversión %s", p.bucket.Period),
		})
	}

	for _, idx := range highShareRunStarts(points) {
		p := points[idx]
		annotations = append(annotations, chart.Value2{
			XValue: float64(p.at.UnixNano()),
			YValue: p.bucket.PctWithoutPrefix,
			Label:  fmt.Sprintf("%s: %.2f%%", p.bucket.Period, p.bucket.PctWithoutPrefix),
		})
	}
	return annotations
}

// inversionIndex returns the first index whose without-prefix share exceeds
// 50%, or -1 when the series never crosses.
func inversionIndex(points []point) int {
	for i, p := range points {
		if p.bucket.PctWithoutPrefix > 50 {
			return i
		}
	}
	return -1
}

// highShareRunStarts returns the indices opening each run of consecutive
// periods whose without-prefix share exceeds 90%.
func highShareRunStarts(points []point) []int {
	var starts []int
	for i, p := range points {
		if p.bucket.PctWithoutPrefix <= 90 {
			continue
		}
		if i == 0 || points[i-1].bucket.PctWithoutPrefix < 90 {
			starts = append(starts, i)
		}
	}
	return starts
}

func renderPNG(path string, graph *chart.Chart) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
