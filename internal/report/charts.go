package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"latency-monitor/internal/models"
)

// errTooFewPoints is returned when a chart would have no visible line
var errTooFewPoints = errors.New("need at least two data points")

var (
	axisStyle = chart.Style{
		StrokeColor: drawing.ColorBlack,
		FontSize:    10,
	}
	gridStyle = chart.Style{
		StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
		StrokeWidth: 1.0,
	}
	padding = chart.Style{
		Padding: chart.Box{
			Top:    20,
			Left:   20,
			Right:  20,
			Bottom: 20,
		},
	}
)

type series struct {
	timestamps []time.Time
	values     []float64
}

func (s *series) add(ts time.Time, v *float64) {
	if v == nil {
		return
	}
	s.timestamps = append(s.timestamps, ts)
	s.values = append(s.values, *v)
}

func (g *Generator) generateLatencyChart(outputDir string, records []models.Record) error {
	var mean, minRTT, maxRTT series
	for _, r := range records {
		mean.add(r.Timestamp, r.Stats.Mean)
		minRTT.add(r.Timestamp, r.Stats.Min)
		maxRTT.add(r.Timestamp, r.Stats.Max)
	}

	if len(mean.values) < 2 {
		return errTooFewPoints
	}

	top := 0.0
	for _, v := range maxRTT.values {
		if v > top {
			top = v
		}
	}
	if top == 0 {
		top = 1
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Round-trip Latency - %s", g.target),
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: padding,
		Width:      1200,
		Height:     400,
		XAxis: chart.XAxis{
			Name:           "Time",
			Style:          axisStyle,
			ValueFormatter: chart.TimeHourValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "Latency (ms)",
			Style: axisStyle,
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: top * 1.1,
			},
			GridMajorStyle: gridStyle,
		},
		Series: []chart.Series{
			timeSeries("Mean", 0, mean, nil),
			timeSeries("Min", 1, minRTT, []float64{5, 5}),
			timeSeries("Max", 2, maxRTT, []float64{5, 5}),
		},
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	return render(graph, filepath.Join(outputDir, fmt.Sprintf("latency_%s.png", sanitizeFilename(g.target))))
}

func (g *Generator) generateLossChart(outputDir string, records []models.Record) error {
	var loss series
	for _, r := range records {
		v := r.Stats.PacketLoss
		loss.add(r.Timestamp, &v)
	}

	if len(loss.values) < 2 {
		return errTooFewPoints
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Packet Loss - %s", g.target),
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: padding,
		Width:      1200,
		Height:     400,
		XAxis: chart.XAxis{
			Name:           "Time",
			Style:          axisStyle,
			ValueFormatter: chart.TimeHourValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "Loss %",
			Style: axisStyle,
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: 100,
			},
			GridMajorStyle: gridStyle,
		},
		Series: []chart.Series{
			timeSeries("Packet loss", 3, loss, nil),
		},
	}

	return render(graph, filepath.Join(outputDir, fmt.Sprintf("loss_%s.png", sanitizeFilename(g.target))))
}

func timeSeries(name string, color int, s series, dash []float64) chart.TimeSeries {
	return chart.TimeSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor:     chart.GetDefaultColor(color),
			StrokeWidth:     2,
			StrokeDashArray: dash,
		},
		XValues: s.timestamps,
		YValues: s.values,
	}
}

func render(graph chart.Chart, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := graph.Render(chart.PNG, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// sanitizeFilename makes a host name or address safe to use in a file name
func sanitizeFilename(s string) string {
	return strings.NewReplacer(
		".", "_",
		":", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
		"%", "_",
	).Replace(s)
}
