package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/lixenwraith/raycar/vehicle"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
)

// chartPoints bounds the speed history handed to asciigraph
const chartPoints = 120

// runStats folds per-tick reports into the end-of-run summary
type runStats struct {
	elapsed      time.Duration
	ticks        uint64
	speeds       []float64
	topSpeed     float64
	maxSlip      float64
	slideStarts  int
	slidingTicks uint64
	distance     float64
}

// Observe matches sim.Observer
func (s *runStats) Observe(elapsed time.Duration, r *vehicle.Report) {
	s.elapsed = elapsed
	s.ticks++
	s.speeds = append(s.speeds, r.Speed)
	if r.Speed > s.topSpeed {
		s.topSpeed = r.Speed
	}
	if slip := r.MaxSlip(); slip > s.maxSlip {
		s.maxSlip = slip
	}
	s.slideStarts += len(r.SlideStarted)
	if r.SlidingCount() > 0 {
		s.slidingTicks++
	}
}

// downsample averages values into at most n buckets
func downsample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	per := float64(len(values)) / float64(n)
	for i := range out {
		lo := int(float64(i) * per)
		hi := int(float64(i+1) * per)
		if hi > len(values) {
			hi = len(values)
		}
		if hi <= lo {
			hi = lo + 1
		}
		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// render builds the summary panel with the speed chart
func (s *runStats) render(runID string, samples, failures int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("RAYCAR RUN "+runID) + "\n")

	if len(s.speeds) > 1 {
		chart := asciigraph.Plot(downsample(s.speeds, chartPoints),
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("speed m/s"),
		)
		b.WriteString(graphStyle.Render(chart) + "\n")
	}

	slidePct := 0.0
	if s.ticks > 0 {
		slidePct = 100 * float64(s.slidingTicks) / float64(s.ticks)
	}

	rows := []string{
		row("Elapsed", s.elapsed.Round(time.Millisecond).String()),
		row("Ticks", fmt.Sprintf("%d", s.ticks)),
		row("Top speed", fmt.Sprintf("%.2f m/s", s.topSpeed)),
		row("Distance", fmt.Sprintf("%.1f m", s.distance)),
		row("Max slip", fmt.Sprintf("%.3f", s.maxSlip)),
		row("Slide starts", fmt.Sprintf("%d", s.slideStarts)),
		row("Time sliding", fmt.Sprintf("%.1f%%", slidePct)),
		row("Samples", fmt.Sprintf("%d", samples)),
	}
	if failures > 0 {
		rows = append(rows, row("Record errors", fmt.Sprintf("%d", failures)))
	}
	b.WriteString(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	b.WriteString("\n")
	return b.String()
}
