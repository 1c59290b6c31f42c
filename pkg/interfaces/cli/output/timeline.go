package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hqsteel/heatline/pkg/domain/entities"
)

// Timeline renders validated heats as an SVG schedule chart: one row
// per heat, one colored bar per operation, colored by stage group.
type Timeline struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	RowHeight    int
	StartTime    time.Time
	EndTime      time.Time

	heats []entities.Heat
}

// NewTimeline creates a timeline chart for the given heats
func NewTimeline(heats []entities.Heat) *Timeline {
	tl := &Timeline{
		Width:        1200,
		Height:       200,
		MarginLeft:   140,
		MarginTop:    50,
		MarginRight:  40,
		MarginBottom: 60,
		RowHeight:    28,
		heats:        heats,
	}
	if len(heats) == 0 {
		return tl
	}

	// Find time bounds across every operation
	first := true
	for _, heat := range heats {
		for _, op := range heat.Operations {
			if first || op.StartTime.Before(tl.StartTime) {
				tl.StartTime = op.StartTime
			}
			if first || op.EndTime.After(tl.EndTime) {
				tl.EndTime = op.EndTime
			}
			first = false
		}
	}

	// 5% padding on each side of the time range
	padding := time.Duration(float64(tl.EndTime.Sub(tl.StartTime)) * 0.05)
	tl.StartTime = tl.StartTime.Add(-padding)
	tl.EndTime = tl.EndTime.Add(padding)

	tl.Height = len(heats)*tl.RowHeight + tl.MarginTop + tl.MarginBottom
	return tl
}

// RenderSVG produces the chart markup.
func (tl *Timeline) RenderSVG() string {
	if len(tl.heats) == 0 {
		return tl.renderEmptyChart()
	}

	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, tl.Width, tl.Height))
	svg.WriteString(`<defs><style>`)
	svg.WriteString(`.heat-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.time-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.op-bar { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`.op-text { font-family: Arial, sans-serif; font-size: 9px; fill: white; }`)
	svg.WriteString(`</style></defs>`)

	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, tl.Width, tl.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title">Heat Processing Timeline</text>`, tl.MarginLeft))

	tl.drawTimeAxis(&svg)

	// Heats ordered by their first operation's start for a readable
	// cascade.
	ordered := make([]entities.Heat, len(tl.heats))
	copy(ordered, tl.heats)
	sort.SliceStable(ordered, func(i, j int) bool {
		if len(ordered[i].Operations) == 0 || len(ordered[j].Operations) == 0 {
			return ordered[i].HeatID < ordered[j].HeatID
		}
		a := ordered[i].Operations[0].StartTime
		b := ordered[j].Operations[0].StartTime
		if !a.Equal(b) {
			return a.Before(b)
		}
		return ordered[i].HeatID < ordered[j].HeatID
	})

	for i, heat := range ordered {
		y := tl.MarginTop + i*tl.RowHeight

		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="heat-label" text-anchor="end">%s</text>`,
			tl.MarginLeft-10, y+tl.RowHeight/2+4, heat.HeatID))
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			tl.MarginLeft, y+tl.RowHeight, tl.Width-tl.MarginRight, y+tl.RowHeight))

		for _, op := range heat.Operations {
			tl.drawBar(&svg, heat, op, y)
		}
	}

	tl.drawLegend(&svg)
	svg.WriteString(`</svg>`)
	return svg.String()
}

// drawTimeAxis draws hourly (or coarser) labels along the bottom.
func (tl *Timeline) drawTimeAxis(svg *strings.Builder) {
	chartWidth := tl.Width - tl.MarginLeft - tl.MarginRight
	totalDuration := tl.EndTime.Sub(tl.StartTime)

	interval := time.Hour
	labelFormat := "15:04"
	if totalDuration > 48*time.Hour {
		interval = 24 * time.Hour
		labelFormat = "Jan 2"
	} else if totalDuration > 12*time.Hour {
		interval = 4 * time.Hour
	}

	axisY := tl.Height - tl.MarginBottom + 20
	for t := tl.StartTime.Truncate(interval); t.Before(tl.EndTime); t = t.Add(interval) {
		offset := t.Sub(tl.StartTime)
		x := tl.MarginLeft + int(float64(offset)/float64(totalDuration)*float64(chartWidth))
		if x < tl.MarginLeft || x > tl.Width-tl.MarginRight {
			continue
		}
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="time-label" text-anchor="middle">%s</text>`,
			x, axisY, t.Format(labelFormat)))
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			x, tl.MarginTop, x, tl.Height-tl.MarginBottom))
	}
}

// drawBar renders one operation with a tooltip.
func (tl *Timeline) drawBar(svg *strings.Builder, heat entities.Heat, op entities.Operation, rowY int) {
	chartWidth := tl.Width - tl.MarginLeft - tl.MarginRight
	totalDuration := tl.EndTime.Sub(tl.StartTime)

	x := tl.MarginLeft + int(float64(op.StartTime.Sub(tl.StartTime))/float64(totalDuration)*float64(chartWidth))
	width := int(float64(op.EndTime.Sub(op.StartTime)) / float64(totalDuration) * float64(chartWidth))
	if width < 2 {
		width = 2
	}

	barY := rowY + 3
	barHeight := tl.RowHeight - 6

	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="op-bar">`,
		x, barY, width, barHeight, groupColor(op.Group)))
	svg.WriteString(fmt.Sprintf(`<title>Heat %s | %s | %s - %s | %d min</title>`,
		heat.HeatID, op.Unit,
		op.StartTime.Format("15:04"), op.EndTime.Format("15:04"),
		op.DurationMinutes))
	svg.WriteString(`</rect>`)

	if width > 36 {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="op-text" text-anchor="middle">%s</text>`,
			x+width/2, barY+barHeight/2+3, op.Unit))
	}
}

// drawLegend explains the stage group colors.
func (tl *Timeline) drawLegend(svg *strings.Builder) {
	legendX := tl.Width - tl.MarginRight - 320
	legendY := 16

	items := []entities.StageGroup{
		entities.GroupKR,
		entities.GroupBOF,
		entities.GroupLF,
		entities.GroupCaster,
	}
	for i, group := range items {
		x := legendX + i*80
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="12" height="10" fill="%s"/>`,
			x, legendY, groupColor(group)))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="time-label">%s</text>`,
			x+16, legendY+9, group))
	}
}

// groupColor maps a stage group to its bar color.
func groupColor(group entities.StageGroup) string {
	switch group {
	case entities.GroupKR:
		return "#9C27B0"
	case entities.GroupBOF:
		return "#F44336"
	case entities.GroupLF:
		return "#2196F3"
	case entities.GroupCaster:
		return "#4CAF50"
	default:
		return "#9E9E9E"
	}
}

func (tl *Timeline) renderEmptyChart() string {
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
		<rect width="%d" height="%d" fill="white"/>
		<text x="%d" y="%d" text-anchor="middle" style="font-family: Arial, sans-serif; font-size: 16px; fill: #666;">No Valid Heats Found</text>
	</svg>`, tl.Width, tl.Height, tl.Width, tl.Height, tl.Width/2, tl.Height/2)
}
