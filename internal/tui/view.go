package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/trackdrive/internal/vehicle"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	panelStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
)

const (
	canvasW = 48
	canvasH = 12
	// metres shown either side of the chassis
	viewHalfLength = 4.0
	viewHeight     = 3.0
)

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n  " + cyan.Bold(true).Render("trackdrive") + dim.Render("  suspension and coupled wheel groups") + "\n\n")
	for i, name := range m.scenarios {
		cursor := "  "
		style := dim
		if i == m.cursor {
			cursor = cyan.Render("▸ ")
			style = white
		}
		b.WriteString("  " + cursor + style.Render(name) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n  " + red.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n  " + dim.Render("↑/↓ select  enter run  q quit") + "\n")
	return b.String()
}

func (m model) viewSim() string {
	s := m.snap
	left := lipgloss.JoinVertical(lipgloss.Left,
		cyan.Bold(true).Render(m.selected)+dim.Render(fmt.Sprintf("  t=%.2fs  step %d", s.Time, s.Step)),
		"",
		m.renderCanvas(),
		"",
		m.renderWheels(),
	)

	var right strings.Builder
	right.WriteString(m.renderInput() + "\n\n")
	if len(m.heights) > 1 {
		right.WriteString(graphStyle.Render(asciigraph.Plot(m.heights, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("chassis height"))) + "\n\n")
	}
	if len(m.rpms) > 1 {
		right.WriteString(graphStyle.Render(asciigraph.Plot(m.rpms, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("track rpm"))) + "\n\n")
	}
	right.WriteString(m.renderGroups())

	help := dim.Render("w/s throttle  x cut  b brake  p pause  . step  +/- speed  r restart  q menu")
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, panelStyle.Render(right.String())),
		"",
		help,
	)
}

func (m model) renderInput() string {
	status := green.Render("running")
	if m.paused {
		status = yellow.Render("paused")
	}
	return labelStyle.Render("status") + status + dim.Render(fmt.Sprintf("  x%.3g  %.0ffps", m.speed, m.fps)) + "\n" +
		labelStyle.Render("throttle") + white.Render(fmt.Sprintf("%+.1f", m.input.Throttle)) + "\n" +
		labelStyle.Render("brake") + white.Render(fmt.Sprintf("%.0f", m.input.Brake)) + "\n" +
		labelStyle.Render("height") + white.Render(fmt.Sprintf("%.3f", m.snap.ChassisHeight)) + "\n" +
		labelStyle.Render("distance") + white.Render(fmt.Sprintf("%.2f", m.snap.Distance))
}

func (m model) renderGroups() string {
	var b strings.Builder
	for _, g := range m.snap.Groups {
		line := fmt.Sprintf("%-6s τ=%7.1f rpm=%7.1f belt=%5.2f", g.Name, g.TotalMotorTorque, g.TrackRPM, g.BeltSpeed)
		switch {
		case g.Report.Skipped:
			b.WriteString(red.Render(line+" skipped") + "\n")
		case g.Report.Airborne > 0:
			b.WriteString(yellow.Render(fmt.Sprintf("%s air=%d", line, g.Report.Airborne)) + "\n")
		default:
			b.WriteString(white.Render(line) + "\n")
		}
	}
	return b.String()
}

func (m model) renderWheels() string {
	var b strings.Builder
	b.WriteString(dim.Render(fmt.Sprintf("%-14s %-6s %6s %8s %8s %8s", "wheel", "group", "comp", "force", "omega", "torque")) + "\n")
	for _, w := range m.snap.Wheels {
		line := fmt.Sprintf("%-14s %-6s %6.3f %8.0f %8.2f %8.1f", w.Name, w.Group, w.Compression, w.SuspensionForce, w.AngularVelocity, w.MotorTorque)
		b.WriteString(wheelStyle(w).Render(line) + "\n")
	}
	return b.String()
}

func wheelStyle(w vehicle.WheelSample) lipgloss.Style {
	switch {
	case w.Faulted:
		return red
	case w.Excluded:
		return magenta
	case !w.Grounded:
		return yellow
	}
	return white
}

// renderCanvas draws a side view: rolling axis left to right, up is up.
func (m model) renderCanvas() string {
	canvas := make([][]rune, canvasH)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", canvasW))
	}

	toCell := func(z, y float64) (int, int) {
		cx := int((z - m.snap.Distance + viewHalfLength) / (2 * viewHalfLength) * float64(canvasW-1))
		cy := canvasH - 1 - int(y/viewHeight*float64(canvasH-1))
		return cx, cy
	}

	for x := 0; x < canvasW; x++ {
		set(canvas, x, canvasH-1, '▀', canvasW, canvasH)
	}

	_, bodyY := toCell(m.snap.Distance, m.snap.ChassisHeight)
	for _, w := range m.snap.Wheels {
		mx, _ := toCell(w.ProbePosition.Z(), 0)
		px, py := toCell(w.ProbePosition.Z(), w.ProbePosition.Y())
		drawLine(canvas, canvasW, canvasH, mx, bodyY, px, py, '│')
		c := '●'
		if !w.Grounded {
			c = '○'
		}
		set(canvas, px, py, c, canvasW, canvasH)
	}
	for x := 2; x < canvasW-2; x++ {
		set(canvas, x, bodyY, '═', canvasW, canvasH)
	}

	lines := make([]string, canvasH)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

func set(canvas [][]rune, x, y int, c rune, w, h int) {
	if x >= 0 && x < w && y >= 0 && y < h {
		canvas[y][x] = c
	}
}

func drawLine(canvas [][]rune, w, h, x1, y1, x2, y2 int, c rune) {
	dx := intAbs(x2 - x1)
	dy := intAbs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		set(canvas, x1, y1, c, w, h)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
