// Package export renders telemetry and vehicle snapshots as SVG.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/trackdrive/internal/vehicle"
)

var ErrTooFewPoints = errors.New("export: need at least two points")

type Point struct{ X, Y float64 }

// Points zips xs and ys, truncating to the shorter one.
func Points(xs, ys []float64) []Point {
	n := min(len(xs), len(ys))
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{xs[i], ys[i]}
	}
	return pts
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func fit(pts []Point, pad float64) bounds {
	b := bounds{pts[0].X, pts[0].X, pts[0].Y, pts[0].Y}
	for _, p := range pts[1:] {
		b.minX = min(b.minX, p.X)
		b.maxX = max(b.maxX, p.X)
		b.minY = min(b.minY, p.Y)
		b.maxY = max(b.maxY, p.Y)
	}
	rx, ry := b.maxX-b.minX, b.maxY-b.minY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	b.minX -= rx * pad
	b.maxX += rx * pad
	b.minY -= ry * pad
	b.maxY += ry * pad
	return b
}

func (b bounds) project(p Point, width, height int) (float64, float64) {
	x := (p.X - b.minX) / (b.maxX - b.minX) * float64(width)
	y := float64(height) - (p.Y-b.minY)/(b.maxY-b.minY)*float64(height)
	return x, y
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}

// SeriesSVG draws pts as a single polyline scaled to the viewport.
func SeriesSVG(pts []Point, width, height int, stroke string) (string, error) {
	if len(pts) < 2 {
		return "", ErrTooFewPoints
	}
	b := fit(pts, 0.1)

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	for i, p := range pts {
		x, y := b.project(p, width, height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>")
	return sb.String(), nil
}

// SideViewSVG draws the vehicle from the side: forward (Z) to the right, up
// (Y) upward. Grounded wheels are green with their contact point marked,
// airborne wheels grey, faulted wheels red.
func SideViewSVG(snap vehicle.Snapshot, radius func(name string) float64, width, height int) (string, error) {
	if len(snap.Wheels) == 0 {
		return "", ErrTooFewPoints
	}
	pts := make([]Point, 0, 2*len(snap.Wheels)+1)
	for _, w := range snap.Wheels {
		r := radius(w.Name)
		pts = append(pts,
			Point{w.ProbePosition.Z() - r, w.ProbePosition.Y() - r},
			Point{w.ProbePosition.Z() + r, w.ProbePosition.Y() + r})
	}
	pts = append(pts, Point{pts[0].X, snap.ChassisHeight})
	b := fit(pts, 0.2)
	// keep the aspect ratio so wheels stay round
	scale := min(float64(width)/(b.maxX-b.minX), float64(height)/(b.maxY-b.minY))

	var sb strings.Builder
	header(&sb, width, height)

	first, last := snap.Wheels[0].ProbePosition.Z(), snap.Wheels[0].ProbePosition.Z()
	for _, w := range snap.Wheels {
		first = min(first, w.ProbePosition.Z())
		last = max(last, w.ProbePosition.Z())
	}
	x1, y := b.project(Point{first, snap.ChassisHeight}, width, height)
	x2, _ := b.project(Point{last, snap.ChassisHeight}, width, height)
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#00ffff" stroke-width="3"/>
`, x1, y, x2, y)

	for _, w := range snap.Wheels {
		color := "#666666"
		switch {
		case w.Faulted:
			color = "#ff0000"
		case w.Grounded:
			color = "#00ff00"
		}
		cx, cy := b.project(Point{w.ProbePosition.Z(), w.ProbePosition.Y()}, width, height)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="1.5"/>
`, cx, cy, radius(w.Name)*scale, color)
		if w.Grounded {
			px, py := b.project(Point{w.ContactPoint.Z(), w.ContactPoint.Y()}, width, height)
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="2" fill="#ffff00"/>
`, px, py)
		}
	}
	sb.WriteString("</svg>")
	return sb.String(), nil
}
