package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/trackdrive/internal/suspension"
)

const parallelEps = 1e-12

// Box is an axis-aligned solid on one collision layer.
type Box struct {
	Name  string
	Min   mgl64.Vec3
	Max   mgl64.Vec3
	Layer int
}

// Terrain is a static set of boxes.
type Terrain struct {
	boxes []Box
}

func NewTerrain(boxes ...Box) *Terrain {
	t := &Terrain{}
	for _, b := range boxes {
		t.Add(b)
	}
	return t
}

// Add inserts a box, normalizing inverted corners.
func (t *Terrain) Add(b Box) {
	for i := 0; i < 3; i++ {
		if b.Min[i] > b.Max[i] {
			b.Min[i], b.Max[i] = b.Max[i], b.Min[i]
		}
	}
	t.boxes = append(t.boxes, b)
}

func (t *Terrain) Boxes() []Box { return t.boxes }

// Raycast returns the nearest hit within maxDist on a layer included by mask.
// A ray starting inside a box hits at distance 0 with the normal facing back
// along the ray.
func (t *Terrain) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask suspension.LayerMask) (suspension.Hit, bool) {
	if maxDist < 0 || dir.Len() == 0 {
		return suspension.Hit{}, false
	}
	dir = dir.Normalize()

	best := suspension.Hit{Distance: math.Inf(1)}
	found := false
	for i := range t.boxes {
		b := &t.boxes[i]
		if !mask.Includes(b.Layer) {
			continue
		}
		d, n, ok := intersectBox(origin, dir, b)
		if !ok || d > maxDist || d >= best.Distance {
			continue
		}
		best = suspension.Hit{Point: origin.Add(dir.Mul(d)), Normal: n, Distance: d}
		found = true
	}
	if !found {
		return suspension.Hit{}, false
	}
	return best, true
}

// intersectBox is the slab test. It returns the entry distance and the normal
// of the entered face.
func intersectBox(o, d mgl64.Vec3, b *Box) (float64, mgl64.Vec3, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	axis, sign := -1, 0.0

	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < parallelEps {
			if o[i] < b.Min[i] || o[i] > b.Max[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (b.Min[i] - o[i]) / d[i]
		t2 := (b.Max[i] - o[i]) / d[i]
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1.0
		}
		if t1 > tmin {
			tmin, axis, sign = t1, i, s
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}
	if tmax < 0 {
		return 0, mgl64.Vec3{}, false
	}
	if tmin < 0 || axis < 0 {
		return 0, d.Mul(-1), true
	}
	var n mgl64.Vec3
	n[axis] = sign
	return tmin, n, true
}
