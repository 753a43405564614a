package suspension

import "github.com/go-gl/mathgl/mgl64"

// LayerMask is a set of excluded collision layers, one bit per layer. The
// zero mask excludes nothing.
type LayerMask uint32

// ExcludeNone tests every layer.
const ExcludeNone LayerMask = 0

// ExcludeLayers returns a mask skipping the given layers. Layers outside
// [0, 31] are ignored.
func ExcludeLayers(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l >= 0 && l < 32 {
			m |= 1 << uint(l)
		}
	}
	return m
}

// Includes reports whether a ray with this mask tests layer. Layers outside
// [0, 31] are never tested.
func (m LayerMask) Includes(layer int) bool {
	if layer < 0 || layer >= 32 {
		return false
	}
	return m&(1<<uint(layer)) == 0
}

// Hit is the nearest ray intersection.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// RayCaster is the host collision query. dir is unit length. Implementations
// report only hits with Distance <= maxDist on layers included by mask.
type RayCaster interface {
	Raycast(origin, dir mgl64.Vec3, maxDist float64, mask LayerMask) (Hit, bool)
}

// RayCasterFunc adapts a function to RayCaster.
type RayCasterFunc func(origin, dir mgl64.Vec3, maxDist float64, mask LayerMask) (Hit, bool)

func (f RayCasterFunc) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask LayerMask) (Hit, bool) {
	return f(origin, dir, maxDist, mask)
}
