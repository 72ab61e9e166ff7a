package preview

import (
	"math"

	"mobility-urdf/internal/kinematics"
	"mobility-urdf/internal/mathutil"
)

// fillRatio is the share of the canvas the projected anchors span.
const fillRatio = 0.8

type point struct{ x, y float64 }

// layout projects every link anchor through the isometric view and fits the
// result into a size x size canvas. Image Y grows downward.
func layout(t *kinematics.Tree, size int) map[string]point {
	anchors := map[string]mathutil.Vec3{kinematics.BaseLink: {}}
	for _, l := range t.Links {
		anchors[l.Name] = l.Anchor
	}

	raw := make(map[string]point, len(anchors))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for name, a := range anchors {
		p := mathutil.IsometricView.MulVec3(a)
		pt := point{p[0], -p[1]}
		raw[name] = pt
		minX, maxX = math.Min(minX, pt.x), math.Max(maxX, pt.x)
		minY, maxY = math.Min(minY, pt.y), math.Max(maxY, pt.y)
	}

	span := math.Max(maxX-minX, maxY-minY)
	scale := 1.0
	if span > 1e-9 {
		scale = float64(size) * fillRatio / span
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	half := float64(size) / 2

	out := make(map[string]point, len(raw))
	for name, pt := range raw {
		out[name] = point{
			x: half + (pt.x-cx)*scale,
			y: half + (pt.y-cy)*scale,
		}
	}
	return out
}

// projectDir maps a direction into screen space, unit length.
func projectDir(d mathutil.Vec3) point {
	p := mathutil.IsometricView.MulVec3(d)
	l := math.Hypot(p[0], p[1])
	if l < 1e-9 {
		return point{}
	}
	return point{p[0] / l, -p[1] / l}
}
