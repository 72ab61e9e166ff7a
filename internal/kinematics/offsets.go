package kinematics

import (
	"mobility-urdf/internal/mathutil"
	"mobility-urdf/internal/mobility"
)

// Offsets are the translations derived for one link. All anchors share the
// asset's global frame, so offsets compose by subtraction alone.
type Offsets struct {
	Anchor mathutil.Vec3 // joint axis origin; zero for fixed links
	Joint  mathutil.Vec3 // anchor relative to the parent's anchor
	Visual mathutil.Vec3 // applied to the link's geometry: -Anchor
}

// Anchor returns the point the link's joint acts about or along.
func Anchor(l mobility.Link) mathutil.Vec3 {
	if l.Joint.Kind.Movable() {
		return l.Joint.Axis.Origin
	}
	return mathutil.Vec3{}
}

// ComputeOffsets returns offsets indexed like g.Links.
func ComputeOffsets(g *mobility.Graph) []Offsets {
	offs := make([]Offsets, g.Len())
	for i, l := range g.Links {
		offs[i].Anchor = Anchor(l)
	}
	for i := range offs {
		var parentAnchor mathutil.Vec3
		if p := g.Parents[i]; p >= 0 {
			parentAnchor = offs[p].Anchor
		}
		offs[i].Joint = offs[i].Anchor.Sub(parentAnchor)
		offs[i].Visual = offs[i].Anchor.Neg()
	}
	return offs
}
