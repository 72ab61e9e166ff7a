package urdf

import (
	"sort"

	"mobility-urdf/internal/kinematics"
)

const (
	// fixedRPY rotates the Y-up annotated frame onto the Z-up base.
	fixedRPY = "1.570796326794897 0 -1.570796326794897"
	zeroXYZ  = "0 0 0"
)

// FromTree lays out the document: base link, tree links, tree joints.
func FromTree(t *kinematics.Tree) *Robot {
	r := &Robot{
		Name:   t.Name,
		Links:  make([]Link, 0, len(t.Links)+1),
		Joints: make([]Joint, 0, len(t.Joints)),
	}
	r.Links = append(r.Links, Link{Name: kinematics.BaseLink})
	for _, l := range t.Links {
		r.Links = append(r.Links, link(l))
	}
	for _, j := range t.Joints {
		r.Joints = append(r.Joints, joint(j))
	}
	return r
}

func link(l kinematics.TreeLink) Link {
	out := Link{Name: l.Name}
	for _, v := range l.Visuals {
		origin := Origin{XYZ: FormatVec(v.Origin)}
		geom := Geometry{Mesh: Mesh{Filename: v.Mesh}}
		out.Visuals = append(out.Visuals, Visual{Name: v.Name, Origin: origin, Geometry: geom})
		out.Collisions = append(out.Collisions, Collision{Origin: origin, Geometry: geom})
	}
	return out
}

func joint(j kinematics.TreeJoint) Joint {
	out := Joint{
		Name:   j.Name,
		Type:   j.Joint.Type.String(),
		Parent: LinkRef{Link: j.Parent},
		Child:  LinkRef{Link: j.Child},
	}

	switch {
	case j.Joint.Type == kinematics.Fixed:
		out.Origin = &Origin{RPY: fixedRPY, XYZ: zeroXYZ}
		return out
	case j.Connector:
		out.Origin = &Origin{XYZ: zeroXYZ}
	default:
		out.Origin = &Origin{XYZ: FormatVec(j.Origin)}
	}

	out.Axis = &Axis{XYZ: FormatVec(j.Joint.Axis)}
	if j.Joint.Bounded() {
		out.Limit = &Limit{
			Lower: FormatFloat(j.Joint.Lower),
			Upper: FormatFloat(j.Joint.Upper),
		}
	}
	return out
}

// MeshPaths lists the mesh files the document references, sorted and unique.
func MeshPaths(r *Robot) []string {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, l := range r.Links {
		for _, v := range l.Visuals {
			add(v.Geometry.Mesh.Filename)
		}
		for _, c := range l.Collisions {
			add(c.Geometry.Mesh.Filename)
		}
	}
	sort.Strings(paths)
	return paths
}
