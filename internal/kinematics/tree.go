package kinematics

import (
	"fmt"
	"path"
	"strconv"

	"mobility-urdf/internal/failure"
	"mobility-urdf/internal/hierarchy"
	"mobility-urdf/internal/mathutil"
	"mobility-urdf/internal/mobility"
)

// BaseLink is the synthetic immobile link the root is fixed to.
const BaseLink = "base"

const connectorSuffix = "_connector"

// Default mesh location, relative to the asset directory.
const (
	DefaultMeshDir = "gltf"
	DefaultMeshExt = "gltf"
)

// Options control how part meshes are referenced.
type Options struct {
	MeshDir string
	MeshExt string
}

func (o Options) withDefaults() Options {
	if o.MeshDir == "" {
		o.MeshDir = DefaultMeshDir
	}
	if o.MeshExt == "" {
		o.MeshExt = DefaultMeshExt
	}
	return o
}

// Visual is one part's geometry attached to a link. The same block is used
// for visual and collision geometry.
type Visual struct {
	Name   string // "{partName}-{partID}"
	Origin mathutil.Vec3
	Mesh   string // "{MeshDir}/{id}-{name}.{MeshExt}"
}

// TreeLink is a rigid body of the canonical tree.
type TreeLink struct {
	Name      string
	LinkID    int // mobility id; for connectors, the id of the link they serve
	Connector bool
	Anchor    mathutil.Vec3
	Visuals   []Visual
}

// TreeJoint connects Parent to Child by name.
type TreeJoint struct {
	Name      string
	LinkID    int
	Connector bool
	Joint     CanonicalJoint
	Origin    mathutil.Vec3 // joint frame, relative to the parent's anchor
	Parent    string
	Child     string
}

// Tree is the validated, offset-annotated, classified kinematic tree. Links
// and joints are in record order, connectors last.
type Tree struct {
	Name   string
	Links  []TreeLink
	Joints []TreeJoint
}

// LinkName returns the element name of a mobility link.
func LinkName(id int) string { return "link_" + strconv.Itoa(id) }

// JointName returns the element name of the joint above a mobility link.
func JointName(id int) string { return "joint_" + strconv.Itoa(id) }

// BuildTree annotates a validated graph with offsets and canonical joints and
// expands rotating prismatic joints. root is the index returned by
// mobility.Validate.
func BuildTree(name string, g *mobility.Graph, root int, parts *hierarchy.Table, opts Options) (*Tree, error) {
	opts = opts.withDefaults()
	offs := ComputeOffsets(g)

	t := &Tree{
		Name:   name,
		Links:  make([]TreeLink, 0, g.Len()),
		Joints: make([]TreeJoint, 0, g.Len()),
	}

	for i, l := range g.Links {
		visuals, err := visualsFor(l, offs[i].Visual, parts, opts)
		if err != nil {
			return nil, err
		}
		t.Links = append(t.Links, TreeLink{
			Name:    LinkName(l.ID),
			LinkID:  l.ID,
			Anchor:  offs[i].Anchor,
			Visuals: visuals,
		})
	}

	for i, l := range g.Links {
		cj, err := Classify(l, i == root)
		if err != nil {
			return nil, err
		}
		parent := BaseLink
		origin := offs[i].Joint
		if cj.Type == Fixed {
			origin = mathutil.Vec3{}
		} else {
			parent = LinkName(g.Links[g.Parents[i]].ID)
		}
		t.Joints = append(t.Joints, TreeJoint{
			Name:   JointName(l.ID),
			LinkID: l.ID,
			Joint:  cj,
			Origin: origin,
			Parent: parent,
			Child:  LinkName(l.ID),
		})
	}

	ExpandConnectors(t)
	return t, nil
}

func visualsFor(l mobility.Link, offset mathutil.Vec3, parts *hierarchy.Table, opts Options) ([]Visual, error) {
	visuals := make([]Visual, 0, len(l.Parts))
	for _, p := range l.Parts {
		qualified, ok := parts.QualifiedName(p.ID)
		if !ok {
			return nil, failure.New(failure.MissingPart, l.ID, "part %d (%s) is not in the hierarchy", p.ID, p.Name)
		}
		visuals = append(visuals, Visual{
			Name:   fmt.Sprintf("%s-%d", p.Name, p.ID),
			Origin: offset,
			Mesh:   path.Join(opts.MeshDir, qualified+"."+opts.MeshExt),
		})
	}
	return visuals, nil
}

// ExpandConnectors splits every rotating prismatic joint into the prismatic
// joint (parent -> connector) and a continuous joint (connector -> link) on the
// same axis. The coupling between slide and spin (screw pitch) is not modeled.
// Connectors already present are left alone.
func ExpandConnectors(t *Tree) {
	have := make(map[string]bool)
	for _, l := range t.Links {
		if l.Connector {
			have[l.Name] = true
		}
	}

	n := len(t.Joints)
	for i := 0; i < n; i++ {
		j := &t.Joints[i]
		if j.Connector || j.Joint.Type != Prismatic || !j.Joint.Rotates {
			continue
		}
		connector := LinkName(j.LinkID) + connectorSuffix
		if have[connector] {
			continue
		}
		have[connector] = true

		var anchor mathutil.Vec3
		for _, l := range t.Links {
			if l.Name == j.Child {
				anchor = l.Anchor
				break
			}
		}

		child := j.Child
		j.Child = connector
		t.Links = append(t.Links, TreeLink{
			Name:      connector,
			LinkID:    j.LinkID,
			Connector: true,
			Anchor:    anchor,
		})
		t.Joints = append(t.Joints, TreeJoint{
			Name:      JointName(j.LinkID) + connectorSuffix,
			LinkID:    j.LinkID,
			Connector: true,
			Joint:     CanonicalJoint{Type: Continuous, Axis: j.Joint.Axis},
			Parent:    connector,
			Child:     child,
		})
	}
}

// Connectors counts synthetic connector links.
func (t *Tree) Connectors() int {
	n := 0
	for _, l := range t.Links {
		if l.Connector {
			n++
		}
	}
	return n
}
