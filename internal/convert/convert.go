package convert

import (
	"context"
	"fmt"

	"mobility-urdf/internal/failure"
	"mobility-urdf/internal/hierarchy"
	"mobility-urdf/internal/kinematics"
	"mobility-urdf/internal/mobility"
	"mobility-urdf/internal/urdf"
)

// Input is one asset's annotations: the part hierarchy and the raw mobility
// record list.
type Input struct {
	Name      string
	Hierarchy *hierarchy.Table
	Mobility  []byte
}

// Options tune the emitted document.
type Options struct {
	Mesh     kinematics.Options
	Validate bool // check the encoded document against the URDF schema
}

// Result is a converted asset. Document is the complete encoded URDF.
// Order lists mobility link ids parent-before-child, breadth-first from the
// root.
type Result struct {
	Name      string
	Tree      *kinematics.Tree
	Robot     *urdf.Robot
	Document  []byte
	MeshPaths []string
	Order     []int
}

// Links counts emitted links, base included.
func (r *Result) Links() int { return len(r.Robot.Links) }

// Joints counts emitted joints.
func (r *Result) Joints() int { return len(r.Robot.Joints) }

// Convert runs the whole pipeline for one asset. It returns either a complete
// document or the first failure; nothing partial.
func Convert(ctx context.Context, in Input, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.Hierarchy == nil {
		return nil, failure.Graph(failure.InputFormat, "asset %s has no part hierarchy", in.Name)
	}

	links, err := mobility.Parse(in.Mobility)
	if err != nil {
		return nil, err
	}
	g, err := mobility.Build(links)
	if err != nil {
		return nil, err
	}
	root, err := mobility.Validate(g)
	if err != nil {
		return nil, err
	}

	tree, err := kinematics.BuildTree(in.Name, g, root, in.Hierarchy, opts.Mesh)
	if err != nil {
		return nil, err
	}

	robot := urdf.FromTree(tree)
	doc, err := urdf.Marshal(robot)
	if err != nil {
		return nil, fmt.Errorf("convert: encode %s: %w", in.Name, err)
	}
	if opts.Validate {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := urdf.ValidateBytes(doc); err != nil {
			return nil, err
		}
	}

	order := mobility.Order(g, root)
	ids := make([]int, len(order))
	for i, n := range order {
		ids[i] = g.Links[n].ID
	}

	return &Result{
		Name:      in.Name,
		Tree:      tree,
		Robot:     robot,
		Document:  doc,
		MeshPaths: urdf.MeshPaths(robot),
		Order:     ids,
	}, nil
}
