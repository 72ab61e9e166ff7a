package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"mobility-urdf/internal/convert"
	"mobility-urdf/internal/failure"
	"mobility-urdf/internal/kinematics"
	"mobility-urdf/internal/urdf"
)

func main() {
	dump := flag.Bool("dump", false, "Dump the full tree structure")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [-dump] <asset_dir>")
		os.Exit(2)
	}

	dir := flag.Arg(0)
	in, err := convert.LoadAsset(dir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Asset %s: %d parts, %d raw mesh parts\n", in.Name, in.Hierarchy.Len(), len(in.Hierarchy.ObjOwners()))
	if dups := in.Hierarchy.Duplicates(); len(dups) > 0 {
		fmt.Printf("  duplicate part ids: %v\n", dups)
	}

	res, err := convert.Convert(context.Background(), in, convert.Options{Validate: true})
	if err != nil {
		kind, _ := failure.KindOf(err)
		fmt.Printf("Conversion failed [%s]: %v\n", kind, err)
		os.Exit(1)
	}

	t := res.Tree
	fmt.Printf("Links: %d (%d connectors), Joints: %d\n", len(t.Links), t.Connectors(), len(t.Joints))
	for _, l := range t.Links {
		a := l.Anchor
		fmt.Printf("  %-22s anchor=(%.4f, %.4f, %.4f) visuals=%d\n", l.Name, a[0], a[1], a[2], len(l.Visuals))
		for _, v := range l.Visuals {
			fmt.Printf("    %s -> %s\n", v.Name, v.Mesh)
		}
	}
	for _, j := range t.Joints {
		printJoint(j)
	}
	fmt.Printf("Meshes: %d\n", len(res.MeshPaths))
	fmt.Printf("Mobility order: %v\n", res.Order)

	if *dump {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		cfg.Dump(t)
	}
}

func printJoint(j kinematics.TreeJoint) {
	cj := j.Joint
	fmt.Printf("  %-22s %-10s %s -> %s", j.Name, cj.Type, j.Parent, j.Child)
	if cj.Type != kinematics.Fixed {
		fmt.Printf(" origin=(%s) axis=(%s)", urdf.FormatVec(j.Origin), urdf.FormatVec(cj.Axis))
	}
	if cj.Bounded() {
		fmt.Printf(" limit=[%s, %s]", urdf.FormatFloat(cj.Lower), urdf.FormatFloat(cj.Upper))
	}
	fmt.Println()
}
