package urdf

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/beevik/etree"
)

const indent = 2

// Encode writes the document with an XML declaration, two-space indentation
// and self-closing empty elements. Output depends only on r.
func Encode(w io.Writer, r *Robot) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)

	root := doc.CreateElement("robot")
	root.CreateAttr("name", r.Name)
	for _, l := range r.Links {
		encodeLink(root, l)
	}
	for _, j := range r.Joints {
		encodeJoint(root, j)
	}

	doc.Indent(indent)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("urdf: write %s: %w", r.Name, err)
	}
	return nil
}

// Marshal encodes the document into memory.
func Marshal(r *Robot) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a document produced by Encode.
func Decode(data []byte) (*Robot, error) {
	var r Robot
	if err := xml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("urdf: decode: %w", err)
	}
	return &r, nil
}

// Visual and collision blocks alternate per part, visual first.
func encodeLink(parent *etree.Element, l Link) {
	el := parent.CreateElement("link")
	el.CreateAttr("name", l.Name)

	n := max(len(l.Visuals), len(l.Collisions))
	for i := 0; i < n; i++ {
		if i < len(l.Visuals) {
			v := l.Visuals[i]
			ve := el.CreateElement("visual")
			if v.Name != "" {
				ve.CreateAttr("name", v.Name)
			}
			encodeOrigin(ve, v.Origin)
			encodeGeometry(ve, v.Geometry)
		}
		if i < len(l.Collisions) {
			c := l.Collisions[i]
			ce := el.CreateElement("collision")
			encodeOrigin(ce, c.Origin)
			encodeGeometry(ce, c.Geometry)
		}
	}
}

func encodeJoint(parent *etree.Element, j Joint) {
	el := parent.CreateElement("joint")
	el.CreateAttr("name", j.Name)
	el.CreateAttr("type", j.Type)

	if j.Limit != nil {
		le := el.CreateElement("limit")
		le.CreateAttr("lower", j.Limit.Lower)
		le.CreateAttr("upper", j.Limit.Upper)
	}
	if j.Origin != nil {
		encodeOrigin(el, *j.Origin)
	}
	if j.Axis != nil {
		el.CreateElement("axis").CreateAttr("xyz", j.Axis.XYZ)
	}
	el.CreateElement("parent").CreateAttr("link", j.Parent.Link)
	el.CreateElement("child").CreateAttr("link", j.Child.Link)
}

func encodeOrigin(parent *etree.Element, o Origin) {
	el := parent.CreateElement("origin")
	if o.RPY != "" {
		el.CreateAttr("rpy", o.RPY)
	}
	el.CreateAttr("xyz", o.XYZ)
}

func encodeGeometry(parent *etree.Element, g Geometry) {
	parent.CreateElement("geometry").CreateElement("mesh").CreateAttr("filename", g.Mesh.Filename)
}
