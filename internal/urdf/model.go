package urdf

import "encoding/xml"

// Robot is the robot-description document. Built once, encoded once.
type Robot struct {
	XMLName xml.Name `xml:"robot"`
	Name    string   `xml:"name,attr"`
	Links   []Link   `xml:"link"`
	Joints  []Joint  `xml:"joint"`
}

// Link holds one visual and one collision block per owned part.
type Link struct {
	Name       string      `xml:"name,attr"`
	Visuals    []Visual    `xml:"visual"`
	Collisions []Collision `xml:"collision"`
}

type Visual struct {
	Name     string   `xml:"name,attr,omitempty"`
	Origin   Origin   `xml:"origin"`
	Geometry Geometry `xml:"geometry"`
}

type Collision struct {
	Origin   Origin   `xml:"origin"`
	Geometry Geometry `xml:"geometry"`
}

// Origin is a pose: "x y z" translation and optional "r p y" rotation.
type Origin struct {
	RPY string `xml:"rpy,attr,omitempty"`
	XYZ string `xml:"xyz,attr"`
}

type Geometry struct {
	Mesh Mesh `xml:"mesh"`
}

type Mesh struct {
	Filename string `xml:"filename,attr"`
}

// Joint references exactly one parent and one child link by name.
type Joint struct {
	Name   string  `xml:"name,attr"`
	Type   string  `xml:"type,attr"`
	Limit  *Limit  `xml:"limit"`
	Origin *Origin `xml:"origin"`
	Axis   *Axis   `xml:"axis"`
	Parent LinkRef `xml:"parent"`
	Child  LinkRef `xml:"child"`
}

type Limit struct {
	Lower string `xml:"lower,attr"`
	Upper string `xml:"upper,attr"`
}

type Axis struct {
	XYZ string `xml:"xyz,attr"`
}

type LinkRef struct {
	Link string `xml:"link,attr"`
}

// Link returns the link with the given name.
func (r *Robot) Link(name string) (Link, bool) {
	for _, l := range r.Links {
		if l.Name == name {
			return l, true
		}
	}
	return Link{}, false
}

// Joint returns the joint with the given name.
func (r *Robot) Joint(name string) (Joint, bool) {
	for _, j := range r.Joints {
		if j.Name == name {
			return j, true
		}
	}
	return Joint{}, false
}
