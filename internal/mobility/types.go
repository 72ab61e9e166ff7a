package mobility

import "mobility-urdf/internal/mathutil"

// JointKind is the articulation tag decided when a record is parsed.
type JointKind int

const (
	JointFixed  JointKind = iota // root or immobile link; no axis
	JointHinge                   // rotation about an axis
	JointSlider                  // translation along an axis
	JointUnknown                 // unrecognized spelling; see Joint.Err
)

func (k JointKind) String() string {
	switch k {
	case JointFixed:
		return "fixed"
	case JointHinge:
		return "hinge"
	case JointSlider:
		return "slider"
	default:
		return "unknown"
	}
}

// Movable reports whether the kind carries an axis and limit.
func (k JointKind) Movable() bool {
	return k == JointHinge || k == JointSlider
}

// Axis is a joint axis in the asset's single global frame.
type Axis struct {
	Origin    mathutil.Vec3
	Direction mathutil.Vec3 // not necessarily unit length
}

// Limit holds raw joint bounds as authored: degrees for hinges, scene units for
// sliders. A and B are not ordered.
type Limit struct {
	A, B    float64
	NoLimit bool
	Rotates bool // slider also spins about its axis
}

// Joint is the tagged joint variant. Axis and Limit are only meaningful when
// Kind.Movable() and Err is nil.
//
// Err holds a record-level failure (UnknownJointKind or MissingAxisData) found
// while parsing. It is reported when the joint is classified, after the graph
// checks have passed.
type Joint struct {
	Kind  JointKind
	Raw   string // source spelling, "" when the key was absent
	Axis  Axis
	Limit Limit
	Err   error
}

// PartRef points a link at one part of the hierarchy.
type PartRef struct {
	ID   int
	Name string
}

// Link is one mobility record: a rigid body and the joint to its parent.
type Link struct {
	ID     int
	Parent int // -1 for the root
	Name   string
	Joint  Joint
	Parts  []PartRef
}
