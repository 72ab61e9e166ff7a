package kinematics

import (
	"mobility-urdf/internal/failure"
	"mobility-urdf/internal/mathutil"
	"mobility-urdf/internal/mobility"
)

// JointType is the canonical joint classification.
type JointType int

const (
	Fixed JointType = iota
	Revolute
	Continuous
	Prismatic
)

func (t JointType) String() string {
	switch t {
	case Fixed:
		return "fixed"
	case Revolute:
		return "revolute"
	case Continuous:
		return "continuous"
	case Prismatic:
		return "prismatic"
	default:
		return "unknown"
	}
}

// CanonicalJoint is a classified joint. Axis is unit length for every type
// except Fixed. Lower <= Upper for Revolute (radians) and Prismatic.
type CanonicalJoint struct {
	Type    JointType
	Axis    mathutil.Vec3
	Lower   float64
	Upper   float64
	Rotates bool // Prismatic only: also spins about Axis
}

// Bounded reports whether the joint carries a limit.
func (j CanonicalJoint) Bounded() bool {
	return j.Type == Revolute || j.Type == Prismatic
}

// Canonicalize orders the bounds ascending, flipping the axis in lockstep so
// the sense of motion is kept, and normalizes the axis. Idempotent.
func Canonicalize(j CanonicalJoint) CanonicalJoint {
	if j.Type == Fixed {
		return j
	}
	if j.Bounded() && j.Lower > j.Upper {
		j.Lower, j.Upper = -j.Lower, -j.Upper
		j.Axis = j.Axis.Neg()
	}
	j.Axis = j.Axis.Normalize()
	return j
}

// Classify maps a link's tagged joint to its canonical form. A failure deferred
// at parse time is returned before anything else is looked at.
func Classify(l mobility.Link, isRoot bool) (CanonicalJoint, error) {
	if l.Joint.Err != nil {
		return CanonicalJoint{}, l.Joint.Err
	}
	switch l.Joint.Kind {
	case mobility.JointFixed:
		if !isRoot {
			return CanonicalJoint{}, failure.New(failure.InvalidRootJoint, l.ID, "fixed joint on a non-root link")
		}
		return CanonicalJoint{Type: Fixed}, nil

	case mobility.JointHinge:
		dir, err := direction(l)
		if err != nil {
			return CanonicalJoint{}, err
		}
		lim := l.Joint.Limit
		if lim.NoLimit {
			return Canonicalize(CanonicalJoint{Type: Continuous, Axis: dir}), nil
		}
		j := Canonicalize(CanonicalJoint{Type: Revolute, Axis: dir, Lower: lim.A, Upper: lim.B})
		j.Lower = mathutil.Deg2Rad(j.Lower)
		j.Upper = mathutil.Deg2Rad(j.Upper)
		return j, nil

	case mobility.JointSlider:
		lim := l.Joint.Limit
		if lim.NoLimit {
			return CanonicalJoint{}, failure.New(failure.UnboundedSlider, l.ID, "slider must have limit")
		}
		dir, err := direction(l)
		if err != nil {
			return CanonicalJoint{}, err
		}
		return Canonicalize(CanonicalJoint{
			Type:    Prismatic,
			Axis:    dir,
			Lower:   lim.A,
			Upper:   lim.B,
			Rotates: lim.Rotates,
		}), nil

	default:
		return CanonicalJoint{}, failure.New(failure.UnknownJointKind, l.ID, "joint %q", l.Joint.Raw)
	}
}

func direction(l mobility.Link) (mathutil.Vec3, error) {
	d := l.Joint.Axis.Direction
	if d.IsZero() {
		return d, failure.New(failure.MissingAxisData, l.ID, "axis direction has zero length")
	}
	return d, nil
}
