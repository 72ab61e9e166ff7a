package mobility

import (
	"bytes"
	"encoding/json"

	"mobility-urdf/internal/failure"
	"mobility-urdf/internal/mathutil"
)

// rawLink matches one record of mobility_v2.json / the "mobility" list of
// mobility_v3.json.
type rawLink struct {
	ID        *int            `json:"id"`
	Parent    *int            `json:"parent"`
	Name      string          `json:"name"`
	Joint     *string         `json:"joint"`
	JointData json.RawMessage `json:"jointData"`
	Parts     []rawPart       `json:"parts"`
}

type rawPart struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type rawJointData struct {
	Axis  *rawAxis  `json:"axis"`
	Limit *rawLimit `json:"limit"`
}

// Vector members may be null in v2 annotations; they read as 0.
type rawAxis struct {
	Origin    []*float64 `json:"origin"`
	Direction []*float64 `json:"direction"`
}

type rawLimit struct {
	A       float64 `json:"a"`
	B       float64 `json:"b"`
	NoLimit bool    `json:"noLimit"`
	Rotates bool    `json:"rotates"`
}

// fixedSpellings are joint strings PartNet-Mobility uses for immobile links.
var fixedSpellings = map[string]bool{
	"":       true,
	"fixed":  true,
	"free":   true,
	"heavy":  true,
	"static": true,
}

// Parse decodes a list of mobility records.
func Parse(data []byte) ([]Link, error) {
	var raws []rawLink
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, failure.Wrap(failure.InputFormat, err, "mobility")
	}
	return fromRaw(raws)
}

func fromRaw(raws []rawLink) ([]Link, error) {
	links := make([]Link, 0, len(raws))
	for i, r := range raws {
		link, err := r.link(i)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

func (r rawLink) link(pos int) (Link, error) {
	if r.ID == nil {
		return Link{}, failure.Graph(failure.InputFormat, "mobility record %d has no id", pos)
	}
	id := *r.ID
	if r.Parent == nil {
		return Link{}, failure.New(failure.InputFormat, id, "record has no parent")
	}

	link := Link{ID: id, Parent: *r.Parent, Name: r.Name}
	for _, p := range r.Parts {
		link.Parts = append(link.Parts, PartRef{ID: p.ID, Name: p.Name})
	}

	joint, err := r.joint(id)
	if err != nil {
		return Link{}, err
	}
	link.Joint = joint
	return link, nil
}

func (r rawLink) joint(id int) (Joint, error) {
	var j Joint
	if r.Joint != nil {
		j.Raw = *r.Joint
	}
	switch {
	case j.Raw == "hinge":
		j.Kind = JointHinge
	case j.Raw == "slider":
		j.Kind = JointSlider
	case fixedSpellings[j.Raw]:
		j.Kind = JointFixed
		return j, nil
	default:
		j.Kind = JointUnknown
		j.Err = failure.New(failure.UnknownJointKind, id, "joint %q", j.Raw)
		return j, nil
	}

	if isEmptyObject(r.JointData) {
		return j.missing(id, "%s has no jointData", j.Kind), nil
	}
	var jd rawJointData
	if err := json.Unmarshal(r.JointData, &jd); err != nil {
		return Joint{}, &failure.Error{Kind: failure.InputFormat, LinkID: id, Cause: "jointData", Err: err}
	}
	if jd.Axis == nil {
		return j.missing(id, "%s has no axis", j.Kind), nil
	}
	if jd.Limit == nil {
		return j.missing(id, "%s has no limit", j.Kind), nil
	}

	origin, ok := vec3(jd.Axis.Origin)
	if !ok {
		return j.missing(id, "axis origin needs 3 components, got %d", len(jd.Axis.Origin)), nil
	}
	dir, ok := vec3(jd.Axis.Direction)
	if !ok {
		return j.missing(id, "axis direction needs 3 components, got %d", len(jd.Axis.Direction)), nil
	}

	j.Axis = Axis{Origin: origin, Direction: dir}
	j.Limit = Limit{A: jd.Limit.A, B: jd.Limit.B, NoLimit: jd.Limit.NoLimit, Rotates: jd.Limit.Rotates}
	return j, nil
}

// missing keeps the joint's kind so graph validation still sees a movable
// joint, and defers the MissingAxisData failure to classification.
func (j Joint) missing(id int, format string, args ...any) Joint {
	j.Err = failure.New(failure.MissingAxisData, id, format, args...)
	return j
}
