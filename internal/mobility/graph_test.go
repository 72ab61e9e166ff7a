package mobility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobility-urdf/internal/failure"
	"mobility-urdf/internal/mathutil"
)

func fixed(id, parent int) Link {
	return Link{ID: id, Parent: parent, Joint: Joint{Kind: JointFixed}}
}

func hinge(id, parent int) Link {
	return Link{ID: id, Parent: parent, Joint: Joint{
		Kind:  JointHinge,
		Raw:   "hinge",
		Axis:  Axis{Direction: mathutil.Vec3{0, 0, 1}},
		Limit: Limit{A: 0, B: 90},
	}}
}

func slider(id, parent int) Link {
	l := hinge(id, parent)
	l.Joint.Kind = JointSlider
	l.Joint.Raw = "slider"
	return l
}

func TestBuildAdjacency(t *testing.T) {
	g, err := Build([]Link{fixed(10, -1), hinge(11, 10), slider(12, 10), hinge(13, 11)})
	require.NoError(t, err)

	assert.Equal(t, 4, g.Len())
	assert.Equal(t, []int{0}, g.Roots)
	assert.Equal(t, []int{-1, 0, 0, 1}, g.Parents)
	assert.Equal(t, []int{1, 2}, g.Children[0])
	assert.Equal(t, []int{3}, g.Children[1])
	assert.Empty(t, g.Children[2])

	i, ok := g.Index(13)
	assert.True(t, ok)
	assert.Equal(t, 3, i)
	assert.Equal(t, 13, g.Link(i).ID)
}

func TestBuildMalformed(t *testing.T) {
	_, err := Build([]Link{fixed(0, -1), hinge(1, 7)})
	assert.True(t, failure.Is(err, failure.MalformedGraph))
	id, _ := failure.LinkOf(err)
	assert.Equal(t, 1, id)

	_, err = Build([]Link{fixed(0, -1), hinge(0, 0)})
	assert.True(t, failure.Is(err, failure.MalformedGraph))
}

func TestValidateAcceptsTree(t *testing.T) {
	g, err := Build([]Link{hinge(1, 0), fixed(0, -1), slider(2, 1), hinge(3, 0)})
	require.NoError(t, err)

	root, err := Validate(g)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Link(root).ID)

	order := Order(g, root)
	var ids []int
	for _, i := range order {
		ids = append(ids, g.Link(i).ID)
	}
	assert.Equal(t, []int{0, 1, 3, 2}, ids)
}

func TestValidateRootCount(t *testing.T) {
	tests := map[string][]Link{
		"no root":   {hinge(1, 2), hinge(2, 1)},
		"two roots": {fixed(0, -1), fixed(5, -1), hinge(1, 0)},
	}
	for name, links := range tests {
		t.Run(name, func(t *testing.T) {
			g, err := Build(links)
			require.NoError(t, err)
			_, err = Validate(g)
			assert.True(t, failure.Is(err, failure.MultipleRoots), "got %v", err)
		})
	}
}

func TestValidateCycleTerminates(t *testing.T) {
	// 2 and 3 point at each other: a loop detached from the root.
	g, err := Build([]Link{fixed(0, -1), hinge(1, 0), hinge(2, 3), hinge(3, 2)})
	require.NoError(t, err)

	_, err = Validate(g)
	assert.True(t, failure.Is(err, failure.CyclicGraph), "got %v", err)

	// Self loop.
	g, err = Build([]Link{fixed(0, -1), hinge(1, 1)})
	require.NoError(t, err)
	_, err = Validate(g)
	assert.True(t, failure.Is(err, failure.CyclicGraph))
}

func TestValidateJointRoles(t *testing.T) {
	g, err := Build([]Link{hinge(0, -1), hinge(1, 0)})
	require.NoError(t, err)
	_, err = Validate(g)
	assert.True(t, failure.Is(err, failure.InvalidRootJoint))

	g, err = Build([]Link{fixed(0, -1), hinge(1, 0), fixed(2, 1)})
	require.NoError(t, err)
	_, err = Validate(g)
	assert.True(t, failure.Is(err, failure.InvalidChildJoint))
	id, _ := failure.LinkOf(err)
	assert.Equal(t, 2, id)
}

func TestValidateCycleBeforeJointRoles(t *testing.T) {
	// The root is also a hinge, but the loop must be reported first.
	g, err := Build([]Link{hinge(0, -1), hinge(1, 2), hinge(2, 1)})
	require.NoError(t, err)
	_, err = Validate(g)
	assert.True(t, failure.Is(err, failure.CyclicGraph))
}

func TestValidateGraphChecksPrecedeJointFailures(t *testing.T) {
	links, err := Parse([]byte(`[{"id": 0, "parent": -1}, {"id": 1, "parent": -1, "joint": "spring"}]`))
	require.NoError(t, err)
	g, err := Build(links)
	require.NoError(t, err)
	_, err = Validate(g)
	assert.True(t, failure.Is(err, failure.MultipleRoots), "got %v", err)

	links, err = Parse([]byte(`[{"id": 0, "parent": -1}, {"id": 1, "parent": 2, "joint": "hinge"},
		{"id": 2, "parent": 1, "joint": "spring"}]`))
	require.NoError(t, err)
	g, err = Build(links)
	require.NoError(t, err)
	_, err = Validate(g)
	assert.True(t, failure.Is(err, failure.CyclicGraph), "got %v", err)
}

func TestValidateLeavesUnknownJointToClassifier(t *testing.T) {
	links, err := Parse([]byte(`[{"id": 0, "parent": -1}, {"id": 1, "parent": 0, "joint": "spring"}]`))
	require.NoError(t, err)
	g, err := Build(links)
	require.NoError(t, err)
	root, err := Validate(g)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Links[root].ID)
	assert.True(t, failure.Is(g.Links[1].Joint.Err, failure.UnknownJointKind))
}
