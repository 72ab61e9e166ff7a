package urdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobility-urdf/internal/failure"
)

func TestValidateEmittedDocument(t *testing.T) {
	doc, err := Marshal(FromTree(sampleTree()))
	require.NoError(t, err)
	assert.NoError(t, ValidateBytes(doc))
}

func TestValidateRejects(t *testing.T) {
	tests := map[string]string{
		"unknown joint type": `<?xml version="1.0"?>
<robot name="r">
  <link name="base"/>
  <link name="link_0"/>
  <joint name="joint_0" type="ball">
    <parent link="base"/>
    <child link="link_0"/>
  </joint>
</robot>`,
		"missing child": `<?xml version="1.0"?>
<robot name="r">
  <link name="base"/>
  <joint name="joint_0" type="fixed">
    <parent link="base"/>
  </joint>
</robot>`,
		"axis out of order": `<?xml version="1.0"?>
<robot name="r">
  <link name="base"/>
  <link name="link_0"/>
  <joint name="joint_0" type="continuous">
    <axis xyz="0 0 1"/>
    <origin xyz="0 0 0"/>
    <parent link="base"/>
    <child link="link_0"/>
  </joint>
</robot>`,
		"dangling child": `<?xml version="1.0"?>
<robot name="r">
  <link name="base"/>
  <joint name="joint_0" type="fixed">
    <parent link="base"/>
    <child link="link_0"/>
  </joint>
</robot>`,
		"duplicate link": `<?xml version="1.0"?>
<robot name="r">
  <link name="base"/>
  <link name="base"/>
</robot>`,
		"short vector": `<?xml version="1.0"?>
<robot name="r">
  <link name="base"/>
  <link name="link_0"/>
  <joint name="joint_0" type="continuous">
    <axis xyz="0 1"/>
    <parent link="base"/>
    <child link="link_0"/>
  </joint>
</robot>`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateBytes([]byte(doc))
			require.Error(t, err)
			assert.True(t, failure.Is(err, failure.SchemaViolation), "got %v", err)
		})
	}
}
