package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderDropsUnknownAndDuplicates(t *testing.T) {
	o := NewOrder(SectionSkills, "hobbies", SectionSummary, SectionSkills)
	assert.Equal(t, []SectionKey{SectionSkills, SectionSummary}, o.Keys())
	assert.False(t, o.IsPermutation())
	assert.Equal(t, []SectionKey{SectionExperience, SectionProjects, SectionEducation, SectionContact}, o.Missing())
}

func TestDefaultOrderIsPermutation(t *testing.T) {
	o := DefaultOrder()
	assert.True(t, o.IsPermutation())
	assert.Equal(t, "summary,experience,projects,skills,education,contact", o.String())
}

func TestOrderMove(t *testing.T) {
	o := DefaultOrder()
	moved, err := o.Move(5, 0)
	require.NoError(t, err)
	assert.Equal(t, SectionContact, moved.Keys()[0])
	assert.Equal(t, SectionSummary, moved.Keys()[1])
	// 原顺序不受影响
	assert.Equal(t, SectionSummary, o.Keys()[0])

	_, err = o.Move(0, 6)
	assert.Error(t, err)
	_, err = o.Move(-1, 0)
	assert.Error(t, err)
}

func TestOrderMoveUpDownAtEdges(t *testing.T) {
	o := DefaultOrder()
	assert.Equal(t, o.Keys(), o.MoveUp(SectionSummary).Keys())
	assert.Equal(t, o.Keys(), o.MoveDown(SectionContact).Keys())
	assert.Equal(t, o.Keys(), o.MoveDown("hobbies").Keys())

	up := o.MoveUp(SectionExperience)
	assert.Equal(t, 0, up.Index(SectionExperience))
	assert.Equal(t, 1, up.Index(SectionSummary))
	assert.Equal(t, o.Keys(), up.MoveDown(SectionExperience).Keys())
}

func TestOrderJSON(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`["Skills"," summary ","bogus","skills"]`), &o))
	assert.Equal(t, []SectionKey{SectionSkills, SectionSummary}, o.Keys())

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `["skills","summary"]`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &o))
}

func TestOrderKeysIsCopy(t *testing.T) {
	o := DefaultOrder()
	keys := o.Keys()
	keys[0] = SectionContact
	assert.Equal(t, SectionSummary, o.Keys()[0])
}
