package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planJSON = `{
	"key": "D minor",
	"tempo": 72,
	"sections": {
		"intro": {"chords": ["i", "iv"], "measures": 4, "melodic_contour": "descending"},
		"main_theme": {"chords": ["i", "V", "i"], "measures": 8, "melodic_contour": "arch"},
		"resolution": {"chords": ["V", "i"], "measures": 4, "melodic_contour": "descending"}
	}
}`

func TestStructuralPlanUnmarshalPreservesSectionOrder(t *testing.T) {
	var plan StructuralPlan
	require.NoError(t, json.Unmarshal([]byte(planJSON), &plan))

	assert.Equal(t, "D minor", plan.Key)
	assert.Equal(t, 72, plan.Tempo)
	require.Len(t, plan.Sections, 3)

	assert.Equal(t, "intro", plan.Sections[0].Name)
	assert.Equal(t, "main_theme", plan.Sections[1].Name)
	assert.Equal(t, "resolution", plan.Sections[2].Name)

	assert.Equal(t, []string{"i", "V", "i"}, plan.Sections[1].Chords)
	assert.Equal(t, 8, plan.Sections[1].Measures)
	assert.Equal(t, "arch", plan.Sections[1].MelodicContour)
}

func TestStructuralPlanRoundTrip(t *testing.T) {
	var plan StructuralPlan
	require.NoError(t, json.Unmarshal([]byte(planJSON), &plan))

	out, err := json.Marshal(&plan)
	require.NoError(t, err)

	var again StructuralPlan
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, plan, again)
}

func TestStructuralPlanUnmarshalRejectsBadSections(t *testing.T) {
	var plan StructuralPlan
	err := json.Unmarshal([]byte(`{"key":"D minor","tempo":70,"sections":[1,2]}`), &plan)
	assert.Error(t, err)
}

func TestStructuralPlanValidate(t *testing.T) {
	plan := &StructuralPlan{}
	assert.Error(t, plan.Validate())

	plan.Key = "D minor"
	assert.Error(t, plan.Validate())

	plan.Sections = []Section{{Name: "intro", Measures: 4}}
	assert.NoError(t, plan.Validate())
}

func TestFallbackPlanIsValid(t *testing.T) {
	plan := FallbackPlan()
	require.NoError(t, plan.Validate())

	assert.Equal(t, "D minor", plan.Key)
	assert.Equal(t, 70, plan.Tempo)
	require.Len(t, plan.Sections, 4)
	assert.Equal(t, "intro", plan.Sections[0].Name)
	assert.Equal(t, "resolution", plan.Sections[3].Name)

	total := 0
	for _, s := range plan.Sections {
		total += s.Measures
	}
	assert.Equal(t, 24, total)
}
