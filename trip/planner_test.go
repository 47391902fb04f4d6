package trip

import (
	"testing"

	"voyago/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTravelGroup(t *testing.T) {
	tests := []struct {
		selector string
		want     models.TravelGroup
	}{
		{"solo", models.TravelGroup{Size: 1, AccessibilityType: "none"}},
		{"couple", models.TravelGroup{Size: 2, AccessibilityType: "none"}},
		{"family-young", models.TravelGroup{Size: 4, HasChildren: true, AccessibilityType: "none"}},
		{"family", models.TravelGroup{Size: 4, AccessibilityType: "none"}},
		{"seniors", models.TravelGroup{Size: 2, HasElderly: true, AccessibilityType: "none"}},
		{"friends", models.TravelGroup{Size: 5, AccessibilityType: "none"}},
		{"business", models.TravelGroup{Size: 1, AccessibilityType: "none"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTravelGroup(tt.selector, ""), tt.selector)
	}
}

func TestParseTravelGroupAccessibility(t *testing.T) {
	wheelchair := ParseTravelGroup("seniors", "wheelchair")
	assert.True(t, wheelchair.HasMobilityIssues)
	assert.Equal(t, "wheelchair", wheelchair.AccessibilityType)

	mobility := ParseTravelGroup("couple", "mobility")
	assert.True(t, mobility.HasMobilityIssues)
	assert.Equal(t, "mobility", mobility.AccessibilityType)

	visual := ParseTravelGroup("solo", "visual")
	assert.False(t, visual.HasMobilityIssues, "other needs are recorded without the mobility flag")
	assert.Equal(t, "visual", visual.AccessibilityType)
}

func TestParseTravelGroupNormalizesInput(t *testing.T) {
	group := ParseTravelGroup("  Seniors ", " Wheelchair ")
	assert.Equal(t, 2, group.Size)
	assert.True(t, group.HasElderly)
	assert.True(t, group.HasMobilityIssues)
}

func TestParseTravelGroupUnknownFallsBackToSolo(t *testing.T) {
	assert.Equal(t, 1, ParseTravelGroup("caravan", "").Size)
	assert.Equal(t, 1, ParseTravelGroup("", "").Size)
}

func TestCategorySearchesCoverThemeCategories(t *testing.T) {
	var cats []string
	for _, s := range categorySearches {
		cats = append(cats, s.category)
	}
	assert.ElementsMatch(t,
		[]string{"attraction", "restaurant", "temple", "monument", "museum", "park", "market"},
		cats)
}

func TestTagCategoryPutsSearchCategoryFirst(t *testing.T) {
	tagged := tagCategory(models.CandidatePlace{Categories: []string{"point of interest", "Temple"}}, "temple")
	assert.Equal(t, []string{"temple", "point of interest"}, tagged.Categories)

	bare := tagCategory(models.CandidatePlace{}, "museum")
	assert.Equal(t, []string{"museum"}, bare.Categories)

	already := tagCategory(models.CandidatePlace{Categories: []string{"park", "garden"}}, "park")
	assert.Equal(t, []string{"park", "garden"}, already.Categories)
}

func TestBoostInterests(t *testing.T) {
	prefs := models.DefaultPreferences()
	prefs.Interests["food"] = 0.9

	boostInterests(&prefs, []string{"Culture", "food", " surfing ", ""})

	assert.Equal(t, 0.8, prefs.Interests["culture"], "requested interests are raised")
	assert.Equal(t, 0.9, prefs.Interests["food"], "already strong interests keep their weight")
	assert.Equal(t, 0.8, prefs.Interests["surfing"], "new interests are added")
	_, hasEmpty := prefs.Interests[""]
	require.False(t, hasEmpty)
}
