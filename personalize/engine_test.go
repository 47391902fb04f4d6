package personalize

import (
	"fmt"
	"testing"

	"voyago/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrefs() models.PreferenceVector {
	return models.DefaultPreferences()
}

func testPlace() models.CandidatePlace {
	return models.CandidatePlace{
		ID:                "p1",
		Name:              "City Museum",
		Categories:        []string{"culture", "history"},
		EstimatedCost:     400,
		EstimatedDuration: 120,
	}
}

func TestScorePlaceBounds(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	eco := 10.0
	places := []models.CandidatePlace{
		testPlace(),
		{},
		{Name: "Luxury Spa", EstimatedCost: 9000, EstimatedDuration: 600},
		{Name: "Quick Stop", EstimatedCost: 50, EstimatedDuration: 10, Categories: []string{"unknown-category"}},
		{Name: "Eco Lodge", SustainabilityScore: &eco, EstimatedCost: 300, EstimatedDuration: 60},
	}

	prefs := testPrefs()
	prefs.Interests["sustainability"] = 1.0

	for _, p := range places {
		res := engine.ScorePlace(prefs, p)
		assert.GreaterOrEqual(t, res.FinalScore, 0.0)
		assert.LessOrEqual(t, res.FinalScore, 1.0)
		assert.LessOrEqual(t, res.Breakdown.SustainabilityMatch, 1.0)
	}
}

func TestScorePlaceDeterministic(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	prefs := testPrefs()
	place := testPlace()

	first := engine.ScorePlace(prefs, place)
	second := engine.ScorePlace(prefs, place)
	assert.Equal(t, first, second)
}

func TestBudgetMatchScenarios(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	tests := []struct {
		name   string
		level  string
		cost   float64
		expect float64
	}{
		{"above budget band", models.BudgetLow, 3000, 0.4},
		{"within budget band", models.BudgetLow, 300, 1.0},
		{"below mid-range band", models.BudgetMid, 100, 0.8},
		{"within luxury band", models.BudgetHigh, 5000, 1.0},
		{"unknown cost", models.BudgetLow, 0, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := testPrefs()
			prefs.BudgetLevel = tt.level
			place := testPlace()
			place.EstimatedCost = tt.cost
			res := engine.ScorePlace(prefs, place)
			assert.Equal(t, tt.expect, res.Breakdown.BudgetMatch)
		})
	}
}

func TestAccessibilityPenalties(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	prefs := testPrefs()
	prefs.Accessibility.WheelchairFriendly = true

	place := testPlace()
	place.WheelchairAccessible = false
	res := engine.ScorePlace(prefs, place)
	assert.InDelta(t, 0.3, res.Breakdown.AccessibilityMatch, 1e-9)

	// Both penalties compound multiplicatively.
	prefs.Accessibility.DietaryRestrictions = []string{"vegan"}
	res = engine.ScorePlace(prefs, place)
	assert.InDelta(t, 0.3*0.7, res.Breakdown.AccessibilityMatch, 1e-9)

	// A supported dietary option removes the dietary penalty.
	place.DietaryOptions = []string{"Vegan"}
	place.WheelchairAccessible = true
	res = engine.ScorePlace(prefs, place)
	assert.InDelta(t, 1.0, res.Breakdown.AccessibilityMatch, 1e-9)
}

func TestNoveltyLowersScore(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	prefs := testPrefs()
	prefs.VisitedPlaces = []models.VisitedPlace{{PlaceName: "City Museum"}}

	visited := testPlace()
	fresh := testPlace()
	fresh.Name = "New Gallery"

	visitedScore := engine.ScorePlace(prefs, visited)
	freshScore := engine.ScorePlace(prefs, fresh)

	assert.Equal(t, 0.2, visitedScore.Breakdown.NoveltyScore)
	assert.Equal(t, 1.0, freshScore.Breakdown.NoveltyScore)
	assert.Less(t, visitedScore.FinalScore, freshScore.FinalScore)
}

func TestTimeOptimizationPace(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	prefs := testPrefs()
	prefs.TravelPace = models.PaceSlow

	place := testPlace()
	place.EstimatedDuration = 200 // 300 adjusted at slow pace
	res := engine.ScorePlace(prefs, place)
	assert.InDelta(t, 0.6, res.Breakdown.TimeOptimization, 1e-9)

	// Long visits floor at 0.5.
	place.EstimatedDuration = 600
	res = engine.ScorePlace(prefs, place)
	assert.Equal(t, 0.5, res.Breakdown.TimeOptimization)

	// Fast pace keeps medium visits at full score.
	prefs.TravelPace = models.PaceFast
	place.EstimatedDuration = 240
	res = engine.ScorePlace(prefs, place)
	assert.Equal(t, 1.0, res.Breakdown.TimeOptimization)
}

func TestRankPlacesOrderAndCap(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	prefs := testPrefs()

	var places []models.CandidatePlace
	for i := 0; i < 60; i++ {
		places = append(places, models.CandidatePlace{
			ID:                fmt.Sprintf("p%d", i),
			Name:              fmt.Sprintf("Place %d", i),
			EstimatedCost:     float64(100 * (i%5 + 1)),
			EstimatedDuration: 60,
		})
	}

	ranked := engine.RankPlaces(places, prefs)
	require.Len(t, ranked, 50)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score.FinalScore, ranked[i].Score.FinalScore)
	}
}

func TestRankPlacesStableOnTies(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	prefs := testPrefs()

	// Identical places score identically; input order must survive.
	places := []models.CandidatePlace{
		{ID: "a", Name: "Alpha", EstimatedCost: 300, EstimatedDuration: 60},
		{ID: "b", Name: "Beta", EstimatedCost: 300, EstimatedDuration: 60},
		{ID: "c", Name: "Gamma", EstimatedCost: 300, EstimatedDuration: 60},
	}

	ranked := engine.RankPlaces(places, prefs)
	require.Len(t, ranked, 3)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "b", ranked[1].ID)
	assert.Equal(t, "c", ranked[2].ID)
}

func TestGenerateExplanation(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	prefs := testPrefs()
	prefs.Interests["food"] = 0.9
	prefs.Interests["history"] = 0.8
	prefs.VisitedPlaces = []models.VisitedPlace{{PlaceName: "Old Fort"}}
	prefs.Accessibility.WheelchairFriendly = true

	text := engine.GenerateExplanation(models.Itinerary{}, prefs)
	assert.Contains(t, text, "food")
	assert.Contains(t, text, "history")
	assert.Contains(t, text, "Avoided 1 previously visited")
	assert.Contains(t, text, "mid-range budget")
	assert.Contains(t, text, "wheelchair accessible")

	generic := engine.GenerateExplanation(models.Itinerary{}, models.PreferenceVector{})
	assert.Equal(t, "Personalized itinerary based on your preferences and travel style.", generic)
}
