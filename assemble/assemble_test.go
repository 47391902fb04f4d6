package assemble

import (
	"fmt"
	"testing"
	"time"

	"voyago/llm"
	"voyago/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(id, name, category string, duration int, cost float64) models.ScoredPlace {
	return models.ScoredPlace{
		CandidatePlace: models.CandidatePlace{
			ID:                id,
			Name:              name,
			Categories:        []string{category},
			EstimatedDuration: duration,
			EstimatedCost:     cost,
			Rating:            4.2,
		},
		Score: models.ScoreResult{FinalScore: 0.8, Reasoning: "good match"},
	}
}

func rankedPool(n int) []models.ScoredPlace {
	categories := []string{"museum", "park", "restaurant", "temple", "monument", "market", "attraction"}
	var out []models.ScoredPlace
	for i := 0; i < n; i++ {
		cat := categories[i%len(categories)]
		out = append(out, scored(fmt.Sprintf("p%d", i), fmt.Sprintf("Place %d", i), cat, 100, 300))
	}
	return out
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(540))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:30", FormatClock(1410))
	// No 24h wrap: overruns stay visible.
	assert.Equal(t, "25:30", FormatClock(1530))
	assert.Equal(t, "00:00", FormatClock(-10))
}

func TestBuildFromSearchSchedule(t *testing.T) {
	a := NewAssembler()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	days := a.BuildFromSearch(rankedPool(30), "Kyoto", start, 3)
	require.Len(t, days, 3)

	for i, day := range days {
		assert.Equal(t, start.AddDate(0, 0, i), day.Date)
		assert.Equal(t, fmt.Sprintf("%s - Day %d", dayThemes[i].name, i+1), day.Theme)
		require.Len(t, day.Activities, activitiesPerDay)

		first := day.Activities[0]
		assert.Equal(t, "09:00", first.StartTime)
		assert.Equal(t, 1, first.Order)

		// Each slot starts 30 minutes after the previous one ends.
		for j := 1; j < len(day.Activities); j++ {
			prev := day.Activities[j-1]
			cur := day.Activities[j]
			assert.Equal(t, prev.EndTime, minusMinutes(cur.StartTime, slotGapMinutes))
			assert.Equal(t, j+1, cur.Order)
		}
	}
}

func minusMinutes(clock string, minutes int) string {
	var h, m int
	fmt.Sscanf(clock, "%d:%d", &h, &m)
	return FormatClock(h*60 + m - minutes)
}

func TestBuildFromSearchNoRepeats(t *testing.T) {
	a := NewAssembler()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	days := a.BuildFromSearch(rankedPool(40), "Kyoto", start, 5)
	seen := map[string]bool{}
	for _, day := range days {
		for _, act := range day.Activities {
			require.False(t, seen[act.PlaceID], "place %s scheduled twice", act.PlaceID)
			seen[act.PlaceID] = true
		}
	}
}

func TestBuildFromSearchThemeRotation(t *testing.T) {
	a := NewAssembler()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	days := a.BuildFromSearch(rankedPool(50), "Kyoto", start, 7)
	require.Len(t, days, 7)
	assert.Equal(t, "Heritage & Culture - Day 1", days[0].Theme)
	assert.Equal(t, "Heritage & Culture - Day 6", days[5].Theme) // wraps after five themes
	assert.Equal(t, "Local Flavors & Temples - Day 7", days[6].Theme)
}

func TestBuildFromSearchSlotCategoriesFollowTheme(t *testing.T) {
	a := NewAssembler()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	days := a.BuildFromSearch(rankedPool(30), "Kyoto", start, 2)
	require.Len(t, days, 2)

	for i, day := range days {
		require.Len(t, day.Activities, activitiesPerDay)
		for j, act := range day.Activities {
			assert.Equal(t, dayThemes[i].categories[j], act.Category,
				"day %d slot %d", i+1, j+1)
		}
	}
}

func TestBuildFromSearchFallbackWhenThemeExhausted(t *testing.T) {
	a := NewAssembler()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	// Only restaurants available; every theme must still fill its day.
	var pool []models.ScoredPlace
	for i := 0; i < 12; i++ {
		pool = append(pool, scored(fmt.Sprintf("r%d", i), fmt.Sprintf("Diner %d", i), "restaurant", 0, 0))
	}

	days := a.BuildFromSearch(pool, "Kyoto", start, 2)
	require.Len(t, days, 2)
	for _, day := range days {
		require.Len(t, day.Activities, activitiesPerDay)
		for _, act := range day.Activities {
			assert.Equal(t, "restaurant", act.Category)
			assert.Equal(t, restaurantMinutes, act.Duration)
			assert.Equal(t, restaurantCost, act.Cost)
		}
	}
}

func TestBuildFromSearchShortPool(t *testing.T) {
	a := NewAssembler()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	days := a.BuildFromSearch(rankedPool(3), "Kyoto", start, 2)
	require.Len(t, days, 2)
	assert.Len(t, days[0].Activities, 3)
	assert.Empty(t, days[1].Activities)
}

func TestBuildFromDraft(t *testing.T) {
	a := NewAssembler()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	draft := &llm.Draft{Days: []llm.DraftDay{
		{
			DayNumber: 1,
			Theme:     "Temples & Tradition",
			Places: []llm.DraftPlace{
				{PlaceName: "Golden Pavilion", City: "Kyoto", Category: "Temple", Importance: "Iconic Zen temple", Duration: 120, EstimatedCost: 400},
				{PlaceName: "Nishiki Market", Category: "market", Duration: 0, EstimatedCost: 0},
				{PlaceName: "Kaiseki House", Category: "restaurant", Duration: 90},
			},
		},
	}}

	days := a.BuildFromDraft(draft, "Kyoto", start)
	require.Len(t, days, 1)
	day := days[0]
	// Draft themes take priority over the rotation.
	assert.Equal(t, "Temples & Tradition", day.Theme)
	require.Len(t, day.Activities, 3)

	golden := day.Activities[0]
	assert.Equal(t, "temple", golden.Category)
	assert.Equal(t, "09:00", golden.StartTime)
	assert.Equal(t, "11:00", golden.EndTime)
	assert.Equal(t, "Iconic Zen temple", golden.Description)
	assert.Equal(t, "morning", golden.BestTime)

	market := day.Activities[1]
	assert.Equal(t, "Kyoto", market.City) // destination fills missing city
	assert.Equal(t, defaultDuration, market.Duration)
	assert.Equal(t, "11:30", market.StartTime)

	dinner := day.Activities[2]
	assert.Equal(t, restaurantCost, dinner.Cost)

	assert.Equal(t, golden.Cost+dinner.Cost, day.TotalCost)
}

func TestBuildFromDraftGenericThemeLabels(t *testing.T) {
	a := NewAssembler()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	var draft llm.Draft
	for i := 0; i < 7; i++ {
		draft.Days = append(draft.Days, llm.DraftDay{
			DayNumber: i + 1,
			Places:    []llm.DraftPlace{{PlaceName: "Spot", Category: "attraction", Duration: 60}},
		})
	}

	days := a.BuildFromDraft(&draft, "Lima", start)
	require.Len(t, days, 7)
	assert.Equal(t, "Day 1 Exploration", days[0].Theme)
	assert.Equal(t, "Day 7 Exploration", days[6].Theme)
}

func TestTimeOfDayLabel(t *testing.T) {
	assert.Equal(t, "morning", timeOfDayLabel(9*60))
	assert.Equal(t, "afternoon", timeOfDayLabel(13*60))
	assert.Equal(t, "evening", timeOfDayLabel(18*60))
}
