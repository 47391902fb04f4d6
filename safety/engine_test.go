package safety

import (
	"context"
	"fmt"
	"testing"
	"time"

	"voyago/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWeather struct {
	configured bool
	forecast   []models.ForecastDay
	geoErr     error
}

func (s *stubWeather) Configured() bool { return s.configured }

func (s *stubWeather) Geocode(context.Context, string) (models.Coordinates, error) {
	if s.geoErr != nil {
		return models.Coordinates{}, s.geoErr
	}
	return models.Coordinates{Lat: 35, Lng: 139}, nil
}

func (s *stubWeather) Forecast(context.Context, float64, float64, int) ([]models.ForecastDay, error) {
	return s.forecast, nil
}

func tripStart() time.Time {
	return time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
}

func lightDay(offset int, activities ...models.Activity) models.Day {
	return models.Day{Date: tripStart().AddDate(0, 0, offset), Activities: activities}
}

func act(name, category, start, end string, duration int) models.Activity {
	return models.Activity{PlaceName: name, Category: category, StartTime: start, EndTime: end, Duration: duration}
}

func testContext() models.UserContext {
	return models.UserContext{
		Destination: "Kyoto",
		StartDate:   "2026-10-01",
		EndDate:     "2026-10-05",
		TotalBudget: 20000,
		TravelGroup: models.TravelGroup{Size: 2},
	}
}

func newTestEngine(weather WeatherSource) *Engine {
	return NewEngine(DefaultThresholds(), weather)
}

func TestCleanItineraryIsSafe(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: true})
	itinerary := &models.Itinerary{Days: []models.Day{
		lightDay(0, act("City Museum", "museum", "09:00", "11:30", 150)),
		lightDay(1, act("Riverside Park", "park", "09:00", "11:00", 120)),
	}}

	result := e.ValidateContext(context.Background(), testContext(), itinerary)
	require.True(t, result.Approved)
	assert.Equal(t, 100, result.SafetyScore)
	assert.Empty(t, result.Restrictions)
	assert.Equal(t, models.SafetyStatusSafe, Summarize(result).Status)
}

func TestLateNightDeductsOnce(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: true})
	itinerary := &models.Itinerary{Days: []models.Day{
		lightDay(0,
			act("Night Bazaar", "market", "22:00", "23:30", 90),
			act("Jazz Bar", "nightlife", "23:30", "25:00", 90),
		),
	}}

	result := e.ValidateContext(context.Background(), testContext(), itinerary)
	var lateNight int
	for _, w := range result.Warnings {
		if w.Type == "LATE_NIGHT" {
			lateNight++
		}
	}
	assert.Equal(t, 2, lateNight)
	assert.Equal(t, 100-deductLateNight, result.SafetyScore)
	assert.True(t, result.Approved)

	var reschedules int
	for _, s := range result.SafeAlternatives {
		if s.Action == "RESCHEDULE" {
			reschedules++
		}
	}
	assert.Equal(t, 2, reschedules)
}

func TestChildUnsafeBlocksApproval(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: true})
	userCtx := testContext()
	userCtx.TravelGroup = models.TravelGroup{Size: 3, HasChildren: true}

	itinerary := &models.Itinerary{Days: []models.Day{
		lightDay(0,
			act("Grand Casino", "casino", "10:00", "12:00", 120),
			act("City Museum", "museum", "13:00", "15:00", 120),
		),
	}}

	result := e.ValidateContext(context.Background(), userCtx, itinerary)
	require.False(t, result.Approved, "a restriction must block approval regardless of score")
	require.Len(t, result.Restrictions, 1)
	assert.Equal(t, "CHILD_UNSAFE", result.Restrictions[0].Type)
	assert.Equal(t, 100-deductChildUnsafe, result.SafetyScore)
}

func TestExhaustionRiskFiresOnceForStreak(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: true})
	heavy := func(offset int) models.Day {
		return lightDay(offset,
			act("Temple Circuit", "temple", "09:00", "14:00", 300),
			act("Old Town Walk", "attraction", "14:30", "19:00", 270),
		)
	}
	itinerary := &models.Itinerary{Days: []models.Day{
		heavy(0), heavy(1), heavy(2), heavy(3),
	}}

	result := e.ValidateContext(context.Background(), testContext(), itinerary)
	var exhaustion int
	for _, w := range result.Warnings {
		if w.Type == "EXHAUSTION_RISK" {
			exhaustion++
		}
	}
	assert.Equal(t, 1, exhaustion, "four heavy days trigger a single exhaustion warning")
}

func TestExhaustionStreakResetsOnLightDay(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: true})
	heavy := func(offset int) models.Day {
		return lightDay(offset, act("Full Day Tour", "attraction", "09:00", "18:00", 540))
	}
	itinerary := &models.Itinerary{Days: []models.Day{
		heavy(0), heavy(1),
		lightDay(2, act("Cafe Morning", "restaurant", "10:00", "11:30", 90)),
		heavy(3), heavy(4),
	}}

	result := e.ValidateContext(context.Background(), testContext(), itinerary)
	for _, w := range result.Warnings {
		assert.NotEqual(t, "EXHAUSTION_RISK", w.Type)
	}
	assert.Equal(t, 100, result.SafetyScore)
}

func TestTimeOverloadDeduction(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: true})
	itinerary := &models.Itinerary{Days: []models.Day{
		lightDay(0,
			act("Marathon Tour", "attraction", "08:00", "19:00", 660),
		),
	}}

	result := e.ValidateContext(context.Background(), testContext(), itinerary)
	assert.Equal(t, 100-deductTimeOverload, result.SafetyScore)
	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, "TIME_OVERLOAD", result.Warnings[0].Type)
	require.NotEmpty(t, result.SafeAlternatives)
	assert.Equal(t, "REDUCE_ACTIVITIES", result.SafeAlternatives[0].Action)
}

func TestTransitTimeCountsTowardDailyLimit(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: true})
	// Seven hour-long stops: 420 activity minutes plus 7x30 transit
	// makes 630, over the 10-hour limit even though the activities
	// alone fit.
	var acts []models.Activity
	for i := 0; i < 7; i++ {
		acts = append(acts, act(fmt.Sprintf("Stop %d", i), "attraction", "09:00", "10:00", 60))
	}
	itinerary := &models.Itinerary{Days: []models.Day{lightDay(0, acts...)}}

	result := e.ValidateContext(context.Background(), testContext(), itinerary)
	assert.Equal(t, 100-deductTimeOverload, result.SafetyScore)
	types := map[string]int{}
	for _, w := range result.Warnings {
		types[w.Type]++
	}
	assert.Equal(t, 1, types["TIME_OVERLOAD"])
	assert.Equal(t, 1, types["ACTIVITY_OVERLOAD"])
	var reduce int
	for _, s := range result.SafeAlternatives {
		if s.Action == "REDUCE_ACTIVITIES" {
			reduce++
		}
	}
	assert.Equal(t, 1, reduce)
}

func TestActivityOverloadWarnsWithoutDeduction(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: true})
	// Seven short stops stay inside the daily limit (7x40 + 7x30 = 490
	// minutes) but still exceed the activity count.
	var acts []models.Activity
	for i := 0; i < 7; i++ {
		acts = append(acts, act(fmt.Sprintf("Stop %d", i), "attraction", "09:00", "09:40", 40))
	}
	itinerary := &models.Itinerary{Days: []models.Day{lightDay(0, acts...)}}

	result := e.ValidateContext(context.Background(), testContext(), itinerary)
	assert.Equal(t, 100, result.SafetyScore)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "ACTIVITY_OVERLOAD", result.Warnings[0].Type)
	assert.Equal(t, models.SeverityLow, result.Warnings[0].Severity)
}

func TestStrenuousWarningsForElderly(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: true})
	userCtx := testContext()
	userCtx.TravelGroup = models.TravelGroup{Size: 2, HasElderly: true}

	itinerary := &models.Itinerary{Days: []models.Day{
		lightDay(0,
			act("Volcano Hike", "adventure", "09:00", "13:00", 240),
			act("Tea House", "restaurant", "14:00", "15:30", 90),
		),
	}}

	result := e.ValidateContext(context.Background(), userCtx, itinerary)
	types := map[string]int{}
	for _, w := range result.Warnings {
		types[w.Type]++
	}
	assert.Equal(t, 1, types["MOBILITY_CONCERN"])
	assert.Equal(t, 1, types["DURATION_CONCERN"])
	assert.Equal(t, 100, result.SafetyScore, "mobility warnings do not deduct")
	assert.True(t, result.Approved)
}

func TestRepetitionWarnsWithoutDeduction(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: true})
	userCtx := testContext()
	userCtx.VisitedPlaces = []models.VisitedPlace{{PlaceID: "p1", PlaceName: "Golden Pavilion"}}

	itinerary := &models.Itinerary{Days: []models.Day{
		lightDay(0, models.Activity{PlaceID: "px", PlaceName: "golden pavilion", Category: "temple", StartTime: "09:00", EndTime: "11:00", Duration: 120}),
	}}

	result := e.ValidateContext(context.Background(), userCtx, itinerary)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "REPETITION", result.Warnings[0].Type)
	assert.Equal(t, 100, result.SafetyScore)
	assert.True(t, result.Approved)
}

func TestWeatherRestrictionFromExtremeCode(t *testing.T) {
	forecast := []models.ForecastDay{{
		Date:          tripStart(),
		Condition:     "Tornado",
		ConditionCode: 781,
	}}
	e := newTestEngine(&stubWeather{configured: true, forecast: forecast})

	itinerary := &models.Itinerary{Days: []models.Day{
		lightDay(0, act("Harbor Walk", "attraction", "09:00", "10:15", 75)),
	}}

	result := e.ValidateContext(context.Background(), testContext(), itinerary)
	require.False(t, result.Approved)
	require.Len(t, result.Restrictions, 1)
	assert.Equal(t, "WEATHER_EXTREME", result.Restrictions[0].Type)
	assert.Equal(t, 100-3*deductWeatherPerSeverity, result.SafetyScore)
}

func TestUnconfiguredWeatherSkipsCleanly(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: false})
	itinerary := &models.Itinerary{Days: []models.Day{
		lightDay(0, act("City Museum", "museum", "09:00", "11:00", 120)),
	}}

	result := e.ValidateContext(context.Background(), testContext(), itinerary)
	assert.True(t, result.Approved)
	assert.Empty(t, result.Warnings, "missing credentials skip the weather check without noise")
	assert.Equal(t, 100, result.SafetyScore)
}

func TestGeocodeFailureDegrades(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: true, geoErr: fmt.Errorf("quota exceeded")})
	itinerary := &models.Itinerary{Days: []models.Day{
		lightDay(0, act("City Museum", "museum", "09:00", "11:00", 120)),
	}}

	result := e.ValidateContext(context.Background(), testContext(), itinerary)
	assert.True(t, result.Approved)
	assert.Equal(t, 100, result.SafetyScore, "a degraded check never deducts")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "SYSTEM", result.Warnings[0].Type)
}

func TestApprovalInvariantUnderHeavyDeductions(t *testing.T) {
	// Stack enough trouble to push the score below 50 with no restriction.
	forecast := make([]models.ForecastDay, 4)
	for i := range forecast {
		forecast[i] = models.ForecastDay{
			Date:        tripStart().AddDate(0, 0, i),
			Temperature: models.TemperatureRange{Max: 45, Min: 30},
		}
	}
	e := newTestEngine(&stubWeather{configured: true, forecast: forecast})

	heavy := func(offset int) models.Day {
		return lightDay(offset,
			act("Marathon Tour", "attraction", "08:00", "19:30", 690),
			act("Night Bazaar", "market", "22:30", "24:00", 90),
		)
	}
	itinerary := &models.Itinerary{Days: []models.Day{heavy(0), heavy(1), heavy(2), heavy(3)}}

	result := e.ValidateContext(context.Background(), testContext(), itinerary)
	// Heat across four days deducts once at medium severity (-20),
	// plus time overload (-15), late night (-15) and exhaustion (-10).
	assert.Equal(t, 40, result.SafetyScore)
	assert.False(t, result.Approved, "a sub-50 score blocks approval without any restriction")
	assert.Empty(t, result.Restrictions)
	assert.Equal(t, models.SafetyStatusUnsafe, Summarize(result).Status)
}

func TestWeatherDeductsOnceAtWorstSeverity(t *testing.T) {
	// Four hot days plus a windy one: one deduction at the worst
	// severity, not one per flagged day.
	forecast := make([]models.ForecastDay, 5)
	for i := range forecast {
		forecast[i] = models.ForecastDay{
			Date:        tripStart().AddDate(0, 0, i),
			Temperature: models.TemperatureRange{Max: 45, Min: 30},
		}
	}
	forecast[4].Temperature = models.TemperatureRange{Max: 30, Min: 20}
	forecast[4].WindSpeed = 20

	e := newTestEngine(&stubWeather{configured: true, forecast: forecast})
	var days []models.Day
	for i := 0; i < 5; i++ {
		days = append(days, lightDay(i, act("Garden Walk", "park", "09:00", "11:00", 120)))
	}
	itinerary := &models.Itinerary{Days: days}

	result := e.ValidateContext(context.Background(), testContext(), itinerary)
	assert.Equal(t, 100-2*deductWeatherPerSeverity, result.SafetyScore)
	var heat, wind int
	for _, w := range result.Warnings {
		switch w.Type {
		case "WEATHER_HEAT":
			heat++
		case "WEATHER_WIND":
			wind++
		}
	}
	assert.Equal(t, 4, heat, "each flagged day still warns")
	assert.Equal(t, 1, wind)
	assert.True(t, result.Approved)
}

func TestAnalyzeUserContext(t *testing.T) {
	e := newTestEngine(&stubWeather{configured: true})
	userCtx := models.UserContext{
		Destination: "Oslo",
		StartDate:   "2026-07-10",
		EndDate:     "2026-07-14",
		TotalBudget: 30000,
		TravelGroup: models.TravelGroup{Size: 4, HasChildren: true},
	}

	analysis := e.AnalyzeUserContext(userCtx)
	assert.Equal(t, 5, analysis.TripDuration)
	assert.Equal(t, "medium", analysis.TimeAvailable)
	assert.Equal(t, "premium", analysis.BudgetCategory)
	assert.Equal(t, "summer", analysis.SeasonalContext)
	assert.Equal(t, "family", analysis.GroupType)
	assert.Contains(t, analysis.SpecialNeeds, "child-friendly venues")
}

func TestGenerateSafeFallback(t *testing.T) {
	restrictions := []models.Restriction{
		{Type: "WEATHER_EXTREME"},
		{Type: "CHILD_UNSAFE"},
		{Type: "CHILD_UNSAFE"},
		{Type: "POLITICAL_UNREST"},
	}
	fallbacks := GenerateSafeFallback(restrictions)
	require.Len(t, fallbacks, 4, "one bundle per restriction, no dedup")
	assert.Equal(t, "WEATHER_EXTREME", fallbacks[0].Type)
	assert.Equal(t, fallbacks[1].Suggestions, fallbacks[2].Suggestions)
	assert.NotEmpty(t, fallbacks[3].Suggestions)
}

func TestSummarizeBands(t *testing.T) {
	band := func(score int) string {
		return Summarize(models.SafetyValidationResult{SafetyScore: score}).Status
	}
	assert.Equal(t, models.SafetyStatusUnsafe, band(49))
	assert.Equal(t, models.SafetyStatusCaution, band(50))
	assert.Equal(t, models.SafetyStatusCaution, band(69))
	assert.Equal(t, models.SafetyStatusModerate, band(70))
	assert.Equal(t, models.SafetyStatusModerate, band(89))
	assert.Equal(t, models.SafetyStatusSafe, band(90))
	assert.Equal(t, models.SafetyStatusSafe, band(100))
}

func TestGroupGuidelines(t *testing.T) {
	family := GroupGuidelines(models.TravelGroup{HasChildren: true, Size: 4})
	assert.Contains(t, family[0], "first-aid")

	large := GroupGuidelines(models.TravelGroup{Size: 8})
	require.NotEmpty(t, large)
	assert.Contains(t, large[0], "group tickets")

	general := GroupGuidelines(models.TravelGroup{Size: 1})
	require.Len(t, general, 2)
}
