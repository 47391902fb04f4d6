package safety

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"voyago/models"
)

// WeatherSource is the slice of the weather client the engine needs.
type WeatherSource interface {
	Configured() bool
	Geocode(ctx context.Context, destination string) (models.Coordinates, error)
	Forecast(ctx context.Context, lat, lng float64, days int) ([]models.ForecastDay, error)
}

// Thresholds are the tunable limits the checks run against.
type Thresholds struct {
	MaxDailyTravelHours int
	MaxActivitiesPerDay int
	UnsafeHourStart     int // inclusive, 24h clock
	UnsafeHourEnd       int // exclusive
	ExtremeWeatherCodes map[int]bool
	MaxTemperature      float64
	MinTemperature      float64
	MaxWindSpeed        float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxDailyTravelHours: 10,
		MaxActivitiesPerDay: 6,
		UnsafeHourStart:     23,
		UnsafeHourEnd:       5,
		ExtremeWeatherCodes: map[int]bool{
			202: true, 212: true, 221: true, 232: true,
			504: true, 511: true, 602: true, 622: true, 781: true,
		},
		MaxTemperature: 42,
		MinTemperature: -5,
		MaxWindSpeed:   15,
	}
}

// Deductions per triggered check, applied at most once each except
// weather, which scales with severity.
const (
	deductWeatherPerSeverity = 10
	deductTimeOverload       = 15
	deductChildUnsafe        = 20
	deductLateNight          = 15
	deductExhaustion         = 10
)

const baseScore = 100

// childUnsafeCategories block approval outright for groups traveling
// with children.
var childUnsafeCategories = []string{"bar", "nightclub", "casino", "adult"}

// strenuousKeywords flag activities demanding for elderly travelers or
// travelers with mobility issues.
var strenuousKeywords = []string{"trek", "hike", "climb", "adventure"}

// CheckOutcome is what each sub-check contributes to the verdict.
type CheckOutcome struct {
	Warnings     []models.Warning
	Restrictions []models.Restriction
	Suggestions  []models.Suggestion
	Deduction    int
}

func (o *CheckOutcome) merge(other CheckOutcome) {
	o.Warnings = append(o.Warnings, other.Warnings...)
	o.Restrictions = append(o.Restrictions, other.Restrictions...)
	o.Suggestions = append(o.Suggestions, other.Suggestions...)
	o.Deduction += other.Deduction
}

// Engine validates an itinerary against the traveler's situation. It
// never fails outright: checks that depend on flaky externals degrade
// and are reported as a single SYSTEM warning.
type Engine struct {
	thresholds Thresholds
	weather    WeatherSource
}

func NewEngine(thresholds Thresholds, weather WeatherSource) *Engine {
	return &Engine{thresholds: thresholds, weather: weather}
}

// ValidateContext runs every check and aggregates the verdict. The
// approval invariant holds by construction: approved iff the floored
// score is at least 50 and no restriction fired.
func (e *Engine) ValidateContext(ctx context.Context, userCtx models.UserContext, itinerary *models.Itinerary) models.SafetyValidationResult {
	var outcome CheckOutcome
	degraded := 0

	checks := []func(context.Context, models.UserContext, *models.Itinerary) (CheckOutcome, bool){
		e.checkWeather,
		e.checkTimeOverload,
		e.checkGroupSuitability,
		e.checkStrenuousActivities,
		e.checkLateNight,
		e.checkExhaustion,
		e.checkRepetition,
	}
	for _, check := range checks {
		res, ok := check(ctx, userCtx, itinerary)
		if !ok {
			degraded++
			continue
		}
		outcome.merge(res)
	}

	if degraded > 0 {
		outcome.Warnings = append(outcome.Warnings, models.Warning{
			Type:     "SYSTEM",
			Message:  fmt.Sprintf("%d safety check(s) could not run and were skipped", degraded),
			Severity: models.SeverityMedium,
		})
	}

	score := baseScore - outcome.Deduction
	if score < 0 {
		score = 0
	}

	return models.SafetyValidationResult{
		Approved:         score >= 50 && len(outcome.Restrictions) == 0,
		SafetyScore:      score,
		Warnings:         outcome.Warnings,
		Restrictions:     outcome.Restrictions,
		SafeAlternatives: outcome.Suggestions,
		ContextAnalysis:  e.AnalyzeUserContext(userCtx),
	}
}

// checkWeather inspects the forecast for each itinerary day. Extreme
// condition codes raise a restriction; heat, cold and wind only warn.
// The whole check deducts once, scaled by the worst severity seen.
// Without weather credentials the check is skipped cleanly; only a
// failing call degrades it.
func (e *Engine) checkWeather(ctx context.Context, userCtx models.UserContext, itinerary *models.Itinerary) (CheckOutcome, bool) {
	var out CheckOutcome
	if e.weather == nil || !e.weather.Configured() {
		return out, true
	}

	coords, err := e.weather.Geocode(ctx, userCtx.Destination)
	if err != nil {
		return out, false
	}
	forecast, err := e.weather.Forecast(ctx, coords.Lat, coords.Lng, len(itinerary.Days))
	if err != nil {
		return out, false
	}

	byDate := make(map[string]models.ForecastDay, len(forecast))
	for _, f := range forecast {
		byDate[f.Date.Format("2006-01-02")] = f
	}

	maxSeverity := 0
	for _, day := range itinerary.Days {
		f, ok := byDate[day.Date.Format("2006-01-02")]
		if !ok {
			continue
		}
		date := day.Date.Format("2006-01-02")

		if e.thresholds.ExtremeWeatherCodes[f.ConditionCode] {
			out.Restrictions = append(out.Restrictions, models.Restriction{
				Type:    "WEATHER_EXTREME",
				Message: fmt.Sprintf("Extreme weather (%s) forecast on %s", f.Condition, date),
				Dates:   []string{date},
			})
			maxSeverity = severityWeight(models.SeverityHigh)
			continue
		}

		switch {
		case f.Temperature.Max > e.thresholds.MaxTemperature:
			out.Warnings = append(out.Warnings, models.Warning{
				Type:     "WEATHER_HEAT",
				Message:  fmt.Sprintf("Very high temperature (%.0f°C) expected on %s", f.Temperature.Max, date),
				Date:     date,
				Severity: models.SeverityMedium,
			})
			maxSeverity = maxInt(maxSeverity, severityWeight(models.SeverityMedium))
		case f.Temperature.Min < e.thresholds.MinTemperature:
			out.Warnings = append(out.Warnings, models.Warning{
				Type:     "WEATHER_COLD",
				Message:  fmt.Sprintf("Severe cold (%.0f°C) expected on %s", f.Temperature.Min, date),
				Date:     date,
				Severity: models.SeverityMedium,
			})
			maxSeverity = maxInt(maxSeverity, severityWeight(models.SeverityMedium))
		case f.WindSpeed > e.thresholds.MaxWindSpeed:
			out.Warnings = append(out.Warnings, models.Warning{
				Type:     "WEATHER_WIND",
				Message:  fmt.Sprintf("Strong winds (%.0f m/s) expected on %s", f.WindSpeed, date),
				Date:     date,
				Severity: models.SeverityLow,
			})
			maxSeverity = maxInt(maxSeverity, severityWeight(models.SeverityLow))
		}
	}
	out.Deduction = deductWeatherPerSeverity * maxSeverity
	return out, true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func severityWeight(severity string) int {
	switch severity {
	case models.SeverityHigh:
		return 3
	case models.SeverityMedium:
		return 2
	default:
		return 1
	}
}

// transitMinutesPerActivity is the flat travel estimate added between
// scheduled stops when judging daily feasibility.
const transitMinutesPerActivity = 30

// checkTimeOverload flags days whose scheduled hours, including an
// estimated transit allowance per stop, exceed the daily limit, and
// days with too many activities.
func (e *Engine) checkTimeOverload(_ context.Context, _ models.UserContext, itinerary *models.Itinerary) (CheckOutcome, bool) {
	var out CheckOutcome
	deducted := false
	for _, day := range itinerary.Days {
		total := 0
		for _, act := range day.Activities {
			total += act.Duration + transitMinutesPerActivity
		}
		if total > e.thresholds.MaxDailyTravelHours*60 {
			out.Warnings = append(out.Warnings, models.Warning{
				Type:     "TIME_OVERLOAD",
				Message:  fmt.Sprintf("%s schedules %.1f hours including travel, above the %d hour daily limit", day.Theme, float64(total)/60, e.thresholds.MaxDailyTravelHours),
				Date:     day.Date.Format("2006-01-02"),
				Severity: models.SeverityMedium,
			})
			out.Suggestions = append(out.Suggestions, models.Suggestion{
				Suggestion: fmt.Sprintf("Reduce activities on %s or split them across more days", day.Date.Format("2006-01-02")),
				Action:     "REDUCE_ACTIVITIES",
			})
			if !deducted {
				out.Deduction += deductTimeOverload
				deducted = true
			}
		}
		if len(day.Activities) > e.thresholds.MaxActivitiesPerDay {
			out.Warnings = append(out.Warnings, models.Warning{
				Type:     "ACTIVITY_OVERLOAD",
				Message:  fmt.Sprintf("%d activities on %s may be hard to keep up with", len(day.Activities), day.Date.Format("2006-01-02")),
				Date:     day.Date.Format("2006-01-02"),
				Severity: models.SeverityLow,
			})
		}
	}
	return out, true
}

// checkGroupSuitability blocks child-unsafe venues for groups with
// children.
func (e *Engine) checkGroupSuitability(_ context.Context, userCtx models.UserContext, itinerary *models.Itinerary) (CheckOutcome, bool) {
	var out CheckOutcome
	if !userCtx.TravelGroup.HasChildren {
		return out, true
	}

	deducted := false
	for _, day := range itinerary.Days {
		for _, act := range day.Activities {
			if !matchesAny(act, childUnsafeCategories) {
				continue
			}
			out.Restrictions = append(out.Restrictions, models.Restriction{
				Type:    "CHILD_UNSAFE",
				Message: fmt.Sprintf("%s is not suitable for children", act.PlaceName),
				Place:   act.PlaceName,
				Dates:   []string{day.Date.Format("2006-01-02")},
			})
			if !deducted {
				out.Deduction += deductChildUnsafe
				deducted = true
			}
		}
	}
	return out, true
}

// checkStrenuousActivities warns about physically demanding stops for
// elderly travelers and travelers with mobility issues.
func (e *Engine) checkStrenuousActivities(_ context.Context, userCtx models.UserContext, itinerary *models.Itinerary) (CheckOutcome, bool) {
	var out CheckOutcome
	group := userCtx.TravelGroup
	if !group.HasElderly && !group.HasMobilityIssues {
		return out, true
	}

	for _, day := range itinerary.Days {
		for _, act := range day.Activities {
			date := day.Date.Format("2006-01-02")
			if matchesAny(act, strenuousKeywords) {
				out.Warnings = append(out.Warnings, models.Warning{
					Type:     "MOBILITY_CONCERN",
					Message:  fmt.Sprintf("%s may be physically demanding for your group", act.PlaceName),
					Place:    act.PlaceName,
					Date:     date,
					Severity: models.SeverityMedium,
				})
			}
			if act.Duration > 180 {
				out.Warnings = append(out.Warnings, models.Warning{
					Type:     "DURATION_CONCERN",
					Message:  fmt.Sprintf("%s runs %d minutes without a planned break", act.PlaceName, act.Duration),
					Place:    act.PlaceName,
					Date:     date,
					Severity: models.SeverityLow,
				})
			}
		}
	}
	return out, true
}

// checkLateNight flags activities ending inside the unsafe hour window.
func (e *Engine) checkLateNight(_ context.Context, _ models.UserContext, itinerary *models.Itinerary) (CheckOutcome, bool) {
	var out CheckOutcome
	deducted := false
	for _, day := range itinerary.Days {
		for _, act := range day.Activities {
			hour, ok := clockHour(act.EndTime)
			if !ok || !e.inUnsafeHours(hour) {
				continue
			}
			out.Warnings = append(out.Warnings, models.Warning{
				Type:     "LATE_NIGHT",
				Message:  fmt.Sprintf("%s ends at %s, late at night", act.PlaceName, act.EndTime),
				Place:    act.PlaceName,
				Date:     day.Date.Format("2006-01-02"),
				Severity: models.SeverityMedium,
			})
			out.Suggestions = append(out.Suggestions, models.Suggestion{
				Suggestion: fmt.Sprintf("Move %s to an earlier slot", act.PlaceName),
				Action:     "RESCHEDULE",
			})
			if !deducted {
				out.Deduction += deductLateNight
				deducted = true
			}
		}
	}
	return out, true
}

func (e *Engine) inUnsafeHours(hour int) bool {
	hour = hour % 24
	if e.thresholds.UnsafeHourStart > e.thresholds.UnsafeHourEnd {
		return hour >= e.thresholds.UnsafeHourStart || hour < e.thresholds.UnsafeHourEnd
	}
	return hour >= e.thresholds.UnsafeHourStart && hour < e.thresholds.UnsafeHourEnd
}

// checkExhaustion fires once when three or more consecutive days each
// schedule over eight hours. A lighter day resets the streak.
func (e *Engine) checkExhaustion(_ context.Context, _ models.UserContext, itinerary *models.Itinerary) (CheckOutcome, bool) {
	var out CheckOutcome
	streak := 0
	for _, day := range itinerary.Days {
		total := 0
		for _, act := range day.Activities {
			total += act.Duration
		}
		if total > 480 {
			streak++
		} else {
			streak = 0
		}
		if streak == 3 {
			out.Warnings = append(out.Warnings, models.Warning{
				Type:     "EXHAUSTION_RISK",
				Message:  "Three or more consecutive days exceed 8 hours of activities",
				Severity: models.SeverityMedium,
			})
			out.Suggestions = append(out.Suggestions, models.Suggestion{
				Suggestion: "Add a rest day or lighten one of the back-to-back heavy days",
				Action:     "ADD_REST_DAY",
			})
			out.Deduction += deductExhaustion
			break
		}
	}
	return out, true
}

// checkRepetition warns (without deducting) when the plan revisits a
// place the traveler has already been to.
func (e *Engine) checkRepetition(_ context.Context, userCtx models.UserContext, itinerary *models.Itinerary) (CheckOutcome, bool) {
	var out CheckOutcome
	if len(userCtx.VisitedPlaces) == 0 {
		return out, true
	}

	visited := make(map[string]bool, len(userCtx.VisitedPlaces))
	for _, v := range userCtx.VisitedPlaces {
		if v.PlaceID != "" {
			visited[strings.ToLower(v.PlaceID)] = true
		}
		if v.PlaceName != "" {
			visited[strings.ToLower(v.PlaceName)] = true
		}
	}

	for _, day := range itinerary.Days {
		for _, act := range day.Activities {
			if visited[strings.ToLower(act.PlaceID)] || visited[strings.ToLower(act.PlaceName)] {
				out.Warnings = append(out.Warnings, models.Warning{
					Type:     "REPETITION",
					Message:  fmt.Sprintf("You have visited %s before", act.PlaceName),
					Place:    act.PlaceName,
					Date:     day.Date.Format("2006-01-02"),
					Severity: models.SeverityLow,
				})
			}
		}
	}
	return out, true
}

func matchesAny(act models.Activity, keywords []string) bool {
	name := strings.ToLower(act.PlaceName)
	category := strings.ToLower(act.Category)
	for _, kw := range keywords {
		if strings.Contains(name, kw) || strings.Contains(category, kw) {
			return true
		}
	}
	return false
}

func clockHour(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	return hour, true
}

// AnalyzeUserContext summarizes the trip situation for the verdict.
func (e *Engine) AnalyzeUserContext(userCtx models.UserContext) models.ContextAnalysis {
	analysis := models.ContextAnalysis{
		GroupType:      groupType(userCtx.TravelGroup),
		BudgetCategory: "unknown",
		TimeAvailable:  "unknown",
	}

	start, errStart := time.Parse("2006-01-02", userCtx.StartDate)
	end, errEnd := time.Parse("2006-01-02", userCtx.EndDate)
	if errStart == nil && errEnd == nil && !end.Before(start) {
		days := int(end.Sub(start).Hours()/24) + 1
		analysis.TripDuration = days
		switch {
		case days <= 3:
			analysis.TimeAvailable = "short"
		case days <= 7:
			analysis.TimeAvailable = "medium"
		default:
			analysis.TimeAvailable = "extended"
		}
		if userCtx.TotalBudget > 0 {
			perDay := userCtx.TotalBudget / float64(days)
			switch {
			case perDay < 2000:
				analysis.BudgetCategory = "budget"
			case perDay < 5000:
				analysis.BudgetCategory = "moderate"
			default:
				analysis.BudgetCategory = "premium"
			}
		}
		analysis.SeasonalContext = season(start.Month())
	}

	group := userCtx.TravelGroup
	if group.HasChildren {
		analysis.SpecialNeeds = append(analysis.SpecialNeeds, "child-friendly venues")
	}
	if group.HasElderly {
		analysis.SpecialNeeds = append(analysis.SpecialNeeds, "low-intensity pacing")
	}
	if group.HasMobilityIssues {
		analysis.SpecialNeeds = append(analysis.SpecialNeeds, "wheelchair accessible routes")
	}
	return analysis
}

func groupType(group models.TravelGroup) string {
	switch {
	case group.HasChildren:
		return "family"
	case group.HasElderly:
		return "seniors"
	case group.Size > 4:
		return "large group"
	case group.Size == 2:
		return "couple"
	case group.Size <= 1:
		return "solo"
	default:
		return "small group"
	}
}

func season(month time.Month) string {
	switch month {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}
