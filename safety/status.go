package safety

import (
	"context"

	"voyago/models"
)

// WeatherSafety is the standalone weather verdict for a destination.
type WeatherSafety struct {
	Safe     bool                 `json:"safe"`
	Forecast []models.ForecastDay `json:"forecast,omitempty"`
	Alerts   []models.Warning     `json:"alerts,omitempty"`
}

// CheckWeatherSafety evaluates the forecast for a destination on its
// own, outside full validation. Any failure along the way degrades to
// a safe verdict rather than an error.
func (e *Engine) CheckWeatherSafety(ctx context.Context, destination string, days int) WeatherSafety {
	safe := WeatherSafety{Safe: true}
	if e.weather == nil || !e.weather.Configured() {
		return safe
	}

	coords, err := e.weather.Geocode(ctx, destination)
	if err != nil {
		return safe
	}
	forecast, err := e.weather.Forecast(ctx, coords.Lat, coords.Lng, days)
	if err != nil {
		return safe
	}
	safe.Forecast = forecast

	for _, f := range forecast {
		date := f.Date.Format("2006-01-02")
		switch {
		case e.thresholds.ExtremeWeatherCodes[f.ConditionCode]:
			safe.Safe = false
			safe.Alerts = append(safe.Alerts, models.Warning{
				Type:     "WEATHER_EXTREME",
				Message:  "Extreme weather conditions forecast: " + f.Condition,
				Date:     date,
				Severity: models.SeverityHigh,
			})
		case f.Temperature.Max > e.thresholds.MaxTemperature, f.Temperature.Min < e.thresholds.MinTemperature:
			safe.Alerts = append(safe.Alerts, models.Warning{
				Type:     "WEATHER_TEMPERATURE",
				Message:  "Temperatures outside the comfortable range",
				Date:     date,
				Severity: models.SeverityMedium,
			})
		case f.WindSpeed > e.thresholds.MaxWindSpeed:
			safe.Alerts = append(safe.Alerts, models.Warning{
				Type:     "WEATHER_WIND",
				Message:  "Strong winds forecast",
				Date:     date,
				Severity: models.SeverityLow,
			})
		}
	}
	return safe
}

// GenerateSafeFallback proposes alternatives for each restriction, one
// bundle per restriction in order.
func GenerateSafeFallback(restrictions []models.Restriction) []models.Fallback {
	var out []models.Fallback
	for _, r := range restrictions {
		switch r.Type {
		case "WEATHER_EXTREME":
			out = append(out, models.Fallback{
				Type:    r.Type,
				Message: "Severe weather makes outdoor plans risky",
				Suggestions: []string{
					"Visit indoor museums and galleries",
					"Book a covered market or food hall tour",
					"Schedule a spa or wellness afternoon",
				},
			})
		case "CHILD_UNSAFE":
			out = append(out, models.Fallback{
				Type:    r.Type,
				Message: "Some venues are not suitable for children",
				Suggestions: []string{
					"Swap in a science or children's museum",
					"Visit a zoo, aquarium or city park",
					"Look for family-friendly evening shows",
				},
			})
		case "MOBILITY_CONCERN":
			out = append(out, models.Fallback{
				Type:    r.Type,
				Message: "Some activities are hard to access",
				Suggestions: []string{
					"Choose venues with step-free access",
					"Use accessible transport between stops",
					"Replace hikes with scenic drives or boat tours",
				},
			})
		default:
			out = append(out, models.Fallback{
				Type:    r.Type,
				Message: "A safer alternative is recommended",
				Suggestions: []string{
					"Pick well-reviewed central locations",
					"Travel during daylight hours",
					"Keep emergency contacts at hand",
				},
			})
		}
	}
	return out
}

// StatusSummary maps a validation result onto a display band.
type StatusSummary struct {
	Status  string `json:"status"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
	Message string `json:"message"`
}

// Summarize buckets the safety score into a traveler-facing status.
func Summarize(result models.SafetyValidationResult) StatusSummary {
	switch score := result.SafetyScore; {
	case score < 50:
		return StatusSummary{
			Status:  models.SafetyStatusUnsafe,
			Icon:    "🚨",
			Color:   "red",
			Message: "This plan has serious safety issues and needs changes",
		}
	case score < 70:
		return StatusSummary{
			Status:  models.SafetyStatusCaution,
			Icon:    "⚠️",
			Color:   "orange",
			Message: "Review the warnings before confirming this plan",
		}
	case score < 90:
		return StatusSummary{
			Status:  models.SafetyStatusModerate,
			Icon:    "🟡",
			Color:   "yellow",
			Message: "Mostly safe, with a few points to keep in mind",
		}
	default:
		return StatusSummary{
			Status:  models.SafetyStatusSafe,
			Icon:    "✅",
			Color:   "green",
			Message: "This plan looks safe for your group",
		}
	}
}

// GroupGuidelines returns fixed preparation tips for a travel group.
func GroupGuidelines(group models.TravelGroup) []string {
	var tips []string
	if group.HasChildren {
		tips = append(tips,
			"Carry snacks, water and a basic first-aid kit",
			"Plan shorter activity blocks with breaks",
			"Note the nearest pediatric clinic at each stop",
		)
	}
	if group.HasElderly {
		tips = append(tips,
			"Prefer venues with seating and elevators",
			"Keep daily walking under comfortable limits",
			"Schedule a rest window after lunch",
		)
	}
	if group.HasMobilityIssues {
		tips = append(tips,
			"Confirm step-free access before booking",
			"Reserve accessible transport in advance",
		)
	}
	if group.Size > 6 {
		tips = append(tips,
			"Book group tickets ahead to skip queues",
			"Agree on a meeting point at each venue",
		)
	}
	if len(tips) == 0 {
		tips = append(tips,
			"Keep digital copies of travel documents",
			"Share your itinerary with someone at home",
		)
	}
	return tips
}
