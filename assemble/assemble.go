package assemble

import (
	"fmt"
	"strings"
	"time"

	"voyago/llm"
	"voyago/mapsvc"
	"voyago/models"
)

const (
	dayStartHour      = 9
	activitiesPerDay  = 4
	slotGapMinutes    = 30
	defaultDuration   = 120
	defaultCost       = 500.0
	restaurantCost    = 800.0
	restaurantMinutes = 90
)

// dayThemes is the fixed rotation the deterministic path cycles
// through; each slot of a day draws from the matching category.
type dayTheme struct {
	name       string
	categories []string
}

var dayThemes = []dayTheme{
	{"Heritage & Culture", []string{"monument", "temple", "restaurant", "attraction"}},
	{"Local Flavors & Temples", []string{"restaurant", "temple", "market", "park"}},
	{"Art & Cuisine", []string{"museum", "restaurant", "attraction", "temple"}},
	{"Nature & Spirituality", []string{"park", "temple", "restaurant", "monument"}},
	{"Hidden Gems", []string{"market", "temple", "restaurant", "museum"}},
}

// fallbackCategories is the priority order used to fill a slot when
// the ranked pool runs out of its theme category.
var fallbackCategories = []string{
	"attraction", "monument", "temple", "restaurant", "museum", "park", "market",
}

// Assembler turns ranked places or an AI draft into scheduled days.
type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// BuildFromDraft schedules the places an AI draft proposes, one day per
// draft day. Draft days without a theme get a generic label.
func (a *Assembler) BuildFromDraft(draft *llm.Draft, destination string, startDate time.Time) []models.Day {
	var days []models.Day
	for i, draftDay := range draft.Days {
		theme := draftDay.Theme
		if theme == "" {
			theme = fmt.Sprintf("Day %d Exploration", i+1)
		}

		day := models.Day{
			Date:  startDate.AddDate(0, 0, i),
			Theme: theme,
		}

		clock := dayStartHour * 60
		for order, place := range draftDay.Places {
			duration := place.Duration
			if duration <= 0 {
				duration = defaultDuration
			}
			cost := place.EstimatedCost
			if cost == 0 && strings.EqualFold(place.Category, "restaurant") {
				cost = restaurantCost
			}
			city := place.City
			if city == "" {
				city = destination
			}

			activity := models.Activity{
				PlaceName:   place.PlaceName,
				City:        city,
				Category:    strings.ToLower(place.Category),
				Description: place.Importance,
				StartTime:   FormatClock(clock),
				EndTime:     FormatClock(clock + duration),
				Duration:    duration,
				Cost:        cost,
				Photos:      []string{mapsvc.PlaceholderImage(place.Category)},
				BestTime:    timeOfDayLabel(clock),
				Order:       order + 1,
			}
			day.Activities = append(day.Activities, activity)
			day.TotalCost += cost
			clock += duration + slotGapMinutes
		}
		days = append(days, day)
	}
	return days
}

// BuildFromSearch schedules ranked candidates across the trip using the
// fixed theme rotation. Each day fills one slot per theme category,
// each place is used at most once, and an exhausted category falls back
// to the global priority list.
func (a *Assembler) BuildFromSearch(ranked []models.ScoredPlace, destination string, startDate time.Time, days int) []models.Day {
	used := make(map[string]bool)
	var out []models.Day

	for i := 0; i < days; i++ {
		theme := dayThemes[i%len(dayThemes)]
		day := models.Day{
			Date:  startDate.AddDate(0, 0, i),
			Theme: fmt.Sprintf("%s - Day %d", theme.name, i+1),
		}

		clock := dayStartHour * 60
		for slot := 0; slot < activitiesPerDay && slot < len(theme.categories); slot++ {
			place, category, ok := pickForSlot(ranked, theme.categories[slot], used)
			if !ok {
				continue
			}

			duration := place.EstimatedDuration
			cost := place.EstimatedCost
			if category == "restaurant" {
				if duration <= 0 {
					duration = restaurantMinutes
				}
				if cost == 0 {
					cost = restaurantCost
				}
			}
			if duration <= 0 {
				duration = defaultDuration
			}
			if cost == 0 && !isFree(category) {
				cost = defaultCost
			}

			coords := place.Coordinates
			photos := place.Photos
			if len(photos) == 0 {
				photos = []string{mapsvc.PlaceholderImage(category)}
			}

			activity := models.Activity{
				PlaceID:     place.ID,
				PlaceName:   place.Name,
				City:        destination,
				Category:    category,
				StartTime:   FormatClock(clock),
				EndTime:     FormatClock(clock + duration),
				Duration:    duration,
				Cost:        cost,
				Coordinates: &coords,
				Photos:      photos,
				Rating:      place.Rating,
				AIReasoning: place.Score.Reasoning,
				BestTime:    timeOfDayLabel(clock),
				Order:       len(day.Activities) + 1,
			}
			day.Activities = append(day.Activities, activity)
			day.TotalCost += cost
			clock += duration + slotGapMinutes
		}
		out = append(out, day)
	}
	return out
}

// pickForSlot takes the best unused place in the slot's category, then
// walks the fallback priority, reporting which category the place was
// actually drawn from.
func pickForSlot(ranked []models.ScoredPlace, category string, used map[string]bool) (models.ScoredPlace, string, bool) {
	if place, ok := takeNext(ranked, category, used); ok {
		return place, category, true
	}
	for _, cat := range fallbackCategories {
		if cat == category {
			continue
		}
		if place, ok := takeNext(ranked, cat, used); ok {
			return place, cat, true
		}
	}
	for _, place := range ranked {
		if !used[place.ID] {
			used[place.ID] = true
			return place, primaryCategory(place.CandidatePlace), true
		}
	}
	return models.ScoredPlace{}, "", false
}

// takeNext claims the highest-ranked unused place in a category.
func takeNext(ranked []models.ScoredPlace, category string, used map[string]bool) (models.ScoredPlace, bool) {
	for _, place := range ranked {
		if used[place.ID] || !hasCategory(place.CandidatePlace, category) {
			continue
		}
		used[place.ID] = true
		return place, true
	}
	return models.ScoredPlace{}, false
}

func hasCategory(place models.CandidatePlace, category string) bool {
	for _, c := range place.Categories {
		if strings.EqualFold(strings.TrimSpace(c), category) {
			return true
		}
	}
	return false
}

func primaryCategory(place models.CandidatePlace) string {
	if len(place.Categories) > 0 {
		return strings.ToLower(place.Categories[0])
	}
	return "attraction"
}

// Parks and open attractions can legitimately cost nothing; everything
// else with a zero cost gets the default estimate.
func isFree(category string) bool {
	return category == "park" || category == "attraction"
}

// FormatClock renders minutes-since-midnight as HH:MM. Times past
// midnight keep counting (25:30), making overruns visible instead of
// silently wrapping.
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func timeOfDayLabel(startMinutes int) string {
	switch hour := startMinutes / 60; {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}
