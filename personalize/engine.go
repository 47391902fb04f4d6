package personalize

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"voyago/models"
)

// Weights defines the contribution of each sub-score to the final score.
type Weights struct {
	InterestMatch       float64
	AccessibilityMatch  float64
	BudgetMatch         float64
	SustainabilityMatch float64
	NoveltyScore        float64
	TimeOptimization    float64
}

// DefaultWeights is the fixed production weighting.
func DefaultWeights() Weights {
	return Weights{
		InterestMatch:       0.30,
		AccessibilityMatch:  0.20,
		BudgetMatch:         0.15,
		SustainabilityMatch: 0.10,
		NoveltyScore:        0.15,
		TimeOptimization:    0.10,
	}
}

type budgetRange struct {
	min, max float64
}

var budgetRanges = map[string]budgetRange{
	models.BudgetLow:  {0, 500},
	models.BudgetMid:  {500, 2000},
	models.BudgetHigh: {2000, math.Inf(1)},
}

var paceMultipliers = map[string]float64{
	models.PaceSlow:     1.5,
	models.PaceModerate: 1.0,
	models.PaceFast:     0.7,
}

const maxRanked = 50

// Engine scores and ranks candidate places against a preference vector.
// Stateless; safe for concurrent use.
type Engine struct {
	weights Weights
}

func NewEngine(w Weights) *Engine {
	return &Engine{weights: w}
}

// ScorePlace computes the six sub-scores and their weighted sum. Pure
// function of its inputs; identical inputs yield identical results.
func (e *Engine) ScorePlace(prefs models.PreferenceVector, place models.CandidatePlace) models.ScoreResult {
	var b models.ScoreBreakdown
	var reasoning []string

	// 1. Interest matching: average preference weight over known categories.
	interestSum, matched := 0.0, 0
	for _, category := range place.Categories {
		key := strings.ToLower(strings.ReplaceAll(category, " ", ""))
		if weight, ok := prefs.Interests[key]; ok {
			interestSum += weight
			matched++
		}
	}
	if matched > 0 {
		b.InterestMatch = interestSum / float64(matched)
	} else {
		b.InterestMatch = 0.5
	}
	if len(place.Categories) > 0 {
		reasoning = append(reasoning, fmt.Sprintf("Interest match: %.0f%% based on %s",
			b.InterestMatch*100, strings.Join(place.Categories, ", ")))
	}

	// 2. Accessibility: multiplicative penalties for unmet needs.
	b.AccessibilityMatch = 1.0
	if prefs.Accessibility.WheelchairFriendly && !place.WheelchairAccessible {
		b.AccessibilityMatch *= 0.3
		reasoning = append(reasoning, "Not wheelchair accessible")
	}
	if len(prefs.Accessibility.DietaryRestrictions) > 0 && !supportsAnyDiet(place.DietaryOptions, prefs.Accessibility.DietaryRestrictions) {
		b.AccessibilityMatch *= 0.7
		reasoning = append(reasoning, "Limited dietary options")
	}

	// 3. Budget band match.
	if r, ok := budgetRanges[prefs.BudgetLevel]; ok && place.EstimatedCost > 0 {
		switch {
		case place.EstimatedCost >= r.min && place.EstimatedCost < r.max:
			b.BudgetMatch = 1.0
			reasoning = append(reasoning, fmt.Sprintf("Within %s budget", prefs.BudgetLevel))
		case place.EstimatedCost < r.min:
			b.BudgetMatch = 0.8
			reasoning = append(reasoning, "Below budget range")
		default:
			b.BudgetMatch = 0.4
			reasoning = append(reasoning, "Above budget range")
		}
	} else {
		b.BudgetMatch = 0.7
	}

	// 4. Sustainability.
	if place.SustainabilityScore != nil {
		interest, ok := prefs.Interests["sustainability"]
		if !ok {
			interest = 0.5
		}
		b.SustainabilityMatch = math.Min(1.0, (*place.SustainabilityScore/10)*(0.5+interest))
		reasoning = append(reasoning, fmt.Sprintf("Sustainability: %.0f/10", *place.SustainabilityScore))
	} else {
		b.SustainabilityMatch = 0.5
	}

	// 5. Novelty: previously visited places score low.
	if hasVisited(prefs.VisitedPlaces, place) {
		b.NoveltyScore = 0.2
		reasoning = append(reasoning, "Previously visited - lower priority")
	} else {
		b.NoveltyScore = 1.0
		if len(prefs.VisitedPlaces) > 0 {
			reasoning = append(reasoning, "New experience")
		}
	}

	// 6. Time optimization under the traveler's pace.
	if mult, ok := paceMultipliers[prefs.TravelPace]; ok && place.EstimatedDuration > 0 {
		adjusted := float64(place.EstimatedDuration) * mult
		if adjusted <= 180 {
			b.TimeOptimization = 1.0
		} else {
			b.TimeOptimization = math.Max(0.5, 1-(adjusted-180)/300)
		}
		reasoning = append(reasoning, fmt.Sprintf("Duration: %dmin (%s pace)", place.EstimatedDuration, prefs.TravelPace))
	} else {
		b.TimeOptimization = 0.8
	}

	final := b.InterestMatch*e.weights.InterestMatch +
		b.AccessibilityMatch*e.weights.AccessibilityMatch +
		b.BudgetMatch*e.weights.BudgetMatch +
		b.SustainabilityMatch*e.weights.SustainabilityMatch +
		b.NoveltyScore*e.weights.NoveltyScore +
		b.TimeOptimization*e.weights.TimeOptimization

	return models.ScoreResult{
		FinalScore: math.Round(final*100) / 100,
		Breakdown:  b,
		Reasoning:  strings.Join(reasoning, " | "),
	}
}

// RankPlaces scores every candidate, sorts descending by final score (stable
// on ties) and truncates to the top 50.
func (e *Engine) RankPlaces(places []models.CandidatePlace, prefs models.PreferenceVector) []models.ScoredPlace {
	scored := make([]models.ScoredPlace, 0, len(places))
	for _, p := range places {
		scored = append(scored, models.ScoredPlace{
			CandidatePlace: p,
			Score:          e.ScorePlace(prefs, p),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score.FinalScore > scored[j].Score.FinalScore
	})

	if len(scored) > maxRanked {
		scored = scored[:maxRanked]
	}
	return scored
}

// GenerateExplanation builds a short justification from the strongest
// preference signals, falling back to a generic sentence.
func (e *Engine) GenerateExplanation(itinerary models.Itinerary, prefs models.PreferenceVector) string {
	var parts []string

	var top []string
	for _, key := range models.InterestKeys {
		if prefs.Interests[key] > 0.6 {
			top = append(top, key)
		}
		if len(top) == 3 {
			break
		}
	}
	if len(top) > 0 {
		parts = append(parts, fmt.Sprintf("Curated based on your interests in %s", strings.Join(top, ", ")))
	}

	if n := len(prefs.VisitedPlaces); n > 0 {
		parts = append(parts, fmt.Sprintf("Avoided %d previously visited locations", n))
	}

	if prefs.BudgetLevel != "" {
		parts = append(parts, fmt.Sprintf("Optimized for %s budget", prefs.BudgetLevel))
	}

	if prefs.Accessibility.WheelchairFriendly {
		parts = append(parts, "All locations are wheelchair accessible")
	}

	if len(parts) == 0 {
		return "Personalized itinerary based on your preferences and travel style."
	}
	return strings.Join(parts, ". ") + "."
}

func supportsAnyDiet(options, restrictions []string) bool {
	for _, opt := range options {
		for _, restriction := range restrictions {
			if strings.EqualFold(opt, restriction) {
				return true
			}
		}
	}
	return false
}

func hasVisited(visited []models.VisitedPlace, place models.CandidatePlace) bool {
	for _, v := range visited {
		if (v.PlaceID != "" && v.PlaceID == place.ID) || (v.PlaceName != "" && v.PlaceName == place.Name) {
			return true
		}
	}
	return false
}
