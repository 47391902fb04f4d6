package models

import "time"

type User struct {
	UserID    string           `json:"userid" bson:"userid"`
	Email     string           `json:"email" bson:"email"`
	Name      string           `json:"name" bson:"name"`
	Password  string           `json:"-" bson:"password"`
	Prefs     PreferenceVector `json:"preferences" bson:"preferences"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}

// PreferenceVector holds a traveler's interests, accessibility needs and
// budget/pace preferences. It is owned by the profile flow; the planning
// pipeline treats it as read-only input.
type PreferenceVector struct {
	TravelPace    string             `json:"travelPace" bson:"travel_pace"`
	BudgetLevel   string             `json:"budgetLevel" bson:"budget_level"`
	GroupSize     int                `json:"groupSize" bson:"group_size"`
	Interests     map[string]float64 `json:"interests" bson:"interests"`
	Accessibility Accessibility      `json:"accessibility" bson:"accessibility"`
	VisitedPlaces []VisitedPlace     `json:"visitedPlaces" bson:"visited_places"`
	Feedback      []FeedbackEntry    `json:"feedbackHistory" bson:"feedback_history"`
	LastUpdated   time.Time          `json:"lastUpdated" bson:"last_updated"`
}

type Accessibility struct {
	WheelchairFriendly  bool     `json:"wheelchairFriendly" bson:"wheelchair_friendly"`
	DietaryRestrictions []string `json:"dietaryRestrictions" bson:"dietary_restrictions"`
	LanguagePreferences []string `json:"languagePreferences" bson:"language_preferences"`
	MobilityLevel       string   `json:"mobilityLevel" bson:"mobility_level"`
}

type VisitedPlace struct {
	PlaceID   string    `json:"placeId" bson:"place_id"`
	PlaceName string    `json:"placeName" bson:"place_name"`
	VisitDate time.Time `json:"visitDate" bson:"visit_date"`
	Rating    float64   `json:"rating" bson:"rating"`
}

type FeedbackEntry struct {
	ItineraryID string    `json:"itineraryId" bson:"itinerary_id"`
	Feedback    string    `json:"feedback" bson:"feedback"`
	Rating      float64   `json:"rating" bson:"rating"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

// Pace values
const (
	PaceSlow     = "slow"
	PaceModerate = "moderate"
	PaceFast     = "fast"
)

// Budget levels
const (
	BudgetLow  = "budget"
	BudgetMid  = "mid-range"
	BudgetHigh = "luxury"
)

// InterestKeys are the known interest dimensions; categories outside this set
// do not contribute to interest matching.
var InterestKeys = []string{
	"culture", "nature", "adventure", "food", "history",
	"shopping", "nightlife", "relaxation", "photography", "sustainability",
}

// DefaultPreferences returns the neutral preference vector used for new
// accounts and for requests with no stored profile.
func DefaultPreferences() PreferenceVector {
	interests := make(map[string]float64, len(InterestKeys))
	for _, k := range InterestKeys {
		interests[k] = 0.5
	}
	return PreferenceVector{
		TravelPace:  PaceModerate,
		BudgetLevel: BudgetMid,
		GroupSize:   1,
		Interests:   interests,
		Accessibility: Accessibility{
			LanguagePreferences: []string{"en"},
			MobilityLevel:       "high",
		},
	}
}
