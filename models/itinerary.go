package models

import "time"

// Activity is a CandidatePlace placed into a schedule slot. Start/end times
// are "HH:MM" strings; end times are not wrapped past 24:00.
type Activity struct {
	PlaceID             string       `json:"placeId" bson:"place_id"`
	PlaceName           string       `json:"placeName" bson:"place_name"`
	City                string       `json:"city,omitempty" bson:"city,omitempty"`
	Category            string       `json:"category" bson:"category"`
	Description         string       `json:"description" bson:"description"`
	StartTime           string       `json:"startTime" bson:"start_time"`
	EndTime             string       `json:"endTime" bson:"end_time"`
	Duration            int          `json:"duration" bson:"duration"` // minutes
	Cost                float64      `json:"cost" bson:"cost"`
	Coordinates         *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	Photos              []string     `json:"photos" bson:"photos"`
	Rating              float64      `json:"rating" bson:"rating"`
	Tips                string       `json:"tips,omitempty" bson:"tips,omitempty"`
	BestTime            string       `json:"bestTime,omitempty" bson:"best_time,omitempty"`
	SustainabilityScore float64      `json:"sustainabilityScore" bson:"sustainability_score"`
	AccessibilityScore  float64      `json:"accessibilityScore" bson:"accessibility_score"`
	AIReasoning         string       `json:"aiReasoning,omitempty" bson:"ai_reasoning,omitempty"`
	Order               int          `json:"order" bson:"order"`
}

type Day struct {
	Date          time.Time  `json:"date" bson:"date"`
	Theme         string     `json:"theme" bson:"theme"`
	Activities    []Activity `json:"activities" bson:"activities"`
	TotalCost     float64    `json:"totalCost" bson:"total_cost"`
	TotalDistance float64    `json:"totalDistance" bson:"total_distance"` // km
}

// Itinerary statuses
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

type Itinerary struct {
	ItineraryID    string     `json:"itineraryid" bson:"itineraryid"`
	UserID         string     `json:"user_id" bson:"user_id"`
	Destination    string     `json:"destination" bson:"destination"`
	StartDate      time.Time  `json:"start_date" bson:"start_date"`
	EndDate        time.Time  `json:"end_date" bson:"end_date"`
	Days           []Day      `json:"days" bson:"days"`
	TotalBudget    float64    `json:"totalBudget" bson:"total_budget"`
	AIExplanation  string     `json:"aiExplanation" bson:"ai_explanation"`
	SafetyScore    int        `json:"safetyScore" bson:"safety_score"`
	SafetyStatus   string     `json:"safetyStatus" bson:"safety_status"`
	SafetyWarnings []Warning  `json:"safetyWarnings" bson:"safety_warnings"`
	SafeFallbacks  []Fallback `json:"safeFallbacks" bson:"safe_fallbacks"`
	Status         string     `json:"status" bson:"status"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" bson:"updated_at"`
}
