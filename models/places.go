package models

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// CandidatePlace is a point-of-interest returned by an external source,
// not yet scheduled. Ephemeral; created per request.
type CandidatePlace struct {
	ID                   string      `json:"id" bson:"id"`
	Name                 string      `json:"name" bson:"name"`
	Address              string      `json:"address" bson:"address"`
	Coordinates          Coordinates `json:"coordinates" bson:"coordinates"`
	Rating               float64     `json:"rating" bson:"rating"`
	Categories           []string    `json:"categories" bson:"categories"`
	Photos               []string    `json:"photos" bson:"photos"`
	EstimatedCost        float64     `json:"estimatedCost" bson:"estimated_cost"`
	EstimatedDuration    int         `json:"estimatedDuration" bson:"estimated_duration"` // minutes
	SustainabilityScore  *float64    `json:"sustainabilityScore,omitempty" bson:"sustainability_score,omitempty"`
	WheelchairAccessible bool        `json:"wheelchairAccessible" bson:"wheelchair_accessible"`
	DietaryOptions       []string    `json:"dietaryOptions,omitempty" bson:"dietary_options,omitempty"`
	OpeningHours         []string    `json:"openingHours,omitempty" bson:"opening_hours,omitempty"`
	PriceLevel           int         `json:"priceLevel,omitempty" bson:"price_level,omitempty"`
}

// ScoreResult is always attached to a CandidatePlace, never stored alone.
type ScoreResult struct {
	FinalScore float64        `json:"finalScore" bson:"final_score"`
	Breakdown  ScoreBreakdown `json:"breakdown" bson:"breakdown"`
	Reasoning  string         `json:"reasoning" bson:"reasoning"`
}

type ScoreBreakdown struct {
	InterestMatch       float64 `json:"interestMatch" bson:"interest_match"`
	AccessibilityMatch  float64 `json:"accessibilityMatch" bson:"accessibility_match"`
	BudgetMatch         float64 `json:"budgetMatch" bson:"budget_match"`
	SustainabilityMatch float64 `json:"sustainabilityMatch" bson:"sustainability_match"`
	NoveltyScore        float64 `json:"noveltyScore" bson:"novelty_score"`
	TimeOptimization    float64 `json:"timeOptimization" bson:"time_optimization"`
}

// ScoredPlace pairs a candidate with its score for ranking output.
type ScoredPlace struct {
	CandidatePlace `bson:",inline"`
	Score          ScoreResult `json:"score" bson:"score"`
}
