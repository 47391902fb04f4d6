package models

// Warning severities
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Warning is a non-blocking safety observation surfaced to the traveler.
type Warning struct {
	Type     string `json:"type" bson:"type"`
	Message  string `json:"message" bson:"message"`
	Place    string `json:"place,omitempty" bson:"place,omitempty"`
	Date     string `json:"date,omitempty" bson:"date,omitempty"`
	Severity string `json:"severity" bson:"severity"`
}

// Restriction is a hard safety violation; it blocks automatic approval
// regardless of score.
type Restriction struct {
	Type    string   `json:"type" bson:"type"`
	Message string   `json:"message" bson:"message"`
	Place   string   `json:"place,omitempty" bson:"place,omitempty"`
	Dates   []string `json:"dates,omitempty" bson:"dates,omitempty"`
}

// Suggestion is a recommended remediation attached to a warning.
type Suggestion struct {
	Suggestion string `json:"suggestion" bson:"suggestion"`
	Action     string `json:"action" bson:"action"`
}

// Fallback is a bundle of alternative activity suggestions offered when a
// restriction removes an option.
type Fallback struct {
	Type        string   `json:"type" bson:"type"`
	Message     string   `json:"message" bson:"message"`
	Suggestions []string `json:"suggestions" bson:"suggestions"`
}

type TravelGroup struct {
	HasChildren       bool   `json:"hasChildren" bson:"has_children"`
	HasElderly        bool   `json:"hasElderly" bson:"has_elderly"`
	HasMobilityIssues bool   `json:"hasMobilityIssues" bson:"has_mobility_issues"`
	Size              int    `json:"size" bson:"size"`
	AccessibilityType string `json:"accessibilityType,omitempty" bson:"accessibility_type,omitempty"`
}

type ContextAnalysis struct {
	TripDuration    int      `json:"tripDuration" bson:"trip_duration"`
	BudgetCategory  string   `json:"budgetCategory" bson:"budget_category"`
	TimeAvailable   string   `json:"timeAvailable" bson:"time_available"`
	SeasonalContext string   `json:"seasonalContext" bson:"seasonal_context"`
	GroupType       string   `json:"groupType" bson:"group_type"`
	SpecialNeeds    []string `json:"specialNeeds" bson:"special_needs"`
}

// SafetyValidationResult is the verdict of the context-safety engine.
// Invariant: Approved holds iff SafetyScore >= 50 and Restrictions is empty.
type SafetyValidationResult struct {
	Approved         bool            `json:"approved" bson:"approved"`
	SafetyScore      int             `json:"safetyScore" bson:"safety_score"`
	Warnings         []Warning       `json:"warnings" bson:"warnings"`
	Restrictions     []Restriction   `json:"restrictions" bson:"restrictions"`
	SafeAlternatives []Suggestion    `json:"safeAlternatives" bson:"safe_alternatives"`
	ContextAnalysis  ContextAnalysis `json:"contextAnalysis" bson:"context_analysis"`
}

// Safety statuses by score band.
const (
	SafetyStatusSafe     = "SAFE"
	SafetyStatusModerate = "MODERATE"
	SafetyStatusCaution  = "CAUTION"
	SafetyStatusUnsafe   = "UNSAFE"
)

// UserContext is the situational input to safety validation.
type UserContext struct {
	Destination   string         `json:"destination"`
	StartDate     string         `json:"startDate"`
	EndDate       string         `json:"endDate"`
	TotalBudget   float64        `json:"totalBudget"`
	TravelGroup   TravelGroup    `json:"travelGroup"`
	VisitedPlaces []VisitedPlace `json:"visitedPlaces"`
	Interests     []string       `json:"interests"`
}
