package trip

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"voyago/assemble"
	"voyago/db"
	"voyago/llm"
	"voyago/mapsvc"
	"voyago/models"
	"voyago/mq"
	"voyago/personalize"
	"voyago/safety"
	"voyago/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	maxTripDays      = 14
	enrichBatchSize  = 5
	dateLayout       = "2006-01-02"
	generateDeadline = 90 * time.Second
)

// travelGroups maps the selector values the client sends to concrete
// group compositions.
var travelGroups = map[string]models.TravelGroup{
	"solo":         {Size: 1},
	"couple":       {Size: 2},
	"family-young": {Size: 4, HasChildren: true},
	"family":       {Size: 4},
	"seniors":      {Size: 2, HasElderly: true},
	"friends":      {Size: 5},
	"business":     {Size: 1},
}

// ParseTravelGroup resolves a selector like "family-young" plus an
// accessibility need into a TravelGroup. Unknown selectors fall back
// to solo; "wheelchair" and "mobility" mark the group as having
// mobility issues.
func ParseTravelGroup(selector, accessibility string) models.TravelGroup {
	group, ok := travelGroups[strings.ToLower(strings.TrimSpace(selector))]
	if !ok {
		group = travelGroups["solo"]
	}

	accessibility = strings.ToLower(strings.TrimSpace(accessibility))
	if accessibility == "wheelchair" || accessibility == "mobility" {
		group.HasMobilityIssues = true
	}
	if accessibility == "" {
		accessibility = "none"
	}
	group.AccessibilityType = accessibility
	return group
}

// GenerateRequest is the itinerary generation input.
type GenerateRequest struct {
	Destination        string   `json:"destination"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	TotalBudget        float64  `json:"totalBudget"`
	TravelGroup        string   `json:"travelGroup"`
	AccessibilityNeeds string   `json:"accessibilityNeeds,omitempty"`
	Interests          []string `json:"interests"`
	Source             string   `json:"source,omitempty"` // "ai" (default) or "search"
}

// Planner orchestrates draft generation, assembly, enrichment, safety
// validation and persistence.
type Planner struct {
	llm          *llm.Client
	maps         *mapsvc.Client
	personalizer *personalize.Engine
	assembler    *assemble.Assembler
	safety       *safety.Engine
}

func NewPlanner(llmClient *llm.Client, maps *mapsvc.Client, personalizer *personalize.Engine, assembler *assemble.Assembler, safetyEngine *safety.Engine) *Planner {
	return &Planner{
		llm:          llmClient,
		maps:         maps,
		personalizer: personalizer,
		assembler:    assembler,
		safety:       safetyEngine,
	}
}

// Generate builds, validates and persists a complete itinerary.
func (p *Planner) Generate(ctx context.Context, userID string, req GenerateRequest) (*models.Itinerary, error) {
	if strings.TrimSpace(req.Destination) == "" {
		return nil, fmt.Errorf("destination is required")
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date precedes start date")
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxTripDays {
		return nil, fmt.Errorf("trips are limited to %d days", maxTripDays)
	}

	ctx, cancel := context.WithTimeout(ctx, generateDeadline)
	defer cancel()

	prefs := p.loadPreferences(ctx, userID)
	if len(req.Interests) > 0 {
		boostInterests(&prefs, req.Interests)
	}

	group := ParseTravelGroup(req.TravelGroup, req.AccessibilityNeeds)
	userCtx := models.UserContext{
		Destination:   req.Destination,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalBudget:   req.TotalBudget,
		TravelGroup:   group,
		VisitedPlaces: prefs.VisitedPlaces,
		Interests:     req.Interests,
	}

	var itineraryDays []models.Day
	if strings.EqualFold(req.Source, "search") {
		itineraryDays = p.buildFromSearch(ctx, req, prefs, start, days)
	} else {
		draft, err := p.llm.GenerateDraft(ctx, userCtx, days)
		if err != nil {
			return nil, err
		}
		itineraryDays = p.assembler.BuildFromDraft(draft, req.Destination, start)
	}

	p.enrichDays(ctx, req.Destination, itineraryDays)

	itinerary := &models.Itinerary{
		ItineraryID: utils.GetUUID(),
		UserID:      userID,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Days:        itineraryDays,
		TotalBudget: req.TotalBudget,
		Status:      models.StatusDraft,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	verdict := p.safety.ValidateContext(ctx, userCtx, itinerary)
	itinerary.SafetyScore = verdict.SafetyScore
	itinerary.SafetyStatus = safety.Summarize(verdict).Status
	itinerary.SafetyWarnings = verdict.Warnings
	itinerary.SafeFallbacks = safety.GenerateSafeFallback(verdict.Restrictions)
	if verdict.Approved {
		itinerary.Status = models.StatusActive
	}

	itinerary.AIExplanation = p.explain(ctx, itinerary, prefs, req.Interests)

	if _, err := db.ItineraryCollection.InsertOne(ctx, itinerary); err != nil {
		return nil, fmt.Errorf("saving itinerary: %w", err)
	}

	mq.Emit(ctx, mq.ItineraryEvent{
		Event:       "itinerary.created",
		ItineraryID: itinerary.ItineraryID,
		UserID:      userID,
		Destination: itinerary.Destination,
		SafetyScore: itinerary.SafetyScore,
	})
	return itinerary, nil
}

// categorySearches are the fixed queries the deterministic path issues
// so the theme rotation always has category-diverse candidates.
var categorySearches = []struct {
	category string
	query    string
}{
	{"attraction", "famous tourist attractions landmarks"},
	{"restaurant", "best restaurants famous food"},
	{"temple", "temples religious sites churches mosques"},
	{"monument", "historical monuments heritage sites"},
	{"museum", "museums art galleries"},
	{"park", "parks gardens nature"},
	{"market", "local street food markets"},
}

// buildFromSearch pulls candidates for each fixed category, ranks them
// against the preference vector and schedules the winners.
func (p *Planner) buildFromSearch(ctx context.Context, req GenerateRequest, prefs models.PreferenceVector, start time.Time, days int) []models.Day {
	var candidates []models.CandidatePlace
	seen := map[string]bool{}
	for _, search := range categorySearches {
		found, err := p.maps.SearchPlaces(ctx, search.query, req.Destination)
		if err != nil {
			continue
		}
		for _, c := range found {
			if !seen[c.ID] {
				seen[c.ID] = true
				candidates = append(candidates, tagCategory(c, search.category))
			}
		}
	}

	ranked := p.personalizer.RankPlaces(candidates, prefs)
	return p.assembler.BuildFromSearch(ranked, req.Destination, start, days)
}

// tagCategory puts the search category first so theme matching sees it
// even when the provider returned its own labels.
func tagCategory(place models.CandidatePlace, category string) models.CandidatePlace {
	if len(place.Categories) > 0 && strings.EqualFold(place.Categories[0], category) {
		return place
	}
	tagged := make([]string, 0, len(place.Categories)+1)
	tagged = append(tagged, category)
	for _, c := range place.Categories {
		if !strings.EqualFold(c, category) {
			tagged = append(tagged, c)
		}
	}
	place.Categories = tagged
	return place
}

// enrichDays attaches place details to activities, five lookups at a
// time. Failed lookups leave the activity as assembled.
func (p *Planner) enrichDays(ctx context.Context, destination string, days []models.Day) {
	type slot struct {
		day, act int
	}
	var slots []slot
	for d := range days {
		for a := range days[d].Activities {
			slots = append(slots, slot{d, a})
		}
	}

	for batchStart := 0; batchStart < len(slots); batchStart += enrichBatchSize {
		batchEnd := batchStart + enrichBatchSize
		if batchEnd > len(slots) {
			batchEnd = len(slots)
		}

		var wg sync.WaitGroup
		for _, s := range slots[batchStart:batchEnd] {
			wg.Add(1)
			go func(s slot) {
				defer wg.Done()
				activity := &days[s.day].Activities[s.act]
				details, err := p.maps.GetPlaceDetails(ctx, activity.PlaceName, destination)
				if err != nil || details == nil {
					return
				}
				if activity.PlaceID == "" {
					activity.PlaceID = details.PlaceID
				}
				if activity.Rating == 0 {
					activity.Rating = details.Rating
				}
				if activity.Coordinates == nil && details.Coordinates != nil {
					activity.Coordinates = details.Coordinates
				}
				if len(details.Photos) > 0 {
					activity.Photos = details.Photos
				}
				if details.Address != "" && activity.Tips == "" {
					activity.Tips = "Address: " + details.Address
				}
			}(s)
		}
		wg.Wait()
	}
}

func (p *Planner) explain(ctx context.Context, itinerary *models.Itinerary, prefs models.PreferenceVector, interests []string) string {
	var themes []string
	for _, day := range itinerary.Days {
		themes = append(themes, day.Theme)
	}
	if p.llm.Configured() {
		if out, err := p.llm.ExplainItinerary(ctx, itinerary.Destination, themes, interests); err == nil && out != "" {
			return out
		}
	}
	return p.personalizer.GenerateExplanation(*itinerary, prefs)
}

// loadPreferences reads the stored preference vector, defaulting for
// unknown or anonymous users.
func (p *Planner) loadPreferences(ctx context.Context, userID string) models.PreferenceVector {
	if userID == "" {
		return models.DefaultPreferences()
	}
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("loading preferences for %s: %v", userID, err)
		}
		return models.DefaultPreferences()
	}
	if user.Prefs.Interests == nil {
		return models.DefaultPreferences()
	}
	return user.Prefs
}

// boostInterests raises the weight of explicitly requested interests.
func boostInterests(prefs *models.PreferenceVector, interests []string) {
	for _, interest := range interests {
		key := strings.ToLower(strings.TrimSpace(interest))
		if key == "" {
			continue
		}
		current, ok := prefs.Interests[key]
		if !ok || current < 0.8 {
			prefs.Interests[key] = 0.8
		}
	}
}

// ListByUser returns the newest itineraries for a user.
func ListByUser(ctx context.Context, userID string, limit int64) ([]models.Itinerary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := db.ItineraryCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var itineraries []models.Itinerary
	if err := cursor.All(ctx, &itineraries); err != nil {
		return nil, err
	}
	return itineraries, nil
}

// GetByID fetches one itinerary owned by the user.
func GetByID(ctx context.Context, userID, itineraryID string) (*models.Itinerary, error) {
	var itinerary models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, bson.M{"itineraryid": itineraryID, "user_id": userID}).Decode(&itinerary)
	if err != nil {
		return nil, err
	}
	return &itinerary, nil
}
