package feedback

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"voyago/db"
	"voyago/models"
	"voyago/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type feedbackInput struct {
	ItineraryID string  `json:"itineraryId"`
	Feedback    string  `json:"feedback"`
	Rating      float64 `json:"rating"`
	Completed   bool    `json:"completed"`
}

// SubmitFeedback handles POST /api/feedback. Marking an itinerary
// completed also flips its status and records its places as visited.
func SubmitFeedback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input feedbackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.ItineraryID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "itineraryId is required")
		return
	}
	if input.Rating < 0 || input.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "rating must be between 0 and 5")
		return
	}

	var itinerary models.Itinerary
	err := db.ItineraryCollection.FindOne(r.Context(),
		bson.M{"itineraryid": input.ItineraryID, "user_id": userID}).Decode(&itinerary)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "itinerary not found")
		return
	}

	entry := models.FeedbackEntry{
		ItineraryID: input.ItineraryID,
		Feedback:    strings.TrimSpace(input.Feedback),
		Rating:      input.Rating,
		Timestamp:   time.Now(),
	}
	if _, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$push": bson.M{"preferences.feedback_history": entry}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not record feedback")
		return
	}

	if input.Completed {
		completeItinerary(r, userID, &itinerary, input.Rating)
	}

	utils.SendResponse(w, http.StatusCreated, entry, "Feedback recorded", nil)
}

// completeItinerary marks the itinerary done and adds each scheduled
// place to the traveler's visited history, feeding the novelty factor
// of future scoring.
func completeItinerary(r *http.Request, userID string, itinerary *models.Itinerary, rating float64) {
	db.ItineraryCollection.UpdateOne(r.Context(),
		bson.M{"itineraryid": itinerary.ItineraryID},
		bson.M{"$set": bson.M{"status": models.StatusCompleted, "updated_at": time.Now()}})

	var visited []interface{}
	for _, day := range itinerary.Days {
		for _, act := range day.Activities {
			visited = append(visited, models.VisitedPlace{
				PlaceID:   act.PlaceID,
				PlaceName: act.PlaceName,
				VisitDate: day.Date,
				Rating:    rating,
			})
		}
	}
	if len(visited) == 0 {
		return
	}
	db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$push": bson.M{"preferences.visited_places": bson.M{"$each": visited}}})
}

// GetFeedback handles GET /api/feedback.
func GetFeedback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "profile not found")
		return
	}
	entries := user.Prefs.Feedback
	if entries == nil {
		entries = []models.FeedbackEntry{}
	}
	utils.RespondWithJSON(w, http.StatusOK, entries)
}

// Insights summarizes a traveler's feedback history.
type Insights struct {
	TotalTrips       int      `json:"totalTrips"`
	CompletedTrips   int      `json:"completedTrips"`
	AverageRating    float64  `json:"averageRating"`
	TopDestinations  []string `json:"topDestinations"`
	PlacesVisited    int      `json:"placesVisited"`
	FeedbackMessages int      `json:"feedbackMessages"`
}

// GetInsights handles GET /api/feedback/insights.
func GetInsights(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "profile not found")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100)
	cursor, err := db.ItineraryCollection.Find(r.Context(), bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not load insights")
		return
	}
	defer cursor.Close(r.Context())

	var itineraries []models.Itinerary
	if err := cursor.All(r.Context(), &itineraries); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not load insights")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, buildInsights(user, itineraries))
}

func buildInsights(user models.User, itineraries []models.Itinerary) Insights {
	insights := Insights{
		TotalTrips:       len(itineraries),
		PlacesVisited:    len(user.Prefs.VisitedPlaces),
		FeedbackMessages: len(user.Prefs.Feedback),
	}

	destinations := map[string]int{}
	for _, it := range itineraries {
		if it.Status == models.StatusCompleted {
			insights.CompletedTrips++
		}
		destinations[it.Destination]++
	}
	var names []string
	for dest := range destinations {
		names = append(names, dest)
	}
	sort.Slice(names, func(i, j int) bool {
		if destinations[names[i]] != destinations[names[j]] {
			return destinations[names[i]] > destinations[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > 3 {
		names = names[:3]
	}
	insights.TopDestinations = names

	if n := len(user.Prefs.Feedback); n > 0 {
		sum := 0.0
		for _, f := range user.Prefs.Feedback {
			sum += f.Rating
		}
		insights.AverageRating = sum / float64(n)
	}
	return insights
}
