package prefs

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"voyago/db"
	"voyago/models"
	"voyago/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProfile handles GET /api/profile.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "could not load profile")
		return
	}
	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, user)
}

type profileUpdate struct {
	Name string `json:"name"`
}

// UpdateProfile handles PUT /api/profile.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input profileUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	res, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"name": input.Name, "updated_at": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not update profile")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "profile not found")
		return
	}
	utils.SendResponse(w, http.StatusOK, nil, "Profile updated", nil)
}

// UpdatePreferences handles PUT /api/profile/preferences. The stored
// vector is replaced wholesale; interest weights are clamped to [0,1].
func UpdatePreferences(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var prefs models.PreferenceVector
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	normalizePreferences(&prefs)
	prefs.LastUpdated = time.Now()

	res, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"preferences": prefs, "updated_at": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not update preferences")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "profile not found")
		return
	}
	utils.SendResponse(w, http.StatusOK, prefs, "Preferences updated", nil)
}

func normalizePreferences(prefs *models.PreferenceVector) {
	switch prefs.TravelPace {
	case models.PaceSlow, models.PaceModerate, models.PaceFast:
	default:
		prefs.TravelPace = models.PaceModerate
	}
	switch prefs.BudgetLevel {
	case models.BudgetLow, models.BudgetMid, models.BudgetHigh:
	default:
		prefs.BudgetLevel = models.BudgetMid
	}
	if prefs.GroupSize < 1 {
		prefs.GroupSize = 1
	}
	if prefs.Interests == nil {
		prefs.Interests = models.DefaultPreferences().Interests
	}
	for key, weight := range prefs.Interests {
		if weight < 0 {
			prefs.Interests[key] = 0
		} else if weight > 1 {
			prefs.Interests[key] = 1
		}
	}
}

type visitedPlaceInput struct {
	PlaceID   string  `json:"placeId"`
	PlaceName string  `json:"placeName"`
	Rating    float64 `json:"rating"`
}

// AddVisitedPlace handles POST /api/profile/visited.
func AddVisitedPlace(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input visitedPlaceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.PlaceName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "placeName is required")
		return
	}

	visited := models.VisitedPlace{
		PlaceID:   input.PlaceID,
		PlaceName: input.PlaceName,
		VisitDate: time.Now(),
		Rating:    input.Rating,
	}
	res, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{
			"$push": bson.M{"preferences.visited_places": visited},
			"$set":  bson.M{"preferences.last_updated": time.Now()},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not record visit")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "profile not found")
		return
	}
	utils.SendResponse(w, http.StatusCreated, visited, "Visit recorded", nil)
}
