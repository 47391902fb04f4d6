package trip

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"voyago/db"
	"voyago/models"
	"voyago/mq"
	"voyago/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler exposes the planner over HTTP.
type Handler struct {
	planner *Planner
}

func NewHandler(planner *Planner) *Handler {
	return &Handler{planner: planner}
}

// GenerateItinerary handles POST /api/itineraries/generate.
func (h *Handler) GenerateItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	itinerary, err := h.planner.Generate(r.Context(), userID, req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.SendResponse(w, http.StatusCreated, itinerary, "Itinerary generated", nil)
}

// ListItineraries handles GET /api/itineraries.
func (h *Handler) ListItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	itineraries, err := ListByUser(r.Context(), userID, 20)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not load itineraries")
		return
	}
	if itineraries == nil {
		itineraries = []models.Itinerary{}
	}
	utils.RespondWithJSON(w, http.StatusOK, itineraries)
}

// GetItinerary handles GET /api/itineraries/:id.
func (h *Handler) GetItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	itinerary, err := GetByID(r.Context(), userID, ps.ByName("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "itinerary not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "could not load itinerary")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, itinerary)
}

// updateRequest lists the fields a client may change after generation.
type updateRequest struct {
	Days   []models.Day `json:"days"`
	Status string       `json:"status"`
}

// UpdateItinerary handles PUT /api/itineraries/:id.
func (h *Handler) UpdateItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	itineraryID := ps.ByName("id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if req.Days != nil {
		update["days"] = req.Days
	}
	switch req.Status {
	case "":
	case models.StatusDraft, models.StatusActive, models.StatusCompleted:
		update["status"] = req.Status
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "invalid status")
		return
	}

	res, err := db.ItineraryCollection.UpdateOne(r.Context(),
		bson.M{"itineraryid": itineraryID, "user_id": userID},
		bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not update itinerary")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "itinerary not found")
		return
	}

	itinerary, err := GetByID(r.Context(), userID, itineraryID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not load itinerary")
		return
	}
	utils.SendResponse(w, http.StatusOK, itinerary, "Itinerary updated", nil)
}

// DeleteItinerary handles DELETE /api/itineraries/:id.
func (h *Handler) DeleteItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	itineraryID := ps.ByName("id")

	res, err := db.ItineraryCollection.DeleteOne(r.Context(), bson.M{"itineraryid": itineraryID, "user_id": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not delete itinerary")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "itinerary not found")
		return
	}

	mq.Emit(context.Background(), mq.ItineraryEvent{
		Event:       "itinerary.deleted",
		ItineraryID: itineraryID,
		UserID:      userID,
	})
	utils.SendResponse(w, http.StatusOK, nil, "Itinerary deleted", nil)
}

// GetPlaceDetails handles GET /api/places/details?name=...&city=...
func (h *Handler) GetPlaceDetails(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	name := r.URL.Query().Get("name")
	city := r.URL.Query().Get("city")
	if name == "" || city == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name and city are required")
		return
	}

	details, err := h.planner.maps.GetPlaceDetails(r.Context(), name, city)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not load place details")
		return
	}
	description, _ := h.planner.llm.DescribePlace(r.Context(), name, city)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"details":     details,
		"description": description,
	})
}
