package safety

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"voyago/models"
	"voyago/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler exposes the safety engine over HTTP.
type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

type validateRequest struct {
	UserContext models.UserContext `json:"userContext"`
	Itinerary   models.Itinerary   `json:"itinerary"`
}

// Validate handles POST /api/safety/validate.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserContext.Destination == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "userContext.destination is required")
		return
	}

	result := h.engine.ValidateContext(r.Context(), req.UserContext, &req.Itinerary)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"result":  result,
		"summary": Summarize(result),
	})
}

// Weather handles GET /api/safety/weather?destination=...&days=5.
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	destination := r.URL.Query().Get("destination")
	if destination == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "destination is required")
		return
	}
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days <= 0 || days > 14 {
		days = 5
	}

	utils.RespondWithJSON(w, http.StatusOK, h.engine.CheckWeatherSafety(r.Context(), destination, days))
}

// Fallbacks handles POST /api/safety/fallbacks.
func (h *Handler) Fallbacks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var restrictions []models.Restriction
	if err := json.NewDecoder(r.Body).Decode(&restrictions); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fallbacks := GenerateSafeFallback(restrictions)
	if fallbacks == nil {
		fallbacks = []models.Fallback{}
	}
	utils.RespondWithJSON(w, http.StatusOK, fallbacks)
}

// Status handles GET /api/safety-status, the engine liveness check.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"engine":    "Real-Time Context & Safety Engine",
		"status":    "ACTIVE",
		"principle": "Safety always overrides personalization",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Guidelines handles POST /api/safety/guidelines.
func (h *Handler) Guidelines(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var group models.TravelGroup
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"guidelines": GroupGuidelines(group)})
}
