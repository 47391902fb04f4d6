package guide

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"voyago/llm"
	"voyago/trip"
	"voyago/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler answers traveler questions, optionally grounded in one of
// their itineraries.
type Handler struct {
	llm *llm.Client
}

func NewHandler(llmClient *llm.Client) *Handler {
	return &Handler{llm: llmClient}
}

type chatRequest struct {
	Question    string `json:"question"`
	ItineraryID string `json:"itineraryId,omitempty"`
}

// Chat handles POST /api/guide/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "question is required")
		return
	}

	summary := ""
	if req.ItineraryID != "" {
		if itinerary, err := trip.GetByID(r.Context(), userID, req.ItineraryID); err == nil {
			var sb strings.Builder
			fmt.Fprintf(&sb, "Trip to %s, %d days.", itinerary.Destination, len(itinerary.Days))
			for _, day := range itinerary.Days {
				fmt.Fprintf(&sb, " %s: %s (%d stops).", day.Date.Format("Jan 2"), day.Theme, len(day.Activities))
			}
			summary = sb.String()
		}
	}

	answer, err := h.llm.GuideChat(r.Context(), req.Question, summary)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "guide is unavailable right now")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"answer": answer})
}

// emergencyNumbers is a static reference set; country-specific data
// would need an external source.
var emergencyNumbers = map[string]utils.M{
	"default": {"police": "112", "ambulance": "112", "fire": "112"},
	"us":      {"police": "911", "ambulance": "911", "fire": "911"},
	"uk":      {"police": "999", "ambulance": "999", "fire": "999"},
	"jp":      {"police": "110", "ambulance": "119", "fire": "119"},
	"in":      {"police": "100", "ambulance": "102", "fire": "101"},
	"au":      {"police": "000", "ambulance": "000", "fire": "000"},
}

// EmergencyInfo handles GET /api/guide/emergency?country=jp.
func EmergencyInfo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	country := strings.ToLower(r.URL.Query().Get("country"))
	numbers, ok := emergencyNumbers[country]
	if !ok {
		numbers = emergencyNumbers["default"]
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"country": country,
		"numbers": numbers,
		"tips": []string{
			"Save your embassy's contact details before traveling",
			"Keep travel insurance documents accessible offline",
			"Learn how to say 'help' and 'doctor' in the local language",
		},
	})
}
