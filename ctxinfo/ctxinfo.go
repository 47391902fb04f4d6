package ctxinfo

import (
	"encoding/json"
	"net/http"
	"strconv"

	"voyago/models"
	"voyago/utils"
	"voyago/weather"

	"github.com/julienschmidt/httprouter"
)

// Handler serves situational context for a destination: current
// weather, a short-range forecast and packing/activity advice.
type Handler struct {
	weather *weather.Client
}

func NewHandler(weatherClient *weather.Client) *Handler {
	return &Handler{weather: weatherClient}
}

// DestinationContext handles GET /api/context?destination=...&days=3.
func (h *Handler) DestinationContext(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	destination := r.URL.Query().Get("destination")
	if destination == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "destination is required")
		return
	}
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days <= 0 || days > 7 {
		days = 3
	}

	lat, lng := 0.0, 0.0
	if h.weather.Configured() {
		if coords, err := h.weather.Geocode(r.Context(), destination); err == nil {
			lat, lng = coords.Lat, coords.Lng
		}
	}

	current, err := h.weather.Current(r.Context(), lat, lng)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not load weather")
		return
	}
	forecast, err := h.weather.Forecast(r.Context(), lat, lng, days)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not load forecast")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"destination": destination,
		"current":     current,
		"forecast":    forecast,
		"advice":      weather.Recommendation(current.Temperature, current.Condition),
	})
}

type forecastRequest struct {
	Lat   float64  `json:"lat"`
	Lng   float64  `json:"lng"`
	Dates []string `json:"dates"`
}

// WeatherForecast handles POST /api/context/weather-forecast: forecast
// for itinerary dates plus a packing/activity hint per day.
func (h *Handler) WeatherForecast(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req forecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	days := len(req.Dates)
	if days <= 0 || days > 14 {
		days = 5
	}

	forecast, err := h.weather.Forecast(r.Context(), req.Lat, req.Lng, days)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not load forecast")
		return
	}

	advice := make([]models.WeatherAdvice, 0, len(forecast))
	for _, day := range forecast {
		advice = append(advice, weather.Recommendation(day.Temperature.Avg, day.Condition))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"forecast":        forecast,
		"recommendations": advice,
	})
}
