package routes

import (
	"voyago/auth"
	"voyago/community"
	"voyago/ctxinfo"
	"voyago/feedback"
	"voyago/guide"
	"voyago/middleware"
	"voyago/prefs"
	"voyago/ratelim"
	"voyago/safety"
	"voyago/trip"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
}

func AddItineraryRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *trip.Handler) {
	router.POST("/api/itineraries/generate", rl.Limit(middleware.Authenticate(h.GenerateItinerary)))
	router.GET("/api/itineraries", middleware.Authenticate(h.ListItineraries))
	router.GET("/api/itineraries/:id", middleware.Authenticate(h.GetItinerary))
	router.PUT("/api/itineraries/:id", middleware.Authenticate(h.UpdateItinerary))
	router.DELETE("/api/itineraries/:id", middleware.Authenticate(h.DeleteItinerary))
	router.GET("/api/itineraries/:id/print", middleware.Authenticate(h.PrintItinerary))
	router.GET("/api/places/details", rl.Limit(middleware.OptionalAuth(h.GetPlaceDetails)))
}

func AddSafetyRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *safety.Handler) {
	router.POST("/api/safety/validate", rl.Limit(middleware.OptionalAuth(h.Validate)))
	router.GET("/api/safety/weather", rl.Limit(h.Weather))
	router.POST("/api/safety/fallbacks", rl.Limit(h.Fallbacks))
	router.POST("/api/safety/guidelines", rl.Limit(h.Guidelines))
	router.GET("/api/safety-status", h.Status)
}

func AddContextRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *ctxinfo.Handler) {
	router.GET("/api/context", rl.Limit(h.DestinationContext))
	router.POST("/api/context/weather-forecast", rl.Limit(h.WeatherForecast))
}

func AddCommunityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *community.Handler) {
	router.GET("/api/community/experiences", rl.Limit(middleware.Authenticate(h.Experiences)))
	router.GET("/api/community/sustainable", rl.Limit(middleware.Authenticate(h.Sustainable)))
}

func AddProfileRoutes(router *httprouter.Router, _ *ratelim.RateLimiter) {
	router.GET("/api/profile", middleware.Authenticate(prefs.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(prefs.UpdateProfile))
	router.PUT("/api/profile/preferences", middleware.Authenticate(prefs.UpdatePreferences))
	router.POST("/api/profile/visited", middleware.Authenticate(prefs.AddVisitedPlace))
}

func AddFeedbackRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/feedback", rl.Limit(middleware.Authenticate(feedback.SubmitFeedback)))
	router.GET("/api/feedback", middleware.Authenticate(feedback.GetFeedback))
	router.GET("/api/feedback/insights", middleware.Authenticate(feedback.GetInsights))
}

func AddGuideRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *guide.Handler) {
	router.POST("/api/guide/chat", rl.Limit(middleware.Authenticate(h.Chat)))
	router.GET("/api/guide/emergency", rl.Limit(guide.EmergencyInfo))
}
