package routes

import (
	"voyago/community"
	"voyago/ctxinfo"
	"voyago/guide"
	"voyago/ratelim"
	"voyago/safety"
	"voyago/trip"

	"github.com/julienschmidt/httprouter"
)

// Handlers carries the constructed handler set the routes depend on.
type Handlers struct {
	Trip      *trip.Handler
	Safety    *safety.Handler
	Context   *ctxinfo.Handler
	Guide     *guide.Handler
	Community *community.Handler
}

func RoutesWrapper(router *httprouter.Router, rl *ratelim.RateLimiter, h Handlers) {
	AddAuthRoutes(router, rl)
	AddItineraryRoutes(router, rl, h.Trip)
	AddSafetyRoutes(router, rl, h.Safety)
	AddContextRoutes(router, rl, h.Context)
	AddCommunityRoutes(router, rl, h.Community)
	AddProfileRoutes(router, rl)
	AddFeedbackRoutes(router, rl)
	AddGuideRoutes(router, rl, h.Guide)
}
