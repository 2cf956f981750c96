package routes

import (
	"net/http"

	"wanderlust/auth"
	"wanderlust/insights"
	"wanderlust/journey"
	"wanderlust/listings"
	"wanderlust/middleware"
	"wanderlust/ratelim"
	"wanderlust/reviews"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router, staticDir string) {
	router.ServeFiles("/uploads/*filepath", http.Dir(staticDir+"/uploads"))
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.POST("/api/auth/logout", h.Logout)
}

func AddListingRoutes(router *httprouter.Router, h *listings.Handler, mw *middleware.Auth, rl *ratelim.RateLimiter) {
	router.GET("/api/listings", h.GetListings)
	router.GET("/api/listings/:listingid", h.GetListing)
	router.POST("/api/listings", rl.Limit(mw.Authenticate(h.CreateListing)))
	router.PUT("/api/listings/:listingid", rl.Limit(mw.Authenticate(h.UpdateListing)))
	router.DELETE("/api/listings/:listingid", rl.Limit(mw.Authenticate(h.DeleteListing)))
}

func AddReviewRoutes(router *httprouter.Router, h *reviews.Handler, mw *middleware.Auth, rl *ratelim.RateLimiter) {
	router.GET("/api/listings/:listingid/reviews", h.GetReviews)
	router.POST("/api/listings/:listingid/reviews", rl.Limit(mw.OptionalAuth(h.AddReview)))
	router.PUT("/api/listings/:listingid/reviews/:reviewid", rl.Limit(mw.Authenticate(h.EditReview)))
	router.DELETE("/api/listings/:listingid/reviews/:reviewid", rl.Limit(mw.Authenticate(h.DeleteReview)))
}

func AddJourneyRoutes(router *httprouter.Router, h *journey.Handler, mw *middleware.Auth, rl *ratelim.RateLimiter) {
	// discovery endpoints sit beside /places so the :placeid wildcard
	// stays unambiguous
	router.GET("/api/journey/nearest", h.GetNearestPlaces)
	router.GET("/api/journey/search", h.SearchPlaces)
	router.GET("/api/journey/popular", h.GetPopularPlaces)
	router.GET("/api/journey/type/:type", h.GetPlacesByType)

	router.GET("/api/journey/places/:placeid", h.GetPlaceDetails)
	router.POST("/api/journey/places", rl.Limit(mw.Authenticate(h.CreatePlace)))
	router.PUT("/api/journey/places/:placeid", rl.Limit(mw.Authenticate(h.UpdatePlace)))
	router.DELETE("/api/journey/places/:placeid", rl.Limit(mw.Authenticate(h.DeletePlace)))
}

func AddInsightsRoutes(router *httprouter.Router, h *insights.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/insights/weather", rl.Limit(h.GetWeather))
	router.GET("/api/insights/seasonal", h.GetSeasonalAdvice)
	router.GET("/api/insights/events", h.GetUpcomingEvents)
	router.GET("/api/insights/development", h.GetDevelopmentSummary)
}
