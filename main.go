package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wanderlust/auth"
	"wanderlust/config"
	"wanderlust/db"
	"wanderlust/filemgr"
	"wanderlust/insights"
	"wanderlust/journey"
	"wanderlust/listings"
	"wanderlust/middleware"
	"wanderlust/mq"
	"wanderlust/payqr"
	"wanderlust/pricing"
	"wanderlust/ratelim"
	"wanderlust/rdx"
	"wanderlust/reviews"
	"wanderlust/routes"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(cfg *config.Config, conn *db.Mongo, cache *rdx.Cache) *httprouter.Router {
	events := mq.New(cache)
	files := filemgr.NewStore(cfg.StaticDir)
	estimator := pricing.NewEstimator(cfg.PredictorURL)
	qr := payqr.New(cfg.StaticDir)
	mw := middleware.NewAuth(cfg.JWTSecret)
	rl := ratelim.NewRateLimiter()

	listingHandler := &listings.Handler{
		DB: conn, Cache: cache, Events: events,
		Estimator: estimator, Files: files, QR: qr,
	}
	reviewHandler := &reviews.Handler{DB: conn, Events: events}
	journeyHandler := &journey.Handler{DB: conn, Cache: cache, Events: events, Files: files}
	authHandler := &auth.Handler{DB: conn, Cache: cache, Events: events, Auth: mw, Secret: cfg.JWTSecret}
	insightsHandler := insights.NewHandler()

	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddAuthRoutes(router, authHandler, rl)
	routes.AddListingRoutes(router, listingHandler, mw, rl)
	routes.AddReviewRoutes(router, reviewHandler, mw, rl)
	routes.AddJourneyRoutes(router, journeyHandler, mw, rl)
	routes.AddInsightsRoutes(router, insightsHandler, rl)
	routes.AddStaticRoutes(router, cfg.StaticDir)

	return router
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	conn, err := db.Connect(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}

	cache := rdx.New(cfg.RedisAddr)

	router := setupRouter(cfg, conn, cache)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	if err := conn.Close(shutdownCtx); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}
	if err := cache.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}

	log.Println("Server stopped cleanly")
}
