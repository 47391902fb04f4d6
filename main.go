package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyago/assemble"
	"voyago/community"
	"voyago/ctxinfo"
	"voyago/db"
	"voyago/guide"
	"voyago/llm"
	"voyago/mapsvc"
	"voyago/mq"
	"voyago/personalize"
	"voyago/ratelim"
	"voyago/rdx"
	"voyago/routes"
	"voyago/safety"
	"voyago/trip"
	"voyago/weather"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	if err := db.Init(); err != nil {
		log.Fatalf("mongodb: %v", err)
	}
	rdx.Init()

	weatherClient := weather.NewClient()
	mapsClient := mapsvc.NewClient()
	llmClient := llm.NewClient()

	personalizer := personalize.NewEngine(personalize.DefaultWeights())
	assembler := assemble.NewAssembler()
	safetyEngine := safety.NewEngine(safety.DefaultThresholds(), weatherClient)
	planner := trip.NewPlanner(llmClient, mapsClient, personalizer, assembler, safetyEngine)

	handlers := routes.Handlers{
		Trip:      trip.NewHandler(planner),
		Safety:    safety.NewHandler(safetyEngine),
		Context:   ctxinfo.NewHandler(weatherClient),
		Guide:     guide.NewHandler(llmClient),
		Community: community.NewHandler(mapsClient, personalizer),
	}

	router := httprouter.New()
	rateLimiter := ratelim.NewRateLimiter()
	routes.RoutesWrapper(router, rateLimiter, handlers)

	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	handler := c.Handler(securityHeaders(requestLogger(router)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go mq.StartItineraryWorker()

	go func() {
		log.Printf("voyago listening on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	db.Close(ctx)
}
