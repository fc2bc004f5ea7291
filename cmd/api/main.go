package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jpvales/homerate-api/internal/cache"
	"github.com/jpvales/homerate-api/internal/infra/database"
	"github.com/jpvales/homerate-api/internal/infra/http/handlers"
	"github.com/jpvales/homerate-api/internal/infra/http/middleware"
	"github.com/jpvales/homerate-api/internal/infra/integration/fred"
	"github.com/jpvales/homerate-api/internal/infra/mail"
	"github.com/jpvales/homerate-api/internal/infra/queue"
	"github.com/jpvales/homerate-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewAnalyzerLeadRepository(db)
	offerRepo := database.NewOfferRepository(db)
	clickRepo := database.NewOfferClickRepository(db)

	// 2. Gateways and adapters
	fredClient := fred.NewClient(
		os.Getenv("FRED_API_KEY"),
		envOr("FRED_URL", "https://api.stlouisfed.org/fred"),
	)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"),
		envIntOr("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"),
		os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "no-reply@homerate.io"),
	)

	// 3. Worker draining the notification queue into SMTP
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender, envOr("ADMIN_EMAIL", "leads@homerate.io"))
	go worker.Start(queue.QueueName)

	// 4. UseCases
	allowAnonymous := os.Getenv("ANALYZER_ALLOW_ANONYMOUS") != "false"
	submitUC := usecase.NewSubmitAnalyzerLeadUseCase(leadRepo, fredClient, allowAnonymous)
	attachUC := usecase.NewAttachFollowupEmailUseCase(leadRepo, producer)

	offerCacheTTL := time.Duration(envIntOr("OFFER_CACHE_TTL_MINUTES", 5)) * time.Minute
	listOffersUC := usecase.NewListOffersUseCase(offerRepo, cache.NewMemory(), offerCacheTTL)
	clickUC := usecase.NewRecordOfferClickUseCase(offerRepo, clickRepo)

	// 5. Handlers
	analyzerHandler := handlers.NewAnalyzerHandler(submitUC, attachUC)
	offerHandler := handlers.NewOfferHandler(listOffersUC, clickUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/api/analyzer/leads", analyzerHandler.HandleSubmit)
	r.Post("/api/analyzer/leads/{id}/email", analyzerHandler.HandleFollowupEmail)
	r.Get("/api/offers", offerHandler.HandleList)
	r.Post("/api/offers/{id}/click", offerHandler.HandleClick)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 HomeRate API listening on %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
