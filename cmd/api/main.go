package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fhhabitat/renov-admin/internal/infra/database"
	"github.com/fhhabitat/renov-admin/internal/infra/http/handlers"
	"github.com/fhhabitat/renov-admin/internal/infra/http/middleware"
	"github.com/fhhabitat/renov-admin/internal/infra/mail"
	"github.com/fhhabitat/renov-admin/internal/infra/queue"
	"github.com/fhhabitat/renov-admin/internal/infra/storage"
	"github.com/fhhabitat/renov-admin/internal/pdf"
	"github.com/fhhabitat/renov-admin/internal/usecase"
)

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("connexion à la base impossible", zap.Error(err))
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"),
		os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		logger.Fatal("connexion à RabbitMQ impossible", zap.Error(err))
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := storage.NewClient(ctx, storage.Config{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    envOr("S3_REGION", "eu-west-3"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		PublicURL: os.Getenv("STORAGE_PUBLIC_URL"),
	})
	if err != nil {
		logger.Fatal("client de stockage impossible", zap.Error(err))
	}
	if err := store.EnsureBucket(ctx); err != nil {
		logger.Fatal("bucket documents indisponible", zap.Error(err))
	}

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	projectRepo := database.NewProjectRepository(db)
	proposalRepo := database.NewProposalRepository(db)
	documentRepo := database.NewDocumentRepository(db)
	callbackRepo := database.NewCallbackRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ)
	smtpPort, _ := strconv.Atoi(envOr("SMTP_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("SMTP_HOST"), smtpPort,
		os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"),
		envOr("MAIL_FROM", "contact@fhhabitat.fr"),
		envOr("MAIL_OFFICE", "bureau@fhhabitat.fr"),
	)

	composer := pdf.NewComposer(pdf.Config{
		CompanyName:    envOr("COMPANY_NAME", "FH Habitat"),
		CompanyAddress: os.Getenv("COMPANY_ADDRESS"),
		LogoPrimary:    readOptional(os.Getenv("LOGO_PRIMARY_PATH")),
		LogoSecondary:  readOptional(os.Getenv("LOGO_SECONDARY_PATH")),
	})

	// 3. UseCases
	listLeadsUC := usecase.NewListLeadsUseCase(leadRepo, projectRepo)
	statusUC := usecase.NewUpdateStatusUseCase(leadRepo, projectRepo, producer, logger)
	signUC := usecase.NewSignProposalUseCase(
		leadRepo, projectRepo, proposalRepo, documentRepo,
		composer, store, producer, mailSender, logger,
	)
	proposalQueryUC := usecase.NewProposalQueryUseCase(projectRepo, proposalRepo, store)
	uploadUC := usecase.NewUploadDocumentUseCase(leadRepo, documentRepo, store, producer, logger)
	callbackUC := usecase.NewCallbackUseCase(callbackRepo, producer, logger)
	statsUC := usecase.NewStatsUseCase(leadRepo, projectRepo, callbackRepo)

	// 4. Change worker: mail alerts on new callback requests
	subscriber := queue.NewSubscriber(rabbitMQ, logger)
	subscriber.Subscribe("callback_requests", queue.EventInsert, func(ev queue.ChangeEvent) {
		cb, err := callbackRepo.FindByID(context.Background(), ev.RecordID)
		if err != nil {
			logger.Warn("rappel introuvable pour l'alerte", zap.String("id", ev.RecordID), zap.Error(err))
			return
		}
		if err := mailSender.SendCallbackAlert(cb.Name, cb.Phone); err != nil {
			logger.Warn("alerte de rappel non envoyée", zap.Error(err))
		}
	})
	go func() {
		if err := subscriber.Start(); err != nil {
			logger.Error("consommateur d'événements arrêté", zap.Error(err))
		}
	}()

	// 5. Handlers
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)
	leadHandler := handlers.NewLeadHandler(listLeadsUC, statusUC)
	proposalHandler := handlers.NewProposalHandler(signUC, proposalQueryUC)
	documentHandler := handlers.NewDocumentHandler(uploadUC)
	callbackHandler := handlers.NewCallbackHandler(callbackUC)
	statsHandler := handlers.NewStatsHandler(statsUC)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/healthz", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/leads", leadHandler.List)
	r.Get("/leads/{id}", leadHandler.Get)
	r.Patch("/leads/{id}/status", leadHandler.UpdateStatus)
	r.Patch("/leads/{id}/comment", leadHandler.UpdateComment)
	r.Post("/leads/{id}/documents", documentHandler.Upload)
	r.Get("/leads/{id}/documents", documentHandler.List)

	r.Post("/propositions", proposalHandler.Create)
	r.Get("/propositions", proposalHandler.List)
	r.Get("/propositions/{id}/pdf", proposalHandler.DownloadPDF)

	r.Get("/callbacks", callbackHandler.List)
	r.Post("/callbacks", callbackHandler.Create)
	r.Patch("/callbacks/{id}", callbackHandler.Update)
	r.Delete("/callbacks/{id}", callbackHandler.Delete)

	r.Get("/stats", statsHandler.Get)

	port := ":" + envOr("PORT", "8080")
	logger.Info("serveur renov-admin démarré", zap.String("port", port))
	if err := http.ListenAndServe(port, r); err != nil {
		logger.Fatal("serveur arrêté", zap.Error(err))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readOptional(path string) []byte {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}
