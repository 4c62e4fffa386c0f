package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"zapflow/internal/auth"
	"zapflow/internal/config"
	"zapflow/internal/handler"
	"zapflow/internal/middleware"
	"zapflow/internal/repository/postgres"
	"zapflow/internal/service/analysis"
	companySvc "zapflow/internal/service/company"
	"zapflow/internal/service/lifecycle"
	"zapflow/internal/service/pdftext"
	"zapflow/internal/service/signature"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"signature_mode", cfg.SignatureMode,
		"analysis_mode", cfg.AnalysisMode,
	)

	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	}
	companyRepo := postgres.NewCompanyRepository(repoConfig)
	documentRepo := postgres.NewDocumentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Provider gateway and analyzers, mode chosen once at startup
	gateway, err := signature.NewGateway(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create signature gateway: %v", err)
	}
	analyzer, err := analysis.NewAnalyzer(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create analyzer: %v", err)
	}
	pdfExtractor := pdftext.NewExtractor(logger)

	// Services
	companyService := companySvc.NewCompanyService(companyRepo, logger)
	documentService := lifecycle.NewDocumentService(
		documentRepo,
		txManager,
		gateway,
		analyzer,
		pdfExtractor,
		logger,
	)

	// Handlers
	companyHandler := handler.NewCompanyHandler(companyService, logger)
	documentHandler := handler.NewDocumentHandler(documentService, logger)
	automationHandler := handler.NewAutomationHandler(documentService, logger)

	logger.Info("services initialized")

	// Auth is applied per route group: the interactive surface carries session
	// JWTs, the automation surface carries company API keys, health is open.
	session := middleware.SessionAuth(jwtVerifier)
	apiKey := middleware.APIKeyAuth(companyRepo, logger)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", documentHandler.HealthCheck)

	// Company routes
	mux.Handle("GET /api/companies", session(http.HandlerFunc(companyHandler.ListCompanies)))
	mux.Handle("POST /api/companies", session(http.HandlerFunc(companyHandler.CreateCompany)))
	mux.Handle("GET /api/companies/{id}", session(http.HandlerFunc(companyHandler.GetCompany)))
	mux.Handle("PATCH /api/companies/{id}", session(http.HandlerFunc(companyHandler.UpdateCompany)))
	mux.Handle("DELETE /api/companies/{id}", session(http.HandlerFunc(companyHandler.DeleteCompany)))

	// Document routes
	mux.Handle("GET /api/documents", session(http.HandlerFunc(documentHandler.ListDocuments)))
	mux.Handle("POST /api/documents", session(http.HandlerFunc(documentHandler.CreateDocument)))
	mux.Handle("GET /api/documents/{id}", session(http.HandlerFunc(documentHandler.GetDocument)))
	mux.Handle("PATCH /api/documents/{id}", session(http.HandlerFunc(documentHandler.UpdateDocument)))
	mux.Handle("DELETE /api/documents/{id}", session(http.HandlerFunc(documentHandler.DeleteDocument)))
	mux.Handle("GET /api/documents/{id}/content", session(http.HandlerFunc(documentHandler.GetContent)))
	mux.Handle("PUT /api/documents/{id}/content", session(http.HandlerFunc(documentHandler.PutContent)))
	mux.Handle("POST /api/documents/{id}/send", session(http.HandlerFunc(documentHandler.SendDocument)))
	mux.Handle("GET /api/documents/{id}/status", session(http.HandlerFunc(documentHandler.SyncStatus)))
	mux.Handle("POST /api/documents/{id}/analysis", session(http.HandlerFunc(documentHandler.AnalyzeDocument)))

	// Automation routes (X-Api-Key)
	mux.Handle("POST /api/automations/create_send", apiKey(http.HandlerFunc(automationHandler.CreateSend)))
	mux.Handle("GET /api/automations/analysis/{id}", apiKey(http.HandlerFunc(automationHandler.AnalyzeDocument)))
	mux.Handle("GET /api/automations/reports/documents", apiKey(http.HandlerFunc(automationHandler.DocumentReport)))

	// Build middleware chain
	// Order: CORS → Recovery → Routes
	var httpHandler http.Handler = mux
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Api-Key"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
