package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/Jacopo21/gutmann-privatebank/internal/config"
	"github.com/Jacopo21/gutmann-privatebank/internal/handler"
	"github.com/Jacopo21/gutmann-privatebank/internal/integrations/ecb"
	"github.com/Jacopo21/gutmann-privatebank/internal/middleware"
	"github.com/Jacopo21/gutmann-privatebank/internal/repository"
	"github.com/Jacopo21/gutmann-privatebank/internal/service"
	"github.com/Jacopo21/gutmann-privatebank/internal/simulation"
	"github.com/Jacopo21/gutmann-privatebank/internal/utils/mailer"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	engine := simulation.NewEngine(simulation.WithPaths(cfg.SimulationPaths))
	sender := mailer.NewSender(cfg, logger)
	svc := service.NewService(repo, logger, cfg, engine, sender)
	h := handler.NewHandler(svc)
	ecbClient := ecb.NewClient(cfg, logger)

	// Nightly purge of projection audit rows past retention
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 3 * * *", func() {
		cutoff := time.Now().AddDate(0, 0, -cfg.AuditRetentionDays)
		deleted, err := repo.PurgeProjectionsBefore(cutoff)
		if err != nil {
			logger.Errorf("Audit purge failed: %v", err)
			return
		}
		logger.Infof("Audit purge removed %d rows older than %s", deleted, cutoff.Format("2006-01-02"))
	}); err != nil {
		logger.Fatalf("Failed to schedule audit purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestIDMiddleware(logger))
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/risk-profiles", h.RiskProfiles).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/projections", h.Project).Methods("POST")
	authRouter.HandleFunc("/projections/chart", h.ProjectChart).Methods("POST")
	authRouter.HandleFunc("/projections/report", h.ProjectReport).Methods("POST")
	authRouter.HandleFunc("/projections/history", h.History).Methods("GET")
	// ECB reference rate endpoint
	r.HandleFunc("/reference-rates", func(w http.ResponseWriter, r *http.Request) {
		rates, err := ecbClient.GetReferenceRates()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get reference rates: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(rates)
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
