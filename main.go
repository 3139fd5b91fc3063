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

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mortgage-planner/config"
	httpLayer "mortgage-planner/http"
	"mortgage-planner/repository"
	"mortgage-planner/service"
	"mortgage-planner/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	shutdownTracing, err := tracing.Init(context.Background(), cfg.OTELEndpoint, cfg.OTELServiceName)
	if err != nil {
		log.Fatalf("Error initializing tracing: %v", err)
	}

	var planRepo repository.PlanRepository
	if cfg.PostgresDSN != "" {
		pg, err := repository.NewPlanRepositoryPostgres(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("Error connecting to postgres: %v", err)
		}
		defer pg.Close()
		planRepo = pg
	} else {
		planRepo = repository.NewPlanRepositoryMemory()
	}

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		cache = repository.NewRedisCache(cfg.RedisAddr)
	} else {
		cache = repository.NewMockCache()
	}

	planService := service.NewPlanService(planRepo, cache)

	loanHandler := httpLayer.NewLoanHandler(planService)
	planHandler := httpLayer.NewPlanHandler(planService)
	reportHandler := httpLayer.NewReportHandler(planService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, time.Duration(cfg.RateWindowSecs)*time.Second)
	defer rateLimiter.Stop()

	limited := func(h http.HandlerFunc) http.Handler {
		return httpLayer.RateLimitMiddleware(rateLimiter, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/loan/payment", limited(loanHandler.CalculatePayment))
	mux.Handle("/loan/schedule", limited(loanHandler.SimulateSchedule))
	mux.Handle("/plan/refinance", limited(planHandler.BuildRefinancePlan))
	mux.Handle("/plan/report", limited(reportHandler.PlanReport))
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Mortgage planner listening on http://localhost:%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("Error shutting down tracing: %v", err)
	}

	log.Println("Server exited")
}
