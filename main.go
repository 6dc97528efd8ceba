package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nigraan/internal/config"
	"nigraan/internal/middleware"
	"nigraan/internal/routes"
	"nigraan/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := os.Getenv("NIGRAAN_CONFIG")
	if configPath == "" {
		configPath = "nigraan.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	board := services.NewDisplayBoard()
	hub := services.NewWebSocketHub()
	board.SetNotify(hub.BroadcastState)

	prober := services.NewLatencyProber(cfg.ProbeTarget, cfg.ProbeTimeout, cfg.ProbeInterval)
	prober.Start()

	sampler := services.NewSampler(services.NewSystemSource(), prober, board, cfg.RefreshInterval)
	sampler.Start()

	r := gin.Default()
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter()))

	routes.RegisterMonitorRoutes(r, board, hub)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Printf("[HTTP] Listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[HTTP] Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	sampler.Stop()
	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[HTTP] Shutdown error: %v", err)
	}
}
