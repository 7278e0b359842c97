package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"geoseal/internal/attestation"
	"geoseal/internal/config"
	"geoseal/internal/device"
	"geoseal/internal/discovery"
	"geoseal/internal/server"
	"geoseal/internal/services/messages"
	"geoseal/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	memStore := store.NewMemoryStore()
	devices := device.NewRegistry()
	svc := messages.New(memStore, devices, attestation.Config{
		MaxAgeMs:        cfg.Verify.MaxAgeMs,
		MaxSpeedMS:      cfg.Verify.MaxSpeedMS,
		RequirePresence: cfg.Verify.RequirePresence,
		MinPresenceMs:   cfg.Verify.MinPresenceMs,
	})

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	srv := server.New(addr, svc, devices)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go memStore.RunSweeper(sweepCtx, cfg.Store.SweepInterval)

	var disco *discovery.Service
	if cfg.Discovery.Enabled {
		port, err := strconv.Atoi(cfg.Server.Port)
		if err != nil {
			log.Fatalf("parse port: %v", err)
		}
		disco = discovery.NewService(cfg.Discovery.ServiceName, port)
		if err := disco.Start(); err != nil {
			log.Printf("discovery disabled: %v", err)
			disco = nil
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	case sig := <-sigCh:
		log.Printf("received %s, shutting down", sig)
	}

	if disco != nil {
		disco.Stop()
	}
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
