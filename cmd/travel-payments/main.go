package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelAgency/internal/config"
	"travelAgency/internal/http-server/handlers/booking/getBooking"
	"travelAgency/internal/http-server/handlers/payment/checkout"
	"travelAgency/internal/http-server/handlers/payment/webhook"
	"travelAgency/internal/http-server/middleware/mwmetrics"
	"travelAgency/internal/lib/auth"
	"travelAgency/internal/lib/dedup"
	"travelAgency/internal/lib/events"
	"travelAgency/internal/lib/logger/handlers/slogpretty"
	"travelAgency/internal/lib/logger/sl"
	"travelAgency/internal/lib/payment/stripepay"
	"travelAgency/internal/storage/postgres"

	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting travel payments", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	if cfg.Stripe.SecretKey == "" {
		log.Warn("stripe secret key is not set, checkout requests will be rejected")
	}
	if cfg.Stripe.WebhookSecret == "" {
		log.Warn("stripe webhook secret is not set, webhook requests will be rejected")
	}

	storage, err := postgres.New(cfg.Database.URL)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.AnonKey)
	payments := stripepay.NewClient(cfg.Stripe.SecretKey, nil)

	var webhookOpts []webhook.Option

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		webhookOpts = append(webhookOpts, webhook.WithEventMarker(dedup.New(redisClient, cfg.Redis.EventTTL)))
	}

	var publisher *events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.BookingTopic)
		webhookOpts = append(webhookOpts, webhook.WithPublisher(publisher))
	}

	registry := prometheus.NewRegistry()
	srvMetrics := mwmetrics.NewServerMetrics(registry, "payments")

	checkoutHandler := checkout.New(log, payments, verifier, storage, checkout.RedirectURLs{
		Success: cfg.Stripe.SuccessURL,
		Cancel:  cfg.Stripe.CancelURL,
	})

	router := newRouter(log, srvMetrics, routes{
		Checkout: checkoutHandler,
		Booking:  getBooking.New(log, verifier, storage),
		Webhook:  webhook.New(log, cfg.Stripe.WebhookSecret, storage, webhookOpts...),
		Health: func(w http.ResponseWriter, r *http.Request) {
			if err := storage.Ping(r.Context()); err != nil {
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, map[string]string{"status": "db_error"})
				return
			}
			render.JSON(w, r, map[string]string{"status": "ok"})
		},
		Metrics: mwmetrics.Handler(registry),
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if publisher != nil {
		if err = publisher.Close(); err != nil {
			log.Error("failed to close kafka writer", sl.Err(err))
		}
	}

	if redisClient != nil {
		if err = redisClient.Close(); err != nil {
			log.Error("failed to close redis connection", sl.Err(err))
		}
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
