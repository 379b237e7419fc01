package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/webhook-outbox/config"
	internalchi "github.com/marcelsud/webhook-outbox/internal/http/chi"
	"github.com/marcelsud/webhook-outbox/metrics"
	"github.com/marcelsud/webhook-outbox/sender"
	senderredis "github.com/marcelsud/webhook-outbox/sender/redis"
	"github.com/marcelsud/webhook-outbox/subscriptions"
	"github.com/prometheus/client_golang/prometheus"
)

const TIMEOUT = 30 * time.Second

/* main is where all the wiring between packages happens:
 * config -> redis tracker -> delivery service -> HTTP handlers
 * Imports flow in one direction only: the application imports the business
 * layer, which imports the storage layer
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	loader := subscriptions.NewLoader()
	if err := loader.Load(cfg.GetSubscriptionsFile()); err != nil {
		fmt.Println(err)
		return
	}

	tracker, err := senderredis.NewTracker(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer tracker.Close(ctx)

	s := sender.NewService(tracker, cfg.GetWebhookTimeout(), logger)
	s.Recorder = metrics.NewPrometheusRecorder(prometheus.DefaultRegisterer)

	collector := metrics.NewRedisCollector(tracker.GetClient())
	exporter, err := metrics.NewOTelExporter(collector)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(ctx)

	r := internalchi.Handlers(ctx, s, loader, exporter.ServeHTTP())
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
