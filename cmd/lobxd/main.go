// Command lobxd runs the matching engine's TCP server and its Prometheus
// metrics endpoint for a single instrument.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/arvindmenon/lobx/internal/engine"
	"github.com/arvindmenon/lobx/internal/metrics"
	"github.com/arvindmenon/lobx/internal/server"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:6001", "address for the order wire listener")
	metricsAddr := flag.String("metrics-addr", "127.0.0.1:9090", "address for the Prometheus metrics endpoint")
	symbol := flag.String("symbol", "AAPL", "instrument symbol this book trades")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	book := engine.NewOrderBook(*symbol)
	reg := metrics.NewRegistry()
	srv := server.New(*addr, book, reg, log)

	metricsSrv := &http.Server{Addr: *metricsAddr, Handler: reg.Handler()}
	go func() {
		log.Info().Str("addr", *metricsAddr).Msg("metrics listening")
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	go func() {
		if err := srv.Run(ctx); err != nil {
			log.Error().Err(err).Msg("server exited with error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsSrv.Shutdown(shutdownCtx)
	srv.Shutdown()
}
