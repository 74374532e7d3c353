package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1siamBot/fountain/engine/config"
	"github.com/1siamBot/fountain/engine/core"
	"github.com/1siamBot/fountain/engine/logger"
	"github.com/1siamBot/fountain/engine/metrics"
	"github.com/1siamBot/fountain/engine/network"
)

// meteredSink counts replay writes
type meteredSink struct {
	rec *network.Replay
	m   *metrics.Collector
}

func (s meteredSink) RecordFrame(t, dt float64) error {
	err := s.rec.RecordFrame(t, dt)
	s.m.RecordFrameWrite(err)
	return err
}

func (s meteredSink) RecordReset(t float64) error {
	err := s.rec.RecordReset(t)
	s.m.RecordFrameWrite(err)
	return err
}

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults when empty)")
	addr := flag.String("addr", "", "listen address (overrides stream.addr)")
	record := flag.String("record", "", "write a replay to this path")
	flag.Parse()

	l := logger.New("server")
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *addr != "" {
		cfg.Stream.Addr = *addr
	}
	if *record != "" {
		cfg.Replay.Record = *record
	}

	loop, err := cfg.NewLoop()
	if err != nil {
		log.Fatal(err)
	}
	core.LogEvents(loop.Events, l)

	m := metrics.New()
	if cfg.Replay.Record != "" {
		rec, err := network.NewReplayRecorder(cfg.Replay.Record, cfg.Sim.Seed, cfg.Particles)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err := rec.Close(); err != nil {
				l.Errorf("closing replay: %v", err)
			}
		}()
		loop.SetSink(meteredSink{rec: rec, m: m})
		l.Infof("recording replay to %s", cfg.Replay.Record)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := network.NewHub(logger.New("hub"), m)
	go hub.Run(ctx)

	info := network.NewServerInfo("fountain", cfg.Sim.Seed, cfg.Particles, cfg.Stream.Interval, cfg.Stream.MaxParticles)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/info", hub.InfoHandler(info))
	mux.HandleFunc("/metrics", m.Handler())
	mux.HandleFunc("/metrics/prom", m.PrometheusHandler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	srv := &http.Server{Addr: cfg.Stream.Addr, Handler: mux}
	go func() {
		l.Infof("listening on %s (%d particles, seed %d)", cfg.Stream.Addr, cfg.Particles.MaxParticles, cfg.Sim.Seed)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("http server: %v", err)
			stop()
		}
	}()

	streamer := network.NewStreamer(loop, hub, m, logger.New("stream"), cfg.Sim.TickInterval(), cfg.Stream.Interval, cfg.Stream.MaxParticles)
	streamer.Run(ctx)

	l.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Errorf("shutdown: %v", err)
	}
	l.Infof("stopped at t=%.2fs after %d steps", loop.T, loop.Frame)
}
