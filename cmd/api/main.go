package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/alerting"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/cloud"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/config"
	httpHandlers "github.com/ANIKETSHETTY47/satellite-health-monitor/internal/http"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/service"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/stream"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts, err := config.Engine()
	if err != nil {
		log.Fatal().Err(err).Msg("engine config invalid")
	}

	svcs, err := service.NewServices(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("monitor init failed")
	}
	defer svcs.Monitor.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.UseCloudServices() {
		sns, err := cloud.NewSNSClient(ctx, config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			log.Fatal().Err(err).Msg("sns client init failed")
		}
		go alerting.NewForwarder(svcs.Monitor, sns).Run(ctx)
	}

	streamSrv := &http.Server{Addr: config.StreamAddr(), Handler: stream.New(svcs.Monitor)}
	go func() {
		log.Info().Str("addr", streamSrv.Addr).Msg("stream listening")
		if err := streamSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("stream server exit")
		}
	}()

	app := fiber.New()
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	httpHandlers.Register(app, svcs)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		streamSrv.Shutdown(shutdownCtx)
		app.ShutdownWithContext(shutdownCtx)
	}()

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Str("strategy", string(opts.Strategy)).Msg("api listening")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server exit")
	}
}
