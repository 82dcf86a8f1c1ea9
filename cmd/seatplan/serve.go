package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/iliyamo/seatplan/internal/config"
	"github.com/iliyamo/seatplan/internal/handler"
	"github.com/iliyamo/seatplan/internal/middleware"
	"github.com/iliyamo/seatplan/internal/router"
	"github.com/iliyamo/seatplan/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner API for one store",
	Long: `Open the store and serve the planner API on APP_ADDR, which defaults to a
loopback address.  Seat assignments are published to RabbitMQ when
RABBITMQ_URL or AMQP_URL is set, and floor images are cached in Redis when
CACHE_ENABLED is true and REDIS_ADDR is reachable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required")
		}
		db, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		settings, err := config.OpenSettings(cfg.SettingsPath)
		if err != nil {
			return err
		}

		h := handler.NewPlannerHandler(cfg, db, settings, service.NewPublisher(cfg.AMQPURL))

		// Image keys are per store; ids repeat across stores.
		cacheCfg := config.LoadCacheConfig()
		cacheCfg.Prefix += ":" + h.Store.Name(cmd.Context())
		rdb := config.NewRedisClient(cmd.Context(), config.LoadRedisConfig())
		if rdb != nil {
			defer rdb.Close()
		}
		imageCache := middleware.NewImageCache(cacheCfg, rdb)

		e := echo.New()
		e.HideBanner = true
		e.Use(echomw.Recover())
		e.Use(echomw.Logger())
		router.RegisterRoutes(e)
		router.RegisterPlanner(e, h, cfg.JWTSecret, imageCache)

		errCh := make(chan error, 1)
		go func() {
			log.Printf("listening on %s (env=%s, store=%s)", cfg.Addr, cfg.Env, storePath)
			errCh <- e.Start(cfg.Addr)
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-cmd.Context().Done():
		}

		log.Printf("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownWait)
		defer cancel()
		return e.Shutdown(ctx)
	},
}
