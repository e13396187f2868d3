package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/itsm-a-dev/BetTrackingBot/pkg/catalog"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/espn"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/render"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/slip"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/slipwatch"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/tracker"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	appCfg = cfg

	initDB(cfg.DatabaseDSN, cfg.AutoMigrate)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// scoreboard snapshot cache is optional; without redis every tick
	// hits ESPN directly
	espnOpts := []espn.Option{espn.WithTimeout(cfg.HTTPTimeout)}
	if len(cfg.SoccerCompetitions) > 0 {
		espnOpts = append(espnOpts, espn.WithSoccerCompetitions(cfg.SoccerCompetitions))
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		espnOpts = append(espnOpts, espn.WithSnapshotCache(espn.NewSnapshotCache(rdb)))
		log.Printf("scoreboard cache enabled (redis %s)", cfg.RedisAddr)
	}
	provider := espn.New(espnOpts...)

	cat := catalog.New(provider, cfg.CatalogRefresh)
	if err := cat.Refresh(ctx, true); err != nil {
		log.Printf("catalog refresh warning: %v", err)
	}
	go cat.RunScheduled(ctx, cfg.CatalogRefresh)

	parser = slip.NewParser(cat)

	var tg *render.TelegramSurface
	if cfg.Telegram.Token != "" {
		tg, err = render.NewTelegramSurface(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		surface = tg
	} else {
		surface = render.NewLogSurface()
		log.Printf("no telegram token configured, bet cards go to the log")
	}

	engine = tracker.New(tracker.Config{
		Store:       NewDBStore(db),
		Surface:     surface,
		Provider:    provider,
		ScoresEvery: cfg.ScoresInterval,
		PropsEvery:  cfg.PropsInterval,
	})
	if err := engine.Start(ctx); err != nil {
		log.Fatalf("tracker: %v", err)
	}

	if tg != nil {
		go tg.ListenPhotos(ctx, func(ctx context.Context, image []byte, caption string) {
			if _, _, err := processSlip(ctx, image, caption, "", "telegram"); err != nil {
				log.Printf("telegram intake: %v", err)
			}
		})
	}

	if cfg.WatchDir != "" {
		watcher := slipwatch.New(cfg.WatchDir, func(ctx context.Context, data []byte, fileName, storePath string) error {
			_, _, err := processSlip(ctx, data, fileName, storePath, "watch")
			return err
		})
		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("slipwatch stopped: %v", err)
			}
		}()
	}

	r := gin.Default()
	setupRoutes(r)
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Printf("server shutdown warning: %v", err)
	}
	engine.Stop()
	log.Printf("bye")
}
