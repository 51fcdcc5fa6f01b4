package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reviewmarket/api/internal/config"
	"github.com/reviewmarket/api/internal/events"
	"github.com/reviewmarket/api/internal/httpserver"
	"github.com/reviewmarket/api/internal/logging"
	authmw "github.com/reviewmarket/api/internal/middleware/auth"
	"github.com/reviewmarket/api/internal/repo"
	"github.com/reviewmarket/api/internal/search"
	"github.com/reviewmarket/api/internal/service"
	"github.com/reviewmarket/api/internal/service/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	var index *search.Index
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		index = search.NewIndex(es, search.DefaultIndex)
	}

	store := repo.New(db)
	tokens := &token.Service{
		Repo:          store,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, &httpserver.Deps{
		Users:    &httpserver.UserHTTP{Svc: &service.UserService{Repo: store}, Events: producer},
		Products: &httpserver.ProductHTTP{Svc: &service.ProductService{Repo: store}, Events: producer, Index: index},
		Reviews:  &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: store}, Events: producer},
		Auth:     &httpserver.AuthHTTP{Tokens: tokens},
		AuthMW:   &authmw.Middleware{Tokens: tokens},
	})

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
