package main

import (
	"context"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flipwatch/internal/config"
	"flipwatch/internal/http/handlers"
	applog "flipwatch/internal/log"
	"flipwatch/internal/metrics"
	"flipwatch/internal/notify"
	"flipwatch/internal/sched"
	"flipwatch/internal/services"
	"flipwatch/internal/store"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	kv, err := store.Open(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	m := metrics.New()

	// Auth wiring
	authSvc := &services.AuthService{Store: kv}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		m.RequestsTotal.WithLabelValues(c.Route().Path, strconv.Itoa(c.Response().StatusCode())).Inc()
		return err
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Warn(c, "rate.limit.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(kv, m)

	api := app.Group("/api")
	api.Get("/items", deps.ItemsHandler.List)
	api.Get("/categories", deps.CatalogHandler.Categories)
	api.Get("/product-categories", deps.CatalogHandler.ProductCategories)
	api.Get("/locations", deps.CatalogHandler.Locations)
	api.Get("/settings", deps.SettingsHandler.Get)
	api.Post("/settings", deps.SettingsHandler.Put)
	api.Get("/favorites", deps.FavoritesHandler.List)
	api.Post("/favorites", deps.FavoritesHandler.Add)
	api.Delete("/favorites", deps.FavoritesHandler.Remove)
	api.Get("/promising", deps.PromisingHandler.List)
	api.Post("/promising", deps.PromisingHandler.Add)
	api.Get("/search", deps.SearchHandler.Search)

	// Scraping and price estimation run outside this deployment.
	notImplemented := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": "not available in this deployment mode"})
	}
	api.Post("/manual-search", notImplemented)
	api.Post("/manual-price-update", notImplemented)

	// Auth (login throttled)
	api.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Warn(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts"})
		},
	}), authH.Login)
	api.Post("/logout", authH.Logout)

	// Ops
	app.Get("/dashboard", handlers.RequireUser(authSvc), deps.DashboardHandler.Show)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// ---------- Notification scheduler ----------
	notifier := &notify.Notifier{
		Email: &notify.EmailSender{
			Host: cfg.SMTPHost, Port: cfg.SMTPPort,
			User: cfg.SMTPUser, Password: cfg.SMTPPassword,
		},
		SMS: &notify.SMSSender{
			AccountSID: cfg.TwilioSID, AuthToken: cfg.TwilioToken, From: cfg.TwilioFrom,
		},
	}
	scheduler := &sched.Scheduler{Catalog: services.NewCatalogService(kv), Notifier: notifier}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.Run(ctx)

	log.Fatal(app.Listen(":" + cfg.Port))
}
