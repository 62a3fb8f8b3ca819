// @title        Invorya Dashboard
// @version      1.0
// @description  Dashboard web de Invorya sobre el backend REST de inventario.
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/text/language"

	"github.com/jhoicas/invorya-dashboard/docs"
	"github.com/jhoicas/invorya-dashboard/internal/application/access"
	"github.com/jhoicas/invorya-dashboard/internal/application/dashboard"
	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
	"github.com/jhoicas/invorya-dashboard/internal/application/session"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/api"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/gateway"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/invorya-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/tokenstore"
	httpRouter "github.com/jhoicas/invorya-dashboard/internal/interfaces/http"
	"github.com/jhoicas/invorya-dashboard/pkg/config"
	"github.com/jhoicas/invorya-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if cfg.App.Env == "development" {
		figure.NewFigure("Invorya", "cybermedium", true).Print()
		fmt.Println()
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api_url", cfg.API.BaseURL).
		Msg("iniciando dashboard")

	ctx := context.Background()
	tokens, closer, err := tokenstore.Open(ctx, tokenstore.Config{
		Driver:      cfg.Tokens.Driver,
		FilePath:    cfg.Tokens.FilePath,
		RedisURL:    cfg.Tokens.RedisURL,
		RedisPrefix: cfg.Tokens.RedisPrefix,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Tokens.Driver).Msg("abrir almacén de tokens")
	}
	defer closer.Close()

	inbox := notify.NewInbox(notify.DefaultCapacity)
	notifier := notify.Fanout{inbox, notify.NewLog(log)}
	nav := notify.NewNavigator(log)

	gw := gateway.New(tokens, gateway.Options{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.Timeout,
		RateLimitRPS: cfg.API.RateLimitRPS,
		Notifier:     notifier,
		Logger:       log,
	})
	client := api.New(gw)

	sessions := session.New(client.Auth, tokens, session.Options{
		Invalidator: gw,
		Notifier:    notifier,
		Navigator:   nav,
		Logger:      log,
	})
	defer sessions.Dispose()

	// El bootstrap corre en segundo plano; mientras tanto las vistas protegidas responden 202.
	go func() {
		if err := sessions.Init(ctx); err != nil {
			log.Warn().Err(err).Msg("bootstrap de sesión")
		}
	}()

	perms := access.New(sessions)
	dashboardUC := dashboard.NewUseCase(client.Reports, sessions, infrapdf.NewLowStockGenerator(language.Spanish), log)

	stopWatch := httpRouter.Watch(sessions, ports.RouteDashboard, func(d httpRouter.Decision) {
		log.Debug().Str("view", ports.RouteDashboard).Str("decision", d.Kind.String()).Str("target", d.Target).Msg("guard")
	})
	defer stopWatch()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.API.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "Invorya Dashboard",
		}))
	}

	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "session": sessions.State().String()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:  sessions,
		Perms:     perms,
		API:       client,
		Dashboard: dashboardUC,
		Inbox:     inbox,
		Routes:    nav,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("dashboard detenido")
}
