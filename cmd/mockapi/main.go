// mockapi levanta un backend de inventario en memoria para desarrollo local.
//
// Uso: go run ./cmd/mockapi
// Escucha en MOCKAPI_PORT (8080 por defecto) bajo /api. Con MOCKAPI_SEED=true
// carga las cuentas admin@invorya.dev, manager@invorya.dev y user@invorya.dev.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/invorya-dashboard/internal/mockapi"
	"github.com/jhoicas/invorya-dashboard/pkg/config"
	"github.com/jhoicas/invorya-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	srv := mockapi.New(mockapi.Options{Secret: cfg.Mock.JWTSecret, Logger: log})
	if cfg.Mock.Seed {
		demo, err := srv.Seed()
		if err != nil {
			log.Fatal().Err(err).Msg("cargar datos de demo")
		}
		log.Info().
			Str("tenant_id", demo.TenantID).
			Str("admin", mockapi.DemoAdminEmail).
			Str("manager", mockapi.DemoManagerEmail).
			Str("user", mockapi.DemoUserEmail).
			Msg("cuentas de demo disponibles")
	}

	app := fiber.New(fiber.Config{AppName: "invorya-mockapi"})
	app.Use(recover.New())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "mockapi"})
	})
	srv.Register(app)

	addr := fmt.Sprintf(":%d", cfg.Mock.Port)
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	log.Info().Str("addr", addr).Msg("mockapi escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
