// invctl cliente de línea de comandos del dashboard. Comparte el almacén de
// tokens con el servidor, así que una sesión abierta aquí sirve en ambos.
//
// Uso:
//
//	invctl login <email> <password>
//	invctl logout
//	invctl whoami
//	invctl overview
//	invctl low-stock-pdf <salida.pdf> [umbral]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/text/language"

	"github.com/jhoicas/invorya-dashboard/internal/application/dashboard"
	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
	"github.com/jhoicas/invorya-dashboard/internal/application/session"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/api"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/gateway"
	infrapdf "github.com/jhoicas/invorya-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/tokenstore"
	"github.com/jhoicas/invorya-dashboard/pkg/config"
	"github.com/jhoicas/invorya-dashboard/pkg/logger"
)

const usage = `uso: invctl <comando> [args]

comandos:
  login <email> <password>          abre sesión y guarda los tokens
  logout                            cierra la sesión
  whoami                            muestra el usuario actual
  overview                          vista del dashboard en JSON
  low-stock-pdf <salida> [umbral]   genera el reporte PDF de stock bajo
`

// stderrNotifier muestra las notificaciones al usuario en stderr.
type stderrNotifier struct{}

func (stderrNotifier) Notify(n ports.Notification) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Level, n.Message)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "invctl: %v\n", err)
		os.Exit(1)
	}
}

// command comando ya validado; se arma antes de tocar la red o el almacén.
type command struct {
	name      string
	args      []string
	threshold int
}

// parseCommand valida nombre y argumentos.
func parseCommand(name string, args []string) (command, error) {
	c := command{name: name, args: args}
	switch name {
	case "login":
		if len(args) != 2 {
			return c, fmt.Errorf("login requiere <email> <password>")
		}
	case "logout", "whoami", "overview":
		if len(args) != 0 {
			return c, fmt.Errorf("%s no recibe argumentos", name)
		}
	case "low-stock-pdf":
		if len(args) < 1 || len(args) > 2 {
			return c, fmt.Errorf("low-stock-pdf requiere <salida> [umbral]")
		}
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				return c, fmt.Errorf("umbral inválido %q", args[1])
			}
			c.threshold = n
		}
	default:
		return c, fmt.Errorf("comando desconocido %q", name)
	}
	return c, nil
}

func run(name string, args []string) error {
	cmd, err := parseCommand(name, args)
	if err != nil {
		fmt.Fprint(os.Stderr, usage)
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: "production", Level: "warn"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, closer, err := tokenstore.Open(ctx, tokenstore.Config{
		Driver:      cfg.Tokens.Driver,
		FilePath:    cfg.Tokens.FilePath,
		RedisURL:    cfg.Tokens.RedisURL,
		RedisPrefix: cfg.Tokens.RedisPrefix,
	})
	if err != nil {
		return fmt.Errorf("abrir almacén de tokens: %w", err)
	}
	defer closer.Close()

	notifier := stderrNotifier{}
	gw := gateway.New(tokens, gateway.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		Notifier: notifier,
		Logger:   log,
	})
	client := api.New(gw)
	sessions := session.New(client.Auth, tokens, session.Options{Invalidator: gw, Notifier: notifier, Logger: log})
	defer sessions.Dispose()

	if err := sessions.Init(ctx); err != nil {
		return err
	}

	switch cmd.name {
	case "login":
		return sessions.Login(ctx, cmd.args[0], cmd.args[1])
	case "logout":
		sessions.Logout(ctx)
		return nil
	case "whoami":
		u := sessions.User()
		if u == nil {
			return fmt.Errorf("sin sesión; usa invctl login")
		}
		fmt.Printf("%s <%s> rol=%s tenant=%s\n", u.FullName(), u.Email, u.Role, u.TenantID)
		return nil
	case "overview":
		uc := dashboard.NewUseCase(client.Reports, sessions, nil, log)
		view, err := uc.Overview(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	default: // low-stock-pdf
		out := cmd.args[0]
		uc := dashboard.NewUseCase(client.Reports, sessions, infrapdf.NewLowStockGenerator(language.Spanish), log)
		doc, err := uc.LowStockPDF(ctx, cmd.threshold)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, doc, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", out, err)
		}
		fmt.Printf("reporte escrito en %s (%d bytes)\n", out, len(doc))
		return nil
	}
}
