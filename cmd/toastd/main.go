// Command toastd serves per-session toast notifications over HTTP with a
// small Datastar demo page.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/toastkit/pkg/config"
	"github.com/dmitrymomot/toastkit/pkg/httpserver"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/requestid"
	"github.com/dmitrymomot/toastkit/pkg/toast"
	"github.com/dmitrymomot/toastkit/pkg/toastui"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	Name         string `env:"APP_NAME" envDefault:"toastd"`
	SecureCookie bool   `env:"TOAST_SECURE_COOKIE" envDefault:"false"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("toastd stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		app      appConfig
		httpCfg  httpserver.Config
		toastCfg toast.Config
	)
	if err := errors.Join(
		config.Load(&app),
		config.Load(&httpCfg),
		config.Load(&toastCfg),
	); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextExtractors(requestid.Extractor, toastui.SessionExtractor),
	)
	logger.SetAsDefault(log)

	registry := toast.NewRegistryFromConfig(toastCfg, toast.WithLogger(log))
	ui := toastui.New(registry,
		toastui.WithSecureCookie(app.SecureCookie),
		toastui.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware, middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthHandler(log))
	r.Get("/readyz", httpserver.HealthHandler(log, registry.Check))

	r.Group(func(r chi.Router) {
		r.Use(ui.Middleware)
		r.Method(http.MethodGet, "/", templ.Handler(demoPage(toastui.DefaultBasePath)))
		r.Post("/demo/saved", saved)
		r.Mount(toastui.DefaultBasePath, ui.Routes())
	})

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(context.Context) error { return registry.Close() }),
	)
	return srv.Run(ctx, r)
}

// saved shows server-side code raising a toast through the request context.
func saved(w http.ResponseWriter, r *http.Request) {
	id := toast.Notify(r.Context(), toast.Input{
		Title:       "Changes saved",
		Description: "Your settings were updated.",
		Action:      &toast.Action{Label: "Undo", URL: "/"},
	})
	slog.DebugContext(r.Context(), "demo toast raised", logger.ToastID(id))
	w.WriteHeader(http.StatusNoContent)
}
