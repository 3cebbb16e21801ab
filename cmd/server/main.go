package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"previz-server/internal/platform/config"
	"previz-server/internal/platform/logger"
	"previz-server/internal/platform/metrics"
	"previz-server/internal/previz"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	port := config.GetEnv("PORT", "8080")
	logLevel := config.GetEnv("LOG_LEVEL", "info")
	logFormat := config.GetEnv("LOG_FORMAT", "json")
	templatesFile := config.GetEnv("TEMPLATES_FILE", "")

	stage := previz.Stage{
		Width:     config.GetEnvFloat("STAGE_WIDTH", previz.DefaultStage.Width),
		Depth:     config.GetEnvFloat("STAGE_DEPTH", previz.DefaultStage.Depth),
		MaxHeight: config.GetEnvFloat("STAGE_MAX_HEIGHT", previz.DefaultStage.MaxHeight),
	}

	log := logger.New(logLevel, logFormat)

	templates := previz.BuiltinTemplates()
	if templatesFile != "" {
		data, err := os.ReadFile(templatesFile)
		if err != nil {
			log.Error("read templates file", "path", templatesFile, "error", err)
			os.Exit(1)
		}
		custom, err := previz.LoadTemplatesYAML(data)
		if err != nil {
			log.Error("load templates file", "path", templatesFile, "error", err)
			os.Exit(1)
		}
		for name, els := range custom {
			templates[name] = els
		}
	}

	repo := previz.NewInMemoryRepositoryWithStore(previz.NewInMemoryStore(), templates)
	svc := previz.NewService(repo, stage)
	met := metrics.New()
	h := previz.NewHandler(svc, log, met)

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		met.Handler(func() { met.SetActiveScenes(repo.ActiveSceneCount()) }).ServeHTTP(w, req)
	})
	r.Get("/templates", h.ListTemplates)
	r.Route("/scenes", func(r chi.Router) {
		r.Post("/", h.CreateScene)
		r.Route("/{scene_id}", func(r chi.Router) {
			r.Get("/", h.GetScene)
			r.Delete("/", h.DeleteScene)
			r.Put("/name", h.RenameScene)
			r.Put("/view", h.SetViewMode)
			r.Post("/template", h.ApplyTemplate)
			r.Post("/clear", h.ClearScene)
			r.Get("/render", h.RenderScene)
			r.Get("/export", h.ExportScene)
			r.Post("/import", h.ImportScene)
			r.Get("/report", h.Report)
			r.Route("/elements/{kind}", func(r chi.Router) {
				r.Post("/", h.AddElement)
				r.Route("/{element_id}", func(r chi.Router) {
					r.Put("/", h.UpdateElement)
					r.Delete("/", h.RemoveElement)
					r.Post("/duplicate", h.DuplicateElement)
				})
			})
		})
	})

	addr := ":" + port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", port,
		"stage_width", stage.Width,
		"stage_depth", stage.Depth,
		"log_level", logLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
