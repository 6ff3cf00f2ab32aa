package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"todo-api/app/config"
	"todo-api/app/controllers"
	"todo-api/app/routes"
	"todo-api/app/services"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := config.OpenStore(ctx, cfg)
	if err != nil {
		slog.Error("open store", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer st.Close(context.Background())

	taskService := services.NewTaskService(st)
	doneService := services.NewDoneService(st)

	taskController := controllers.NewTaskController(taskService)
	doneController := controllers.NewDoneController(doneService)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, taskController, doneController)

	srv := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.BindAddr, "backend", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}
