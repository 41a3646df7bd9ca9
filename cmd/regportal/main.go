package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"regportal/internal/app"
	"regportal/internal/app/deps"
	"regportal/internal/app/services"
	"syscall"
	"time"

	dl "regportal/internal/core/domain/logging"
)

const shutdownTimeout = 20 * time.Second

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, deps, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	backend, _ := deps.Config.StoreBackend()
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("store", backend),
		dl.Entry("mailBackend", deps.Config.MailBackend),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Deps, shutDownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		deps.Logger.Error(ctx, "HTTP server did not shut down cleanly.", dl.Entry("err", err))
	}

	deps.Logger.Info(ctx, "HTTP server has shut down.")
	shutDownDeps()
}
