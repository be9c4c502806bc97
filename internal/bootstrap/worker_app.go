package bootstrap

import (
	"context"
	"errors"
	"net/http"

	"quotes-aggregator/internal/config"
	httpserver "quotes-aggregator/internal/infrastructure/http"
	infraconfig "quotes-aggregator/internal/infrastructure/config"
	"quotes-aggregator/internal/infrastructure/metrics"
	"quotes-aggregator/internal/infrastructure/worker"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// API is the read service, optionally running the poller in-process.
type API struct {
	Config config.Config
	Log    *zap.Logger
	Server *httpserver.Server
	Poller *worker.Poller
}

// WorkerApp runs only the poller and exposes its metrics.
type WorkerApp struct {
	Config  config.Config
	Log     *zap.Logger
	Poller  *worker.Poller
	Metrics *metrics.Metrics
}

func (a *API) Run(ctx context.Context) error {
	srv := &http.Server{Addr: ":" + a.Config.Port, Handler: httpserver.NewRouter(a.Server)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return serve(gctx, srv, a.Log) })
	if a.Config.SchedulerEnabled {
		g.Go(func() error {
			a.Poller.Start(gctx)
			return nil
		})
	} else {
		a.Log.Info("scheduler_disabled")
	}
	return g.Wait()
}

func (w *WorkerApp) Run(ctx context.Context) error {
	r := chi.NewRouter()
	r.Get("/healthz", func(rw http.ResponseWriter, _ *http.Request) { _, _ = rw.Write([]byte("OK")) })
	r.Method(http.MethodGet, "/metrics", w.Metrics.Handler())
	srv := &http.Server{Addr: ":" + w.Config.Port, Handler: r}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return serve(gctx, srv, w.Log) })
	g.Go(func() error {
		w.Poller.Start(gctx)
		return nil
	})
	return g.Wait()
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	log.Info("server stopped")
	return err
}
