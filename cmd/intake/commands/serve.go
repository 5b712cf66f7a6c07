package commands

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"intake-backend/internal/events"
	"intake-backend/internal/handlers"
	"intake-backend/internal/logging"
	"intake-backend/internal/mirror"
	"intake-backend/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	e, _, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	var publisher events.Publisher = events.NopPublisher{}
	if e.cfg.EventsEnable {
		p, err := events.NewAMQPPublisher(e.cfg.EventsURL, e.cfg.EventsQueue)
		if err != nil {
			e.logger.WithError(err).Warn("intake events disabled")
		} else {
			publisher = p
		}
	}
	defer func() { _ = publisher.Close() }()

	if e.logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.NewIntakeHandler(
		e.store,
		mirror.NewWriter(e.cfg.MirrorDir),
		publisher,
		logging.Component(e.logger, "intake"),
	)
	srv := &http.Server{
		Addr:    e.cfg.Addr(),
		Handler: router.Router(h, e.cfg.StaticDir, logging.Component(e.logger, "http")),
	}

	errc := make(chan error, 1)
	go func() {
		e.logger.WithField("addr", srv.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	e.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
