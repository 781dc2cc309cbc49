package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stairs/gym-reports/internal/api"
	"stairs/gym-reports/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Starts the API server exposing report generation endpoints behind
operator authentication, plus a public health check.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.close()

			go app.ensureIndexes()

			authService := service.NewAuthService(app.cfg.Operator, app.cfg.JWT.Secret, app.cfg.JWT.Expiration)

			if !rootOpts.Verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			router := gin.Default()
			api.SetupRoutes(router, app.cfg.JWT.Secret, authService, app.reportService,
				app.patientRepo, app.workoutRepo)

			server := &http.Server{
				Addr:         app.cfg.Server.Address,
				Handler:      router,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			app.logger.Info("server starting", zap.String("address", app.cfg.Server.Address))

			errCh := make(chan error, 1)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			app.logger.Info("shutting down server")
			ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			if err := server.Shutdown(ctxShutdown); err != nil {
				return err
			}

			app.logger.Info("server exited")
			return nil
		},
	}
}
