package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/brokeradda/adda-admin/internal/handlers"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/metrics"
	"github.com/brokeradda/adda-admin/internal/middleware"
	"github.com/brokeradda/adda-admin/internal/repository"
	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/brokeradda/adda-admin/pkg/adda"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long:  `Start the HTTP server that backs the admin dashboard and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

const (
	loginRateLimit  = 10
	shutdownTimeout = 15 * time.Second
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	log.Info("starting adda admin server",
		logger.String("env", cfg.Server.Env),
		logger.String("api_url", cfg.API.BaseURL),
	)

	m := metrics.New()
	sess := newSession(cfg)
	unsubscribe := sess.OnChange(m.SessionChanged)
	defer unsubscribe()
	m.SessionChanged(sess.Token())

	client := newClient(cfg, sess, adda.WithObserver(m))

	repos := service.Repositories{
		Brokers:       repository.NewBrokerRepository(client),
		Leads:         repository.NewLeadRepository(client),
		Properties:    repository.NewPropertyRepository(client),
		Regions:       repository.NewRegionRepository(client),
		Notifications: repository.NewNotificationRepository(client),
		Contacts:      repository.NewContactRepository(client),
		Imports:       repository.NewImportRepository(client),
		Auth:          repository.NewAuthRepository(client),
	}

	toasts := service.NewToastQueue(0)
	dash := service.NewDashboard(repos, sess, service.Settings{
		PageSize:     cfg.List.PageSize,
		Debounce:     cfg.List.SearchDebounce,
		LeadDebounce: cfg.List.LeadSearchDebounce,
		Notifier:     toasts,
		Recorder:     m,
	})
	defer dash.Close()

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, time.Minute, "api")
	defer limiter.Stop()
	authLimiter := middleware.NewRateLimiter(loginRateLimit, time.Minute, "login")
	defer authLimiter.Stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Env:         cfg.Server.Env,
		Production:  cfg.IsProduction(),
		CORSOrigins: cfg.Server.CORSOrigins,
		PageSize:    cfg.List.PageSize,
		Dashboard:   dash,
		Session:     sess,
		Toasts:      toasts,
		Metrics:     m,
		Images: handlers.ImageResolver{
			Allowed:   cfg.ImageProxy.AllowedHosts,
			ProxyPath: handlers.ImageProxyPath,
		},
		ImageProxy: handlers.NewImageProxyHandler(handlers.ImageProxyOptions{
			Client:    &http.Client{Timeout: cfg.ImageProxy.Timeout},
			UserAgent: cfg.ImageProxy.UserAgent,
			MaxBytes:  cfg.ImageProxy.MaxBytes,
			Recorder:  m,
		}),
		Limiter:     limiter,
		AuthLimiter: authLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
