package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"task-manager.com/task-manager/internal/avatars"
	config "task-manager.com/task-manager/internal/configs"
	httpapi "task-manager.com/task-manager/internal/http"
	"task-manager.com/task-manager/internal/realtime"
	repository "task-manager.com/task-manager/internal/repositories"
	"task-manager.com/task-manager/internal/services"
)

const avatarRoute = "/avatars"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task manager HTTP API and the live update hub",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		database := config.New(cfg.DatabaseDSN)
		sessionStore, closeSessions := config.NewSessionStore(cfg)
		defer closeSessions()

		avatarStore, err := avatars.NewFileStore(cfg.AvatarDir, avatarRoute, cfg.AvatarMaxBytes)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		hub := realtime.NewHub()
		go hub.Run(ctx)

		userRepo := repository.NewUserRepository(database)
		prefsRepo := repository.NewPreferencesRepository(database)
		taskRepo := repository.NewTaskRepository(database)

		authService := services.NewAuthService(
			userRepo,
			sessionStore,
			cfg.JWTSecret,
			time.Duration(cfg.JWTTTLHours)*time.Hour,
		)
		taskService := services.NewTaskService(taskRepo, prefsRepo, hub)
		profileService := services.NewProfileService(userRepo, prefsRepo, avatarStore)

		e := echo.New()
		e.HideBanner = true

		handler := httpapi.NewHandler(authService, taskService, profileService, hub, cfg.CORSAllowedOrigins)
		httpapi.Register(e, handler, httpapi.RouteOptions{
			RateLimitPerMinute: cfg.RateLimit,
			AvatarDir:          avatarStore.Dir(),
			AvatarMaxBytes:     cfg.AvatarMaxBytes,
		})

		c := cors.New(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut,
				http.MethodPatch, http.MethodDelete, http.MethodOptions,
			},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		})

		// No WriteTimeout: websocket connections outlive any fixed deadline.
		server := &http.Server{
			Addr:              cfg.AppURL,
			Handler:           c.Handler(e),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("graceful shutdown failed: %v", err)
		}

		log.Println("HTTP server and live hub shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
