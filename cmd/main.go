package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lostfound/internal/handlers"
	"lostfound/internal/logger"
	"lostfound/internal/repository"
	"lostfound/internal/repository/db"
	"lostfound/internal/server"
	"lostfound/internal/service"
	"lostfound/internal/storage"

	"github.com/gorilla/sessions"
	"github.com/spf13/viper"
)

func main() {
	// init logger; level is refined once config is loaded
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	signingKey := viper.GetString("auth.signing_key")
	sessionSecret := viper.GetString("session.secret")
	if signingKey == "" || sessionSecret == "" {
		log.Fatalw("auth.signing_key and session.secret must be set in config")
	}

	// open DB
	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// image store
	uploadDir := viper.GetString("uploads.dir")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	images, err := storage.New(uploadDir)
	if err != nil {
		log.Fatalw("failed to init image store", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(repos, images, signingKey)
	store := sessions.NewCookieStore([]byte(sessionSecret))
	apiHandler := handlers.NewHandler(services, store, log, handlers.Config{
		TemplatesGlob: "templates/*.html",
		UploadsDir:    uploadDir,
	})

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "lostfound.db")
		dbPath = "lostfound.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
